package seace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-seace-automation/internal/browser"
)

func TestExtraerInfoAdicional_Regex(t *testing.T) {
	page := newFakePage()
	page.content = `<html><body><div>Detalle del proceso</div><span>Contrato N° AB-123/2024</span></body></html>`

	svc := testService(&fakeSession{page: page})
	info := svc.extraerInfoAdicional(svc.logger, page)

	assert.Equal(t, "AB-123/2024", info.NumeroContrato)
}

func TestExtraerInfoAdicional_RegexCasings(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "uppercase keyword", content: `<span>CONTRATO Nº 045-2023/MDSJ</span>`, expected: "045-2023/MDSJ"},
		{name: "no ordinal symbol", content: `<span>Contrato N 12345</span>`, expected: "12345"},
		{name: "lowercase n", content: `<span>Contrato n° X-1</span>`, expected: "X-1"},
		{name: "accented token", content: `<span>Contrato N° AÑO-12/2024</span>`, expected: "AÑO-12/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage()
			page.content = tt.content
			svc := testService(&fakeSession{page: page})

			info := svc.extraerInfoAdicional(svc.logger, page)
			assert.Equal(t, tt.expected, info.NumeroContrato)
		})
	}
}

func TestExtraerInfoAdicional_Fallback(t *testing.T) {
	// no "Contrato N°" pattern, but a span mentioning the contract:
	// the token after "Contrato:" wins, stripped of punctuation
	page := newFakePage()
	page.content = `<html><body><div>Ficha</div><span>Contrato: ABC-001 suscrito</span></body></html>`

	svc := testService(&fakeSession{page: page})
	info := svc.extraerInfoAdicional(svc.logger, page)

	assert.Equal(t, "ABC-001", info.NumeroContrato)
}

func TestExtraerInfoAdicional_FallbackFirstMatchWins(t *testing.T) {
	page := newFakePage()
	page.content = `<html><body>
		<span>Contrato: PRIMERO-1</span>
		<span>Contrato: SEGUNDO-2</span>
	</body></html>`

	svc := testService(&fakeSession{page: page})
	info := svc.extraerInfoAdicional(svc.logger, page)

	assert.Equal(t, "PRIMERO-1", info.NumeroContrato)
}

func TestExtraerInfoAdicional_FallbackBounded(t *testing.T) {
	// the matching element sits past the scan bound and must be ignored
	content := "<html><body>"
	for i := 0; i < maxElementosFallback; i++ {
		content += "<span>relleno</span>"
	}
	content += "<span>Contrato: TARDE-9</span></body></html>"

	page := newFakePage()
	page.content = content

	svc := testService(&fakeSession{page: page})
	info := svc.extraerInfoAdicional(svc.logger, page)

	assert.Empty(t, info.NumeroContrato)
}

func TestExtraerInfoAdicional_SinCoincidencia(t *testing.T) {
	page := newFakePage()
	page.content = `<html><body><span>Sin datos relevantes</span></body></html>`

	svc := testService(&fakeSession{page: page})
	info := svc.extraerInfoAdicional(svc.logger, page)

	assert.Empty(t, info.NumeroContrato)
}

func TestExtraerInfoAdicional_ContenidoInaccesible(t *testing.T) {
	page := newFakePage()
	page.contentErr = errors.New("page crashed")

	svc := testService(&fakeSession{page: page})
	info := svc.extraerInfoAdicional(svc.logger, page)

	assert.Empty(t, info.NumeroContrato)
}

func TestExtraerCronograma(t *testing.T) {
	page := newFakePage()
	page.waitElems[selTablaCronograma] = &fakeElement{childrenAll: map[string][]browser.Element{
		"tr": {
			etapaRow("  Convocatoria ", "01/02/2023", "03/02/2023"),
			// row without the inner output elements: skipped, not half-filled
			&fakeElement{childrenAll: map[string][]browser.Element{
				"td": {&fakeElement{}, &fakeElement{}, &fakeElement{}},
			}},
			// row with too few cells: skipped
			&fakeElement{childrenAll: map[string][]browser.Element{
				"td": {&fakeElement{}, &fakeElement{}},
			}},
			etapaRow("Buena Pro", "10/02/2023", "10/02/2023"),
		},
	}}

	svc := testService(&fakeSession{page: page})
	cronograma := svc.extraerCronograma(svc.logger, page)

	assert.Equal(t, []Etapa{
		{Etapa: "Convocatoria", FechaInicio: "01/02/2023", FechaFin: "03/02/2023"},
		{Etapa: "Buena Pro", FechaInicio: "10/02/2023", FechaFin: "10/02/2023"},
	}, cronograma)
}

func TestExtraerCronograma_TablaAusente(t *testing.T) {
	page := newFakePage()
	page.waitErr[selTablaCronograma] = errTimeout

	svc := testService(&fakeSession{page: page})
	cronograma := svc.extraerCronograma(svc.logger, page)

	assert.Empty(t, cronograma)
}
