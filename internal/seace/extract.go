package seace

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-seace-automation/internal/browser"
)

const (
	selTablaCronograma = "table.ui-datatable-tablewrapper tbody"
	selCeldaOutput     = "span.ui-cell-editor-output"

	// fallback scan over the rendered markup is bounded
	maxElementosFallback = 50
)

// "Contrato N° ABC-123/2024" and casing/ordinal variants. The token
// class must cover accented letters and Ñ, not just ASCII word runes.
var patronContrato = regexp.MustCompile(`(?:Contrato|CONTRATO)\s*[Nn][°oº]?\s*([\p{L}\p{N}_\-/]+)`)

// extraerCronograma reads the schedule table of the ficha in display
// order. It never fails the query: if the table is missing or any call
// errors out, whatever was collected so far (possibly nothing) is
// returned.
func (s *Service) extraerCronograma(logger *slog.Logger, page browser.Page) []Etapa {
	logger.Info("extrayendo cronograma")
	cronograma := []Etapa{}

	tabla, err := page.WaitForSelector(selTablaCronograma, browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true})
	if err != nil || tabla == nil {
		logger.Warn("tabla de cronograma no disponible", "err", err)
		return cronograma
	}

	filas, err := tabla.QuerySelectorAll("tr")
	if err != nil {
		logger.Warn("no se pudieron leer las filas del cronograma", "err", err)
		return cronograma
	}

	for _, fila := range filas {
		columnas, err := fila.QuerySelectorAll("td")
		if err != nil || len(columnas) < 3 {
			continue
		}

		etapa, ok := textoCelda(columnas[0])
		if !ok {
			continue
		}
		fechaInicio, ok := textoCelda(columnas[1])
		if !ok {
			continue
		}
		fechaFin, ok := textoCelda(columnas[2])
		if !ok {
			continue
		}

		cronograma = append(cronograma, Etapa{
			Etapa:       etapa,
			FechaInicio: fechaInicio,
			FechaFin:    fechaFin,
		})
	}

	logger.Info("cronograma extraído", "etapas", len(cronograma))
	return cronograma
}

// textoCelda reads the inner output element of one cell. Rows whose
// cells miss the output element are skipped entirely, never half-filled.
func textoCelda(celda browser.Element) (string, bool) {
	out, err := celda.QuerySelector(selCeldaOutput)
	if err != nil || out == nil {
		return "", false
	}
	texto, err := out.InnerText()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(texto), true
}

// extraerInfoAdicional looks for the contract number in the rendered
// page. Like the cronograma, it degrades to empty instead of failing.
func (s *Service) extraerInfoAdicional(logger *slog.Logger, page browser.Page) InfoAdicional {
	logger.Info("extrayendo información adicional")
	var info InfoAdicional

	contenido, err := page.Content()
	if err != nil {
		logger.Warn("no se pudo leer el contenido de la página", "err", err)
		return info
	}

	if m := patronContrato.FindStringSubmatch(contenido); m != nil {
		info.NumeroContrato = strings.TrimSpace(m[1])
		logger.Info("número de contrato encontrado", "numero", info.NumeroContrato)
		return info
	}

	numero, err := buscarContratoEnElementos(contenido)
	if err != nil {
		logger.Warn("fallback de número de contrato falló", "err", err)
		return info
	}
	if numero != "" {
		info.NumeroContrato = numero
		logger.Info("número de contrato encontrado", "numero", numero)
	}
	return info
}

// buscarContratoEnElementos is the heuristic fallback: scan the first
// text-bearing elements and take the token right after any token
// containing "contrato". First match wins.
func buscarContratoEnElementos(contenido string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contenido))
	if err != nil {
		return "", err
	}

	numero := ""
	doc.Find("span, div").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= maxElementosFallback {
			return false
		}
		texto := sel.Text()
		if !strings.Contains(normalizeText(texto), "contrato") {
			return true
		}
		partes := strings.Fields(texto)
		for j, parte := range partes {
			if j == len(partes)-1 || !strings.Contains(normalizeText(parte), "contrato") {
				continue
			}
			if candidato := strings.Trim(partes[j+1], ":°Nº"); candidato != "" {
				numero = candidato
				return false
			}
		}
		return true
	})
	return numero, nil
}
