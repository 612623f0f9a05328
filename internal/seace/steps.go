package seace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go-seace-automation/internal/browser"
)

// Step timeouts. Cold navigation is the slowest, sub-navigations inside
// the portal are faster, the results header is a quick confirmation.
const (
	timeoutNavegacion      = 60 * time.Second
	timeoutBusqueda        = 45 * time.Second
	timeoutSubNavegacion   = 30 * time.Second
	timeoutColumnaAcciones = 10 * time.Second

	reintentosPortal = 3
	esperaReintento  = 5 * time.Second
)

// PrimeFaces form selectors. The colons in the ids must stay escaped.
const (
	selCUI             = `#tbBuscador\:idFormBuscarProceso\:CUI`
	selBotonBuscar     = `#tbBuscador\:idFormBuscarProceso\:btnBuscarSelToken`
	selVersionLabel    = `#tbBuscador\:idFormBuscarProceso\:ddlVersionSeace_label`
	selVersionDropdown = `#tbBuscador\:idFormBuscarProceso\:ddlVersionSeace`
	selVersionPanel    = `#tbBuscador\:idFormBuscarProceso\:ddlVersionSeace_panel`
	selUltimaFila      = `#tbBuscador\:idFormBuscarProceso\:pnlGrdResultadosProcesos table tbody tr:last-child`
	selIconoHistorial  = `td:last-child a.ui-commandlink:first-child`
	selIconoFicha      = `table tbody tr:first-child td:last-child a.ui-commandlink:nth-child(2)`
)

// The year and version dropdowns are custom widgets keyed by internal
// form ids; their panels are not reachable through plain selectors, so
// these scripts run inside the page instead.
const (
	jsLeerCUI = `document.querySelector('#tbBuscador\\:idFormBuscarProceso\\:CUI').value`

	jsLeerAnio = `document.querySelector('#tbBuscador\\:idFormBuscarProceso\\:anioConvocatoria_label')?.textContent || "NO ENCONTRADO"`

	jsAbrirDropdownAnio = `(() => {
		const label = document.querySelector('#tbBuscador\\:idFormBuscarProceso\\:anioConvocatoria_label');
		if (label) {
			label.click();
			return true;
		}
		return false;
	})()`

	jsSeleccionarAnio = `(() => {
		const panel = document.querySelector('#tbBuscador\\:idFormBuscarProceso\\:anioConvocatoria_panel');
		if (panel) {
			const options = panel.querySelectorAll('li');
			for (const option of options) {
				if (option.getAttribute('data-label') === '%d' ||
					option.textContent.trim() === '%d') {
					option.click();
					return true;
				}
			}
		}
		return false;
	})()`
)

type stepFunc func(ctx context.Context, logger *slog.Logger, page browser.Page) error

// paso is one transition of the linear navigation state machine.
// Non-required pasos log their failure and let the query continue.
type paso struct {
	nombre    string
	requerido bool
	intentos  int
	espera    time.Duration
	run       stepFunc
}

// ejecutarPaso applies the step's retry policy and failure propagation.
func (s *Service) ejecutarPaso(ctx context.Context, logger *slog.Logger, page browser.Page, p paso) error {
	intentos := p.intentos
	if intentos < 1 {
		intentos = 1
	}

	var err error
	for intento := 1; intento <= intentos; intento++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = p.run(ctx, logger, page); err == nil {
			return nil
		}
		logger.Warn("paso fallido", "paso", p.nombre, "intento", intento, "err", err)
		if intento < intentos {
			select {
			case <-ctx.Done():
			case <-time.After(p.espera):
			}
		}
	}

	if !p.requerido {
		logger.Warn("paso opcional omitido", "paso", p.nombre, "err", err)
		return nil
	}

	if s.shots != nil {
		s.shots.Capture(page, strings.ReplaceAll(p.nombre, " ", "-"))
	}
	return &ExtractionError{Paso: p.nombre, Err: err}
}

// pasos builds the required navigation sequence for one query.
func (s *Service) pasos(cui string, anio int) []paso {
	return []paso{
		{nombre: "cargar portal", requerido: true, intentos: reintentosPortal, espera: s.esperaReintento, run: s.irAlPortal},
		{nombre: "ejecutar busqueda", requerido: true, run: func(ctx context.Context, logger *slog.Logger, page browser.Page) error {
			return s.ejecutarBusqueda(logger, page, cui, anio)
		}},
		{nombre: "abrir historial", requerido: true, run: s.abrirHistorial},
		{nombre: "abrir ficha de seleccion", requerido: true, run: s.abrirFicha},
	}
}

// pasoIntegrantes is the supplementary member-panel navigation; its
// failure never aborts the query.
func (s *Service) pasoIntegrantes() paso {
	return paso{nombre: "ver integrantes", run: s.verIntegrantes}
}

func (s *Service) irAlPortal(ctx context.Context, logger *slog.Logger, page browser.Page) error {
	logger.Info("navegando al portal SEACE", "url", s.baseURL)
	if err := page.Goto(s.baseURL, browser.GotoOptions{
		WaitUntil: browser.LoadStateDomContentLoaded,
		Timeout:   timeoutNavegacion,
	}); err != nil {
		return fmt.Errorf("goto: %w", err)
	}
	// the portal keeps loading widgets well past domcontentloaded
	page.WaitForTimeout(3 * time.Second)

	if err := page.Click(`text="Búsqueda de Procedimientos"`); err != nil {
		return fmt.Errorf("pestaña de búsqueda: %w", err)
	}
	if _, err := page.WaitForSelector(selCUI, browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true}); err != nil {
		return fmt.Errorf("formulario de búsqueda: %w", err)
	}
	logger.Info("formulario de búsqueda disponible")
	return nil
}

func (s *Service) ejecutarBusqueda(logger *slog.Logger, page browser.Page, cui string, anio int) error {
	logger.Info("ejecutando búsqueda", "cui", cui, "anio", anio)

	if err := page.Fill(selCUI, cui); err != nil {
		return fmt.Errorf("campo CUI: %w", err)
	}
	if valor, err := page.Evaluate(jsLeerCUI); err == nil {
		logger.Debug("CUI en formulario", "valor", valor)
	}

	if err := s.seleccionarAnio(logger, page, anio); err != nil {
		return err
	}

	s.verificarVersion(logger, page)

	// let PrimeFaces settle before submitting
	page.WaitForTimeout(2 * time.Second)

	if err := page.Click(selBotonBuscar); err != nil {
		return fmt.Errorf("botón buscar: %w", err)
	}

	// network-idle is best-effort: the portal keeps polling endpoints open
	if err := page.WaitForLoadState(browser.LoadStateNetworkIdle, timeoutBusqueda); err != nil {
		logger.Warn("timeout esperando networkidle, continuando", "err", err)
	}

	if _, err := page.WaitForSelector("text=Mostrando de", browser.WaitOptions{Timeout: timeoutBusqueda, Visible: true}); err != nil {
		return fmt.Errorf("resultados de búsqueda: %w", err)
	}
	if _, err := page.WaitForSelector(`span.ui-outputlabel:text-is("Acciones")`, browser.WaitOptions{Timeout: timeoutColumnaAcciones, Visible: true}); err != nil {
		return fmt.Errorf("columna de acciones: %w", err)
	}
	logger.Info("resultados de búsqueda cargados")
	return nil
}

func (s *Service) seleccionarAnio(logger *slog.Logger, page browser.Page, anio int) error {
	if _, err := page.Evaluate(jsAbrirDropdownAnio); err != nil {
		return fmt.Errorf("dropdown de año: %w", err)
	}
	page.WaitForTimeout(1500 * time.Millisecond)

	seleccionado, err := page.Evaluate(fmt.Sprintf(jsSeleccionarAnio, anio, anio))
	if err != nil {
		return fmt.Errorf("selección de año: %w", err)
	}
	if ok, _ := seleccionado.(bool); ok {
		logger.Info("año seleccionado", "anio", anio)
	} else {
		logger.Warn("no se pudo seleccionar el año", "anio", anio)
	}
	page.WaitForTimeout(1 * time.Second)

	if valor, err := page.Evaluate(jsLeerAnio); err == nil {
		logger.Debug("año en formulario", "valor", valor)
	}
	return nil
}

// verificarVersion switches the portal-version dropdown to SEACE 3 when
// another generation is selected. Entirely best-effort: every failure
// here is logged and swallowed.
func (s *Service) verificarVersion(logger *slog.Logger, page browser.Page) {
	label, err := page.QuerySelector(selVersionLabel)
	version := "NO ENCONTRADO"
	if err == nil && label != nil {
		if txt, terr := label.InnerText(); terr == nil {
			version = txt
		}
	}
	logger.Debug("versión SEACE actual", "version", version)

	// the label shows up under two casings
	if esVersionTres(version) {
		return
	}

	if label == nil {
		// no label rendered, try the widget itself
		if dropdown, derr := page.QuerySelector(selVersionDropdown); derr == nil && dropdown != nil {
			dropdown.Click()
			page.WaitForTimeout(1500 * time.Millisecond)
		}
		return
	}

	if err := label.Click(); err != nil {
		logger.Warn("no se pudo abrir el selector de versión", "err", err)
		return
	}
	page.WaitForTimeout(1500 * time.Millisecond)

	panel, err := page.QuerySelector(selVersionPanel)
	if err != nil || panel == nil {
		logger.Warn("panel de versiones no encontrado")
		return
	}
	opciones, err := panel.QuerySelectorAll("li")
	if err != nil {
		return
	}
	for _, opcion := range opciones {
		txt, terr := opcion.InnerText()
		if terr != nil || !esVersionTres(txt) {
			continue
		}
		if cerr := opcion.Click(); cerr != nil {
			logger.Warn("no se pudo seleccionar SEACE 3", "err", cerr)
			return
		}
		page.WaitForTimeout(1 * time.Second)
		if nueva, verr := label.InnerText(); verr == nil {
			logger.Info("versión SEACE cambiada", "version", nueva)
		}
		return
	}
}

func esVersionTres(texto string) bool {
	return strings.Contains(texto, "Seace 3") || strings.Contains(texto, "SEACE 3")
}

func (s *Service) abrirHistorial(ctx context.Context, logger *slog.Logger, page browser.Page) error {
	logger.Info("navegando a historial de contratación")

	fila, err := page.WaitForSelector(selUltimaFila, browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true})
	if err != nil {
		return fmt.Errorf("tabla de resultados: %w", err)
	}
	if fila == nil {
		return errors.New("tabla de resultados no encontrada")
	}

	icono, err := fila.QuerySelector(selIconoHistorial)
	if err != nil {
		return fmt.Errorf("ícono de historial: %w", err)
	}
	if icono == nil {
		return errors.New("no se encontró el ícono de historial")
	}
	if err := icono.Click(); err != nil {
		return fmt.Errorf("clic en historial: %w", err)
	}

	if _, err := page.WaitForSelector("text=Visualizar historial de contratación", browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true}); err != nil {
		return fmt.Errorf("historial de contratación: %w", err)
	}
	logger.Info("historial cargado")
	return nil
}

func (s *Service) abrirFicha(ctx context.Context, logger *slog.Logger, page browser.Page) error {
	logger.Info("navegando a ficha de selección")

	icono, err := page.WaitForSelector(selIconoFicha, browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true})
	if err != nil {
		return fmt.Errorf("ícono de ficha: %w", err)
	}
	if icono == nil {
		return errors.New("no se encontró el ícono de ficha")
	}
	if err := icono.Click(); err != nil {
		return fmt.Errorf("clic en ficha: %w", err)
	}

	if _, err := page.WaitForSelector("text=Ficha de Seleccion", browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true}); err != nil {
		return fmt.Errorf("ficha de selección: %w", err)
	}
	logger.Info("ficha cargada")
	return nil
}

func (s *Service) verIntegrantes(ctx context.Context, logger *slog.Logger, page browser.Page) error {
	logger.Info("navegando a integrantes y encargado")

	enlace, err := page.WaitForSelector(`a:has-text("Ver integrantes y encargado")`, browser.WaitOptions{Timeout: timeoutSubNavegacion, Visible: true})
	if err != nil {
		return fmt.Errorf("enlace de integrantes: %w", err)
	}
	if enlace == nil {
		return errors.New("enlace de integrantes no encontrado")
	}
	if err := enlace.Click(); err != nil {
		return fmt.Errorf("clic en integrantes: %w", err)
	}

	// the panel exposes no reliable completion selector
	page.WaitForTimeout(2 * time.Second)
	return nil
}
