// Orchestrates one end-to-end SEACE query: validate, open a page, walk
// the navigation steps, run the extractors, assemble the Resultado.

package seace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go-seace-automation/internal/browser"
	"go-seace-automation/internal/config"
	"go-seace-automation/utils"
)

// Service runs queries against the SEACE portal. One Service owns one
// browser (through the session); each query gets its own ephemeral page,
// so concurrent queries are fine as long as the caller reuses a single
// Service.
type Service struct {
	session browser.Session
	logger  *slog.Logger
	shots   *utils.ScreenShotDebugger
	baseURL string
	// shrunk in tests
	esperaReintento time.Duration
}

func NewService(session browser.Session, cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := config.DefaultBaseURL
	screenshotDir := ""
	if cfg != nil {
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		screenshotDir = cfg.ScreenshotDir
	}

	return &Service{
		session:         session,
		logger:          logger,
		shots:           utils.NewScreenShotDebugger(screenshotDir),
		baseURL:         baseURL,
		esperaReintento: esperaReintento,
	}
}

// Consultar returns the procurement record for one CUI and year, or a
// *Error wrapping whatever went wrong. The page opened for the query is
// closed on every exit path.
func (s *Service) Consultar(ctx context.Context, cui string, anio int) (*Resultado, error) {
	logger := s.logger.With("consulta_id", uuid.NewString(), "cui", cui, "anio", anio)
	logger.Info("iniciando consulta SEACE")

	if !ValidCUI(cui) {
		return nil, wrap(&ValidationError{
			Msg: fmt.Sprintf("CUI inválido: %q, debe ser un número de 7 dígitos", cui),
		})
	}
	if !ValidAnio(anio) {
		return nil, wrap(&ValidationError{
			Msg: fmt.Sprintf("año inválido: %d, debe estar entre %d y el año actual", anio, AnioMinimo),
		})
	}

	page, err := s.session.NewPage()
	if err != nil {
		return nil, wrap(fmt.Errorf("no se pudo abrir la página: %w", err))
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			logger.Warn("error cerrando página", "err", cerr)
		}
	}()

	for _, p := range s.pasos(cui, anio) {
		if err := s.ejecutarPaso(ctx, logger, page, p); err != nil {
			logger.Error("consulta fallida", "err", err)
			return nil, wrap(err)
		}
	}

	cronograma := s.extraerCronograma(logger, page)

	// supplementary data, never fatal
	s.ejecutarPaso(ctx, logger, page, s.pasoIntegrantes())
	info := s.extraerInfoAdicional(logger, page)

	resultado := &Resultado{
		CUI:            cui,
		Anio:           anio,
		Cronograma:     cronograma,
		NumeroContrato: info.NumeroContrato,
		InfoAdicional:  info,
	}

	logger.Info("consulta completada", "etapas", len(cronograma), "contrato", info.NumeroContrato != "")
	return resultado, nil
}
