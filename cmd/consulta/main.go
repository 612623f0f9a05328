package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"go-seace-automation/internal/browser"
	"go-seace-automation/internal/config"
	"go-seace-automation/internal/portal"
	"go-seace-automation/internal/reporter"
	"go-seace-automation/internal/seace"
)

func main() {
	cui := flag.String("cui", "", "código único de inversión (7 dígitos)")
	anio := flag.Int("anio", time.Now().Year(), "año de la convocatoria")
	notify := flag.Bool("notify", false, "enviar el resultado por Telegram")
	flag.Parse()

	//load config
	cfg := config.Load()
	log.Printf("🔧 Config cargada. Portal: %s", cfg.BaseURL)

	//setup context with timeout = 10 mins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	//preflight: cheap reachability check before launching a browser
	if err := portal.NewProbe(cfg.BaseURL).Check(ctx); err != nil {
		log.Printf("⚠️ %v (continuando de todas formas)", err)
	}

	//init browser manager
	mgr, err := browser.NewManager(!cfg.Headful)
	if err != nil {
		log.Fatalf("❌ No se pudo iniciar el navegador: %v", err)
	}
	defer mgr.Close()
	log.Println("✅ Navegador iniciado")

	svc := seace.NewService(mgr, cfg, slog.Default())

	res, err := svc.Consultar(ctx, *cui, *anio)
	if err != nil {
		if *notify {
			reportError(cfg, err)
		}
		log.Fatalf("❌ %v", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		log.Fatalf("❌ No se pudo serializar el resultado: %v", err)
	}
	fmt.Println(string(data))

	if *notify {
		reportResultado(cfg, res)
	}

	log.Println("🏁 Consulta finalizada.")
}

func reportResultado(cfg *config.Config, res *seace.Resultado) {
	rep, err := newReporter(cfg)
	if err != nil || rep == nil {
		return
	}
	if err := rep.SendResultado(res); err != nil {
		log.Printf("⚠️ No se pudo enviar el resultado por Telegram: %v", err)
	}
}

func reportError(cfg *config.Config, qerr error) {
	rep, err := newReporter(cfg)
	if err != nil || rep == nil {
		return
	}
	if err := rep.SendError(qerr); err != nil {
		log.Printf("⚠️ No se pudo notificar el error por Telegram: %v", err)
	}
}

func newReporter(cfg *config.Config) (*reporter.TelegramReporter, error) {
	if !cfg.TelegramEnabled() {
		log.Println("⚠️ Telegram no configurado, omitiendo notificación")
		return nil, nil
	}
	rep, err := reporter.NewTelegramReporter(cfg)
	if err != nil {
		log.Printf("⚠️ No se pudo iniciar el reporter de Telegram: %v", err)
		return nil, err
	}
	return rep, nil
}
