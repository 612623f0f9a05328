package main

import (
	"errors"
	"log"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-seace-automation/internal/browser"
	"go-seace-automation/internal/config"
	"go-seace-automation/internal/portal"
	"go-seace-automation/internal/seace"
)

type consultaRequest struct {
	CUI  string `json:"cui" binding:"required"`
	Anio int    `json:"anio" binding:"required"`
}

func main() {
	cfg := config.Load()

	mgr, err := browser.NewManager(!cfg.Headful)
	if err != nil {
		log.Fatalf("❌ No se pudo iniciar el navegador: %v", err)
	}
	defer mgr.Close()

	// the browser is shared; every request gets its own page
	svc := seace.NewService(mgr, cfg, slog.Default())
	probe := portal.NewProbe(cfg.BaseURL)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		if err := probe.Check(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/consulta", func(c *gin.Context) {
		var req consultaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := svc.Consultar(c.Request.Context(), req.CUI, req.Anio)
		if err != nil {
			var verr *seace.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, res)
	})

	log.Printf("Server listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
