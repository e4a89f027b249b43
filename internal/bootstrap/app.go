package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/nlp"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/web"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Model           *nlp.Model
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	WebHandler      *web.Handler
	Health          *health.Service
}

// Build loads the language model once and wires services, handlers and routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, errors.New("bootstrap: MAX_UPLOAD_BYTES must be positive")
	}

	start := time.Now()
	model, err := nlp.Load()
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load nlp model: %w", err)
	}
	telemetry.Info("bootstrap.model_loaded", map[string]any{
		"model":       nlp.ModelName,
		"duration_ms": time.Since(start).Milliseconds(),
		"env":         cfg.Env,
	})

	app := &App{
		Config: cfg,
		Model:  model,
	}
	buildServices(app)

	app.Router = server.NewRouter(cfg, server.RouterDeps{
		API:    []server.RouteRegistrar{app.AnalysisHandler},
		Web:    app.WebHandler,
		Health: app.Health.Handler(),
	})

	return app, nil
}

func buildServices(app *App) {
	analysisSvc := analyses.NewService(app.Model)

	app.AnalysesService = analysisSvc
	app.AnalysisHandler = analyses.NewHandler(analysisSvc, app.Config.MaxUploadBytes)
	app.WebHandler = web.NewHandler(analysisSvc, app.Config.MaxUploadBytes)
	app.Health = health.NewService(app.Model)
}

