package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"odialipi-backend/internal/reports"
	"odialipi-backend/internal/shared/config"
	"odialipi-backend/internal/shared/server"
	"odialipi-backend/internal/shared/storage/db"
	"odialipi-backend/internal/shared/storage/object"
	"odialipi-backend/internal/shared/storage/object/local"
	"odialipi-backend/internal/shared/storage/object/s3"
	"odialipi-backend/internal/shared/telemetry"
	"odialipi-backend/internal/tasks"
	"odialipi-backend/internal/translit"
	"odialipi-backend/internal/users"
	"odialipi-backend/internal/vision"
	"odialipi-backend/internal/vision/gemini"
)

// App holds the wired application: repositories, services, and the router.
type App struct {
	Config config.Config
	DB     *sql.DB
	Router *gin.Engine

	UsersRepo    users.Repo
	TasksRepo    tasks.Repo
	TasksService *tasks.Service
	Reports      *reports.Service
	Engine       *translit.Engine
	Store        object.ObjectStore
}

// Build wires the full application from configuration. Outside production
// a missing or unreachable database falls back to in-memory repositories
// so the server still starts for local development and tests.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.buildRepos(ctx, cfg); err != nil {
		return nil, err
	}
	if err := app.buildStore(ctx, cfg); err != nil {
		return nil, err
	}

	app.TasksService = &tasks.Service{
		Repo:           app.TasksRepo,
		Store:          app.Store,
		Vision:         buildVision(cfg),
		VisionTimeout:  cfg.VisionTimeout,
		MaxUploadBytes: cfg.UploadMaxBytes,
	}
	app.Reports = &reports.Service{Tasks: app.TasksRepo}
	app.Engine = translit.NewEngine(buildRemote(cfg))

	usersSvc := users.NewService(app.UsersRepo)
	app.Router = server.NewRouter(server.RouterDeps{
		Config: cfg,
		Users: &users.Handler{
			Svc:     usersSvc,
			Reports: app.Reports,
			Tasks:   app.TasksRepo,
		},
		Tasks:    &tasks.Handler{Svc: app.TasksService},
		Reports:  &reports.Handler{Svc: app.Reports},
		Translit: &translit.Handler{Engine: app.Engine},
	})

	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func (a *App) buildRepos(ctx context.Context, cfg config.Config) error {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
		telemetry.Info("no database configured, using in-memory repositories", nil)
		a.UsersRepo = users.NewMemoryRepo()
		a.TasksRepo = tasks.NewMemoryRepo()
		return nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.Env == "production" {
			return fmt.Errorf("connect database: %w", err)
		}
		telemetry.Error("database unreachable, using in-memory repositories", map[string]any{"error": err.Error()})
		a.UsersRepo = users.NewMemoryRepo()
		a.TasksRepo = tasks.NewMemoryRepo()
		return nil
	}

	if err := db.RunMigrations(ctx, database); err != nil {
		_ = database.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	a.DB = database
	a.UsersRepo = &users.PGRepo{DB: database}
	a.TasksRepo = &tasks.PGRepo{DB: database}
	return nil
}

func (a *App) buildStore(ctx context.Context, cfg config.Config) error {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			return fmt.Errorf("build s3 store: %w", err)
		}
		a.Store = store
		return nil
	}
	a.Store = local.New(cfg.LocalStoreDir)
	return nil
}

func buildVision(cfg config.Config) vision.Client {
	if cfg.GeminiAPIKey == "" {
		telemetry.Info("no vision api key configured, uploads will fail extraction", nil)
		return vision.Placeholder{}
	}
	return gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
}

func buildRemote(cfg config.Config) translit.Source {
	if !cfg.TranslitRemote {
		return nil
	}
	return translit.NewRemoteSource(cfg.TranslitURL, cfg.TranslitTimeout)
}
