package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/documents"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/llm/gemini"
	"resume-analyzer/internal/llm/huggingface"
	"resume-analyzer/internal/llm/openai"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/shared/storage/object"
	localstore "resume-analyzer/internal/shared/storage/object/local"
	s3store "resume-analyzer/internal/shared/storage/object/s3"
	"resume-analyzer/internal/shared/telemetry"
	"resume-analyzer/internal/web"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Generator        llm.Generator
	DocumentsRepo    documents.Repo
	AnalysesRepo     analyses.Repo
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analyses.Handler
	WebHandler       *web.Handler
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

type namedGenerator interface {
	llm.Generator
	Model() string
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.LLMProvider) == "" {
		cfg.LLMProvider = config.NormalizeProvider("")
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, model, err := BuildGenerator(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		Generator: gen,
	}
	buildServices(app, model)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		AnalysisHandler: app.AnalysisHandler,
		WebHandler:      app.WebHandler,
		Health:          health.NewService(app.DB),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"database":     sqlDB != nil,
		"llm_provider": cfg.LLMProvider,
		"llm_model":    model,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "err": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Options{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			KMSKeyID:  cfg.SSEKMSKeyID,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// BuildGenerator returns the text generator for the configured provider and
// the model name it will call.
func BuildGenerator(ctx context.Context, cfg config.Config) (llm.Generator, string, error) {
	var (
		gen namedGenerator
		err error
	)
	switch cfg.LLMProvider {
	case "none":
		return llm.PlaceholderGenerator{}, "", nil
	case "openai":
		gen, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	case "gemini":
		gen, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		if strings.TrimSpace(cfg.HFAPIToken) == "" {
			telemetry.Warn("bootstrap.hf_token_missing", map[string]any{"note": "anonymous requests are heavily rate limited"})
		}
		gen = huggingface.NewClient(huggingface.Options{
			Token:   cfg.HFAPIToken,
			Model:   cfg.LLMModel,
			BaseURL: cfg.HFBaseURL,
			Timeout: cfg.LLMTimeout,
		})
	}
	if err != nil {
		return nil, "", fmt.Errorf("llm provider %s: %w", cfg.LLMProvider, err)
	}
	return gen, gen.Model(), nil
}

func buildServices(app *App, model string) {
	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{
		Store:           app.Store,
		Repo:            app.DocumentsRepo,
		StorageProvider: app.Config.ObjectStoreType,
	}
	app.AnalysesService = &analyses.Service{
		Repo:     app.AnalysesRepo,
		Docs:     app.DocumentsService,
		LLM:      app.Generator,
		Provider: app.Config.LLMProvider,
		Model:    model,
	}

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, app.Config.MaxUploadBytes)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
	app.WebHandler = web.NewHandler(app.DocumentsService, app.AnalysesService, app.Config.MaxUploadBytes)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
