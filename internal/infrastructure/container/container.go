// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	appImporting "github.com/cookingwith/core/internal/application/importing"
	appTranslation "github.com/cookingwith/core/internal/application/translation"
	"github.com/cookingwith/core/internal/infrastructure/config"
	"github.com/cookingwith/core/internal/infrastructure/extract"
	"github.com/cookingwith/core/internal/infrastructure/http/apiserver"
	"github.com/cookingwith/core/internal/infrastructure/monitoring"
	gormRepo "github.com/cookingwith/core/internal/infrastructure/persistence/gorm"
	"github.com/cookingwith/core/internal/infrastructure/persistence/postgres"
	"github.com/cookingwith/core/internal/infrastructure/persistence/sqlite"
	"github.com/cookingwith/core/internal/infrastructure/queue"
	"github.com/cookingwith/core/internal/infrastructure/translate"
	"github.com/cookingwith/core/internal/parser"
	"github.com/cookingwith/core/internal/ports/inbound"
	"github.com/cookingwith/core/internal/ports/outbound"
	"github.com/cookingwith/core/pkg/healthcheck"
	"github.com/cookingwith/core/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	QueueModule,
	RepositoryModule,
	ParserModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the GORM database connection
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" {
			db, err := postgres.Connect(cfg, log)
			if err != nil {
				return nil, err
			}
			if cfg.Database.AutoMigrate {
				if err := gormRepo.Migrate(db); err != nil {
					return nil, err
				}
			}
			return db, nil
		}

		logLevel := gormLogger.Warn
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.SQLitePath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.SQLitePath))
		return db, nil
	},
)

// QueueModule provides the Redis client and the job dispatcher. Without
// Redis the inline dispatcher processes jobs in this process; the
// lifecycle hook binds the translation service to it once built.
var QueueModule = fx.Provide(
	queue.NewRedisClient,
	func(client *redis.Client, cfg *config.Config, log *zap.Logger) outbound.JobDispatcher {
		if !cfg.Redis.Enable || client == nil {
			return queue.NewInlineDispatcher(log)
		}
		return queue.NewRedisDispatcher(client, cfg.Redis.QueueName, log)
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewRecipeRepository,
	gormRepo.NewNewsletterRepository,
	gormRepo.NewImportRepository,
	gormRepo.NewTranslationRepository,
)

// ParserModule provides the parser strategies and registry
var ParserModule = fx.Provide(
	extract.NewWebpageClient,
	extract.NewOCRClient,
	func(cfg *config.Config, log *zap.Logger) *parser.SourceTable {
		return parser.NewSourceTable(cfg.Extractor.SourceRulePath, log)
	},
	func(extractor outbound.PageExtractor, sources *parser.SourceTable, ocr outbound.TextExtractor, log *zap.Logger) *parser.Registry {
		return parser.NewRegistry(
			parser.NewWebpageParser(extractor, sources, log),
			parser.NewImageParser(ocr, log),
			parser.NewTextParser(log),
		)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	translate.NewProviderClient,
	appTranslation.NewService,
	func(
		registry *parser.Registry,
		recipes outbound.RecipeRepository,
		imports outbound.ImportRepository,
		translations outbound.TranslationRepository,
		dispatcher outbound.JobDispatcher,
		log *zap.Logger,
	) inbound.ImportService {
		return appImporting.NewImportService(registry, recipes, imports, translations, dispatcher, log)
	},
)

// HTTPModule provides the API server, handlers and metrics
var HTTPModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(m *monitoring.MetricsCollector) outbound.TranslationMetrics { return m },
	apiserver.NewHandlers,
	apiserver.NewServer,
	func(cfg *config.Config, log *zap.Logger, db *gorm.DB, redisClient *redis.Client) *healthcheck.HealthCheck {
		hc := healthcheck.New(cfg.App.Version, log)
		hc.Register(healthcheck.NewDatabaseChecker(db))
		if redisClient != nil {
			hc.Register(healthcheck.NewRedisChecker(redisClient))
		}
		return hc
	},
)

// LifecycleModule wires start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	dispatcher outbound.JobDispatcher,
	server *apiserver.Server,
	translationService inbound.TranslationService,
) {
	// The inline dispatcher needs the service it will drive; it cannot
	// take it at construction because the service owns the dispatcher.
	if inline, ok := dispatcher.(*queue.InlineDispatcher); ok {
		inline.Bind(translationService)
	}

	var worker *queue.Worker
	if cfg.Import.WorkerEnabled && redisClient != nil {
		worker = queue.NewWorker(redisClient, cfg.Redis.QueueName, cfg.Import.WorkerCount, translationService, log)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting application",
				zap.String("name", cfg.App.Name),
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if worker != nil {
				worker.Start()
			}

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down application")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if worker != nil {
				worker.Stop()
			}

			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis client", zap.Error(err))
				}
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
