package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"heredity/adapters/memory"
	"heredity/adapters/postgres"
	"heredity/app"
	"heredity/domain/genetics"
	"heredity/internal"
	"heredity/internal/api"
	"heredity/internal/config"
	apperrors "heredity/internal/errors"
	"heredity/internal/inference"
	"heredity/internal/migration"
	"heredity/ports"
	"heredity/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and applies the schema
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}

	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.DatabaseError("failed to ping database", err)
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runs ports.RunRepository
	if appConfig.UsePostgres() {
		db, err := initDatabase(ctx, appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		runs = postgres.NewRunRepository(db)
		logger.Info("persisting runs to PostgreSQL")
	} else {
		runs = memory.NewRunRepository()
		logger.Info("DATABASE_URL not set, keeping runs in memory")
	}

	engine := inference.NewEngine(genetics.DefaultTables(),
		inference.WithWorkers(appConfig.Inference.Workers),
		inference.WithMaxPopulation(appConfig.Inference.MaxPopulation),
		inference.WithLogger(logger),
	)
	service := app.NewInferenceService(engine, runs, logger)

	router := api.NewRouter(api.NewInferenceHandler(service, logger))
	handler, err := ui.NewApp(service, router, logger)
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed: %v", err)
		}
	}()

	logger.Info("starting heredity server on port %s (workers=%d, max population=%d)",
		appConfig.Server.Port, appConfig.Inference.Workers, appConfig.Inference.MaxPopulation)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	logger.Info("server stopped")
}
