package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carbonconstruct/calculator-backend/internal/assessment"
	"carbonconstruct/calculator-backend/internal/assessment/metrics"
	"carbonconstruct/calculator-backend/internal/compliance"
	"carbonconstruct/calculator-backend/internal/config"
	"carbonconstruct/calculator-backend/internal/materials"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Material coefficient library
	snapshot, refresher, err := buildMaterialSnapshot(cfg, db, logger)
	if err != nil {
		logger.Fatal("Failed to load material library", zap.Error(err))
	}
	if refresher != nil {
		if err := refresher.Start(); err != nil {
			logger.Fatal("Failed to start material refresher", zap.Error(err))
		}
		defer refresher.Stop()
	}
	logger.Info("Material library loaded",
		zap.String("source", cfg.Materials.Source),
		zap.Int("materials", snapshot.Current().Len()))

	// Benchmark tables
	tables, err := loadBenchmarkTables(cfg)
	if err != nil {
		logger.Fatal("Failed to load benchmark tables", zap.Error(err))
	}
	logger.Info("Benchmark tables loaded", zap.String("version", tables.Version()))

	// Assessment module
	assessmentRepo := assessment.NewPostgresRepository(db)
	assessmentMetrics := metrics.New()
	assessmentService := assessment.NewService(snapshot, tables, assessmentRepo, logger, assessmentMetrics)
	assessmentHandler := assessment.NewHandler(assessmentService, logger)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		assessmentHandler.RegisterRoutes(api)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"materials": snapshot.Current().Len(),
			"tables":    tables.Version(),
			"timestamp": time.Now(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Starting calculator API", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// buildMaterialSnapshot loads the initial coefficient snapshot and, for the
// postgres source, wires the periodic refresher.
func buildMaterialSnapshot(cfg *config.Config, db *sqlx.DB, logger *zap.Logger) (*materials.Snapshot, *materials.Refresher, error) {
	switch cfg.Materials.Source {
	case "file":
		store, err := materials.LoadFile(cfg.Materials.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return materials.NewSnapshot(store), nil, nil

	case "postgres":
		repo := materials.NewPostgresRepository(db)
		snapshot := materials.NewSnapshot(nil)
		refresher := materials.NewRefresher(snapshot, repo, cfg.Materials.RefreshSchedule, logger)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := refresher.Refresh(ctx); err != nil {
			return nil, nil, err
		}
		return snapshot, refresher, nil

	default:
		return nil, nil, fmt.Errorf("unknown materials source: %s", cfg.Materials.Source)
	}
}

func loadBenchmarkTables(cfg *config.Config) (*compliance.TableSet, error) {
	if cfg.Benchmarks.FilePath == "" {
		return compliance.DefaultTables(), nil
	}
	return compliance.LoadFile(cfg.Benchmarks.FilePath)
}
