package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/spf13/cobra"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chemstack/chemconsole/internal"
	"github.com/chemstack/chemconsole/internal/mockapi"
	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/pkg/logger"
)

var mockAPICmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Start the development backend",
	Long:  `Start the bundled HTTP backend the console can be pointed at during development.`,
	Run: func(cmd *cobra.Command, args []string) {
		startMockAPI()
	},
}

func startMockAPI() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.MockAPI.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "mock_api.jwt_secret must be set")
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := openMockDB(cfg.MockAPI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}

	tokens := mockapi.NewJWTTokenGenerator(cfg.MockAPI.JWTSecret, cfg.MockAPI.TokenTTL)
	service := mockapi.NewService(db, tokens, lg)
	handler := mockapi.NewHandler(service, tokens, permission.NewChecker())

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	mockapi.RegisterRoutes(router, handler)

	addr := fmt.Sprintf(":%d", cfg.MockAPI.Port)
	slog.Info("Starting mock API server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.MockAPI.ReadHeaderTimeout,
		ReadTimeout:       cfg.MockAPI.ReadTimeout,
		WriteTimeout:      cfg.MockAPI.WriteTimeout,
		IdleTimeout:       cfg.MockAPI.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func openMockDB(cfg internal.MockAPIConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormsqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}
