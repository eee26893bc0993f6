package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"caretrack/internal/infrastructure/config"
	"caretrack/internal/infrastructure/database"
	"caretrack/internal/infrastructure/migration"
	httpContainer "caretrack/internal/interfaces/http"
	"caretrack/internal/shared/biztime"
	"caretrack/internal/shared/logger"
)

var (
	env                string
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the CareTrack HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(""); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server", "environment", env)

	// Route registration noise goes through our own logger instead.
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := checkMigrations(log); err != nil {
		return fmt.Errorf("migration check failed: %w", err)
	}

	container := httpContainer.NewContainer(database.Get(), cfg, log)
	if err := container.StartDispatcher(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	log.Infow("event dispatcher started")

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	if err := container.Shutdown(ctx); err != nil {
		log.Warnw("container shutdown reported errors", "error", err)
	}

	log.Infow("server exited gracefully")
	return nil
}

func checkMigrations(log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		log.Warnw("failed to resolve migration scripts path", "error", err)
		return nil
	}

	migrator := migration.NewMigrator(scriptsPath)
	version, err := migrator.Version(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}

	log.Infow("current migration version", "version", version)
	return nil
}
