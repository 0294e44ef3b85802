package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/insight-deck/pkg/server"
	"github.com/de-tools/insight-deck/pkg/services/config"
	"github.com/de-tools/insight-deck/pkg/services/pipeline"
	"github.com/de-tools/insight-deck/pkg/services/retention"
	"github.com/de-tools/insight-deck/pkg/store/duckdb"
	"github.com/de-tools/insight-deck/pkg/store/duckdb/runs"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the InsightDeck web server",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to an optional YAML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	var history runs.Store
	if cfg.Storage.DuckDBPath != "" {
		var db *sql.DB
		db, err = duckdb.NewDB(duckdb.Settings{DbPath: cfg.Storage.DuckDBPath})
		if err != nil {
			return fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		defer db.Close()

		history, err = runs.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create report run store: %w", err)
		}
		zerolog.Ctx(ctx).Info().Str("path", cfg.Storage.DuckDBPath).Msg("report history enabled")

		pruneCtx, cancel := context.WithCancel(ctx)
		pruner := retention.NewRunner(history, retention.RunnerConfig{
			MaxAge:   cfg.Storage.Retention,
			Interval: cfg.Storage.PruneInterval,
		})
		go pruner.Run(pruneCtx)
		defer func() {
			cancel()
			<-pruner.Done()
		}()
	}

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Generator:      pipeline.New(cfg.Theme()),
			Runs:           history,
			Logger:         logger,
			MaxUploadBytes: cfg.MaxUploadBytes(),
		},
	})

	if err := api.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
