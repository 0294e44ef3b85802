package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/de-tools/insight-deck/pkg/ingest"
	"github.com/de-tools/insight-deck/pkg/services/config"
)

// Settings are the flags shared by every command.
type Settings struct {
	ConfigPath string
	Verbose    bool
}

func loadConfig(ctx context.Context, settings *Settings) (context.Context, *config.Config, error) {
	cfg, err := config.Load(settings.ConfigPath)
	if err != nil {
		return ctx, nil, err
	}
	level := cfg.LogLevel()
	if settings.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx), cfg, nil
}

func readTable(path string) (ingest.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return ingest.RawTable{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	raw, err := ingest.Read(filepath.Base(path), f)
	if err != nil {
		return ingest.RawTable{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return raw, nil
}
