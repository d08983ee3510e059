package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/Veraticus/cnis-flow/internal/cnis"
	"github.com/Veraticus/cnis-flow/internal/config"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/service"
	"github.com/Veraticus/cnis-flow/internal/storage"
)

// currentConfig returns the loaded configuration, falling back to defaults
// when the root command's pre-run did not execute.
func currentConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, err
	}
	appConfig = cfg
	return cfg, nil
}

// initStorage opens the configured database and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newParser builds a parser tuned by the configuration.
func newParser() (*cnis.Parser, error) {
	cfg, err := currentConfig()
	if err != nil {
		return nil, err
	}
	return cnis.NewParser(cnis.WithHeaderLimit(cfg.Parser.HeaderLimit)), nil
}

// parseFile extracts the text of path and parses it.
func parseFile(ctx context.Context, extractor service.TextExtractor, parser *cnis.Parser, path string) (*model.Extract, error) {
	text, err := extractor.ExtractText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	extract, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return extract, nil
}

// resolveGender picks the flag value, then the fallback, then the configured default.
func resolveGender(flag string, fallback model.Gender) (model.Gender, error) {
	if flag != "" {
		g := model.ParseGender(flag)
		if g == "" {
			return "", fmt.Errorf("invalid gender %q (use male or female)", flag)
		}
		return g, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	cfg, err := currentConfig()
	if err != nil {
		return "", err
	}
	return model.ParseGender(cfg.Calculation.Gender), nil
}

// newImport wraps a parsed extract for storage under a fresh id.
func newImport(path string, gender model.Gender, extract *model.Extract) *model.Import {
	extract.Profile.Gender = gender
	return &model.Import{
		ID:         uuid.NewString(),
		ImportedAt: time.Now().UTC(),
		SourceFile: path,
		Gender:     gender,
		Extract:    *extract,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
