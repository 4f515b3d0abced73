package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/census-prep/internal/categories"
	"github.com/Veraticus/census-prep/internal/common"
	"github.com/Veraticus/census-prep/internal/config"
	"github.com/Veraticus/census-prep/internal/csvio"
	"github.com/Veraticus/census-prep/internal/engine"
	"github.com/Veraticus/census-prep/internal/model"
	"github.com/Veraticus/census-prep/internal/storage"
	"github.com/spf13/viper"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

// newEngine builds an engine with the configured mappings.
func newEngine(cfg *config.Config, opts ...engine.Option) (*engine.Engine, error) {
	mappings, err := categories.LoadMappings(cfg.MappingsPath)
	if err != nil {
		return nil, common.NewUserError("could not load category mappings", err)
	}
	opts = append([]engine.Option{
		engine.WithMappings(mappings),
		engine.WithLogger(slog.Default()),
	}, opts...)
	return engine.New(opts...)
}

// initStorage opens and migrates the run history database.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

func readTable(kind, path string) (*model.Table, error) {
	if path == "" {
		return nil, common.NewUserError(fmt.Sprintf("a %s file is required", kind), common.ErrMissingConfig)
	}
	t, err := csvio.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not read %s", kind), err)
	}
	slog.Debug("Loaded table", "kind", kind, "path", path, "rows", t.Len(), "columns", len(t.Columns))
	return t, nil
}

// parseOutputs splits name=path specs. A bare path is named after its file.
func parseOutputs(specs []string) (map[string]string, error) {
	outputs := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			path = spec
			name = outputName(spec)
		}
		name = strings.TrimSpace(name)
		path = strings.TrimSpace(path)
		if name == "" || path == "" {
			return nil, common.NewUserError(fmt.Sprintf("invalid --output %q, want name=path", spec), common.ErrInvalidConfig)
		}
		if _, dup := outputs[name]; dup {
			return nil, common.NewUserError(fmt.Sprintf("output %q given twice", name), common.ErrInvalidConfig)
		}
		outputs[name] = path
	}
	return outputs, nil
}

func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
