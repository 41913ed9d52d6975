package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vitalscope/vitalscope/internal/persist"
	"github.com/vitalscope/vitalscope/internal/store"
	"github.com/vitalscope/vitalscope/pkg/config"
)

// loadConfig resolves the config: an explicit path wins, otherwise the
// nearest .vitalscope/config.yaml above the working directory, otherwise
// defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		path = config.FindConfigFile(cwd)
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

// openStore builds the configured repository and returns a hydrated store.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	repo, err := persist.FromStorageConfig(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage backend: %w", err)
	}
	st := store.New(repo)
	st.Hydrate(ctx)
	return st, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
