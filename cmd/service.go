package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"gamedata-manager/core/archive"
	"gamedata-manager/core/cache"
	"gamedata-manager/core/casc"
	"gamedata-manager/core/config"
	"gamedata-manager/core/logger"
	"gamedata-manager/core/storage"
	"gamedata-manager/feature/gamedata"
)

// buildService wires the full pipeline from configuration: logger,
// archive source (local directory or remote mirror), location index,
// cache registry, and the gamedata service with its indices opened.
// The returned cleanup releases pooled archive handles.
func buildService(cfg *config.Config, logg *zap.Logger) (*gamedata.Service, func(), error) {
	var source archive.Source
	cleanup := func() {}

	if cfg.Remote.Enabled {
		client, err := storage.NewClient(cfg.Remote)
		if err != nil {
			return nil, nil, fmt.Errorf("remote mirror: %w", err)
		}
		source = archive.NewRemote(client, cfg.Remote.Bucket, cfg.Remote.Prefix, logg)
	} else {
		store, err := archive.NewStore(cfg.Archive.Dir, cfg.Archive.MaxOpenArchives, logg)
		if err != nil {
			return nil, nil, err
		}
		source = store
		cleanup = store.CloseAll
	}

	index, err := archive.LoadIndex(filepath.Join(cfg.Archive.Dir, cfg.Archive.IndexFile))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	reg := cache.NewRegistry(logg)
	svc := gamedata.NewService(source, index.Locator(), reg, logg)

	rootData, err := os.ReadFile(filepath.Join(cfg.Archive.Dir, cfg.Archive.RootFile))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("read root index: %w", err)
	}
	encData, err := os.ReadFile(filepath.Join(cfg.Archive.Dir, cfg.Archive.EncodingFile))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("read encoding table: %w", err)
	}

	locale := casc.ParseLocale(cfg.Archive.Locale)
	if err := svc.OpenIndices(rootData, encData, locale); err != nil {
		// Salvaged entries keep a damaged root usable; the warning is
		// already logged, so the CLI keeps going.
		logg.Warn("continuing with partially parsed indices", zap.Error(err))
	}
	return svc, cleanup, nil
}

// setup loads configuration and builds the logger shared by every
// subcommand.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}
