package config

import (
	"context"
	"os"

	"punchclock/internal/errors"
	"punchclock/internal/logging"
	"punchclock/internal/repository/sqlite"
)

// OpenStore opens the timesheet store described by the configuration,
// creating the data directory first when it does not exist yet.
func OpenStore(ctx context.Context, cfg *Config, log logging.Logger) (sqlite.Store, error) {
	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		return nil, errors.NewDataDirError(cfg.Database.Dir, err)
	}

	return sqlite.Open(ctx, cfg.GetDatabasePath(), sqlite.Options{
		PoolSize:    cfg.Database.PoolSize,
		BusyTimeout: cfg.Database.BusyTimeout,
		Logger:      log,
	})
}
