package storage

import (
	"context"
	"log/slog"
)

// Open picks the backend: MongoDB when a URL is configured and reachable,
// local files otherwise. A configured-but-unreachable MongoDB demotes to the
// file backend with a single warning instead of refusing to start.
func Open(ctx context.Context, logger *slog.Logger, mongoURL, mongoDatabase, dataDir string) (Backend, error) {
	if mongoURL != "" {
		backend, err := NewMongoBackend(ctx, mongoURL, mongoDatabase)
		if err == nil {
			logger.Info("storage backend ready", slog.String("backend", backend.Name()), slog.String("database", mongoDatabase))
			return backend, nil
		}
		logger.Warn("mongodb unavailable, falling back to file storage", slog.Any("error", err))
	}

	backend, err := NewFileBackend(dataDir)
	if err != nil {
		return nil, err
	}
	logger.Info("storage backend ready", slog.String("backend", backend.Name()), slog.String("dir", dataDir))
	return backend, nil
}
