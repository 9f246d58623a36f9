package repository

import (
	"context"
	"fmt"
	"log/slog"

	"choplab/internal/config"
	"choplab/internal/models/auth"
)

type userStore interface {
	UserExists(ctx context.Context, username string) (bool, error)
	Close()
}

type existenceCache interface {
	Lookup(ctx context.Context, username string) (exists, hit bool, err error)
	Store(ctx context.Context, username string, exists bool) error
	Close() error
}

// Repo is the user directory backed by postgres, with an optional redis
// cache in front of it.
type Repo struct {
	db     userStore
	cache  existenceCache
	logger *slog.Logger
}

var _ auth.Directory = (*Repo)(nil)

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Repo, error) {
	db, err := newDb(ctx, cfg.DBConnectionString)
	if err != nil {
		return nil, err
	}

	r := &Repo{
		db:     db,
		logger: logger,
	}
	if cfg.RedisAddr != "" {
		r.cache = newCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	}
	return r, nil
}

// Exists reports whether username is registered. Cache failures are
// logged and fall through to the database.
func (r *Repo) Exists(ctx context.Context, username string) (bool, error) {
	logger := r.logger.With(
		slog.String("op", "repository.exists"),
		slog.String("username", username),
	)

	if r.cache != nil {
		exists, hit, err := r.cache.Lookup(ctx, username)
		if err != nil {
			logger.Error("failed to get data from redis", slog.Any("error", err))
		} else if hit {
			return exists, nil
		}
	}

	exists, err := r.db.UserExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed checking user: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.Store(ctx, username, exists); err != nil {
			logger.Error("failed to set data to redis", slog.Any("error", err))
		}
	}
	return exists, nil
}

func (r *Repo) Close() {
	r.db.Close()
	if r.cache != nil {
		if err := r.cache.Close(); err != nil {
			r.logger.Error("failed to close redis", slog.Any("error", err))
		}
	}
}
