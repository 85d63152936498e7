package app

import (
	"context"
	"errors"

	"bibliotech-auth/internal/auth"
	"bibliotech-auth/internal/config"
	"bibliotech-auth/internal/db"
	"bibliotech-auth/internal/directory"
	"bibliotech-auth/internal/logger"
	"bibliotech-auth/internal/redis"
	"bibliotech-auth/internal/session"
)

type Infra struct {
	Directory directory.Directory
	Markers   session.Store

	closers []func() error
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	dir, err := infra.directory(ctx, cfg)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	infra.Directory = dir

	markers, err := infra.markers(ctx, cfg)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	infra.Markers = markers

	seeds := []auth.Account{directory.BootstrapAdmin()}
	if cfg.SeedDemoUsers {
		seeds = append(seeds, directory.DemoReader())
	}

	created, err := directory.Seed(ctx, dir, seeds...)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	logger.Info("directory seeded", map[string]any{
		"created": created,
	})

	return infra, nil
}

func (i *Infra) directory(ctx context.Context, cfg config.Config) (directory.Directory, error) {
	if cfg.DirectoryBackend != config.BackendPostgres {
		logger.Info("directory ready", map[string]any{"backend": config.BackendMemory})
		return directory.NewMemory(), nil
	}

	database, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	i.closers = append(i.closers, database.Close)

	logger.Info("directory ready", map[string]any{"backend": config.BackendPostgres})
	return directory.NewPostgres(database), nil
}

func (i *Infra) markers(ctx context.Context, cfg config.Config) (session.Store, error) {
	if cfg.MarkerBackend != config.BackendRedis {
		logger.Info("marker store ready", map[string]any{"backend": config.BackendMemory})
		return session.NewMemoryStore(), nil
	}

	client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	i.closers = append(i.closers, client.Close)

	logger.Info("marker store ready", map[string]any{
		"backend": config.BackendRedis,
		"ttl":     cfg.MarkerTTL.String(),
	})
	return session.NewRedisStore(client.Client, cfg.MarkerTTL), nil
}

// Close releases backend connections.
func (i *Infra) Close() error {
	var errs []error
	for _, c := range i.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
