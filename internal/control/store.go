package control

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietddude/bizday/internal/core/config"
	"github.com/vietddude/bizday/internal/infra/store"
	"github.com/vietddude/bizday/internal/infra/store/dynamo"
	"github.com/vietddude/bizday/internal/infra/store/memory"
	"github.com/vietddude/bizday/internal/infra/store/redisstore"
	"github.com/vietddude/bizday/internal/infra/store/sqlstore"
)

// Backend is an opened document store together with its lifecycle hooks.
type Backend struct {
	store.Client
	Name string

	health func(ctx context.Context) error
	close  func() error
	db     *sqlstore.DB
}

// Health reports whether the backend is reachable. Backends without a cheap
// check are always healthy.
func (b *Backend) Health(ctx context.Context) error {
	if b.health == nil {
		return nil
	}
	return b.health(ctx)
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenStore opens the backend selected by cfg.Backend.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		slog.Info("Using memory store")
		return &Backend{Client: memory.NewMemoryStorage(cfg.Memory), Name: config.BackendMemory}, nil

	case config.BackendDynamoDB:
		slog.Info("Using DynamoDB store", "endpoint", cfg.DynamoDB.Endpoint)
		return &Backend{Client: dynamo.NewClient(cfg.DynamoDB), Name: config.BackendDynamoDB}, nil

	case config.BackendRedis:
		client, err := redisstore.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		slog.Info("Using Redis store")
		return &Backend{
			Client: client,
			Name:   config.BackendRedis,
			health: client.Health,
			close:  client.Close,
		}, nil

	case config.BackendSQL:
		db, err := sqlstore.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if cfg.Database.Migrate {
			if err := db.Migrate(ctx); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		slog.Info("Using SQL store", "driver", cfg.Database.Driver)
		return &Backend{
			Client: sqlstore.NewDocumentRepo(db),
			Name:   config.BackendSQL,
			health: db.Health,
			close:  db.Close,
			db:     db,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
