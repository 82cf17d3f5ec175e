package repository

import (
	"context"
	"fmt"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/lib/postgrest"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
)

// ItemStore is the storage contract for shopping items.
//
// Ids are opaque: each store returns the key its table uses and accepts
// the same token back. Update and Delete of an id that does not exist
// succeed. Every failure is
// returned as an *errs.HTTPError carrying the storage message.
type ItemStore interface {
	List(ctx context.Context, q model.ListQuery) ([]model.Item, error)
	Insert(ctx context.Context, item model.NewItem) error
	Update(ctx context.Context, id model.ID, patch model.ItemPatch) error
	Delete(ctx context.Context, id model.ID) error
	Ping(ctx context.Context) error
}

// Repositories is a container for all repository instances.
type Repositories struct {
	Items ItemStore
}

// NewRepositories builds the item store selected by storage.driver.
//
// The postgres driver needs s.DB, which server.New only opens for that
// driver.
func NewRepositories(s *server.Server) (*Repositories, error) {
	storage := s.Config.Storage

	var items ItemStore
	switch storage.Driver {
	case config.DriverPostgREST:
		client, err := postgrest.NewClient(storage.URL, storage.ServiceRoleKey,
			postgrest.WithTimeout(storage.Timeout),
			postgrest.WithLogger(*s.Logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgrest client: %w", err)
		}
		items = NewRestItemRepository(client, storage.Table)

	case config.DriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("storage driver %q requires a database connection", storage.Driver)
		}
		items = NewPostgresItemRepository(s.DB.Pool, storage.Table)

	case config.DriverMemory:
		items = NewMemoryItemRepository()

	default:
		return nil, fmt.Errorf("unknown storage driver %q", storage.Driver)
	}

	s.Logger.Info().Str("driver", storage.Driver).Str("table", storage.Table).Msg("item store ready")

	return &Repositories{Items: items}, nil
}
