package service

import (
	"context"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/repository"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// ItemService runs the shopping list operations against the configured
// store. Each method makes exactly one store call.
type ItemService struct {
	server *server.Server
	store  repository.ItemStore
}

func NewItemService(s *server.Server, store repository.ItemStore) *ItemService {
	return &ItemService{
		server: s,
		store:  store,
	}
}

// List returns the items matching q. The result is never nil.
func (s *ItemService) List(ctx context.Context, q model.ListQuery) ([]model.Item, error) {
	var items []model.Item

	err := s.observe(ctx, repository.OpList, func(ctx context.Context) error {
		var err error
		items, err = s.store.List(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Create inserts a new, not yet purchased item.
func (s *ItemService) Create(ctx context.Context, item model.NewItem) error {
	return s.observe(ctx, repository.OpInsert, func(ctx context.Context) error {
		return s.store.Insert(ctx, item)
	})
}

// Update writes the fields set in patch to the item with the given id.
// An unknown id or an empty patch is not an error.
func (s *ItemService) Update(ctx context.Context, id model.ID, patch model.ItemPatch) error {
	return s.observe(ctx, repository.OpUpdate, func(ctx context.Context) error {
		return s.store.Update(ctx, id, patch)
	})
}

// Delete removes the item with the given id. An unknown id is not an error.
func (s *ItemService) Delete(ctx context.Context, id model.ID) error {
	return s.observe(ctx, repository.OpDelete, func(ctx context.Context) error {
		return s.store.Delete(ctx, id)
	})
}

// Ping checks that the store is reachable.
func (s *ItemService) Ping(ctx context.Context) error {
	return s.observe(ctx, repository.OpPing, func(ctx context.Context) error {
		return s.store.Ping(ctx)
	})
}

// observe wraps one store call with a New Relic segment, the store
// operation counter and a warning when it runs past the slow threshold.
func (s *ItemService) observe(ctx context.Context, operation string, call func(context.Context) error) error {
	if txn := newrelic.FromContext(ctx); txn != nil {
		defer txn.StartSegment("store/" + operation).End()
	}

	start := time.Now()
	err := call(ctx)
	elapsed := time.Since(start)

	if s.server.Metrics != nil {
		s.server.Metrics.ObserveStore(operation, err)
	}

	logger := zerolog.Ctx(ctx)
	if threshold := s.slowThreshold(); threshold > 0 && elapsed > threshold {
		logger.Warn().
			Str("operation", operation).
			Dur("duration", elapsed).
			Dur("threshold", threshold).
			Msg("slow store operation")
	}

	if err != nil {
		logger.Debug().Err(err).Str("operation", operation).Msg("store operation failed")
	}

	return err
}

func (s *ItemService) slowThreshold() time.Duration {
	if s.server.Config == nil || s.server.Config.Observability == nil {
		return 0
	}
	return s.server.Config.Observability.Logging.SlowQueryThreshold
}
