package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/google/uuid"
)

// MemoryItemRepository keeps items in process. It is meant for local runs
// and tests; nothing survives a restart.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items map[string]model.Item
	now   func() time.Time
}

func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items: make(map[string]model.Item),
		now:   time.Now,
	}
}

func (r *MemoryItemRepository) List(_ context.Context, q model.ListQuery) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(q.Search)

	items := make([]model.Item, 0, len(r.items))
	for _, item := range r.items {
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if q.Place != "" && (item.Place == nil || *item.Place != q.Place) {
			continue
		}
		items = append(items, item)
	}

	// Newest first. Equal timestamps fall back to id so the order is stable.
	slices.SortFunc(items, func(a, b model.Item) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	if q.Sort == model.SortPlace {
		// Ascending with NULL places last, as Postgres orders them.
		slices.SortStableFunc(items, func(a, b model.Item) int {
			switch {
			case a.Place == nil && b.Place == nil:
				return 0
			case a.Place == nil:
				return 1
			case b.Place == nil:
				return -1
			}
			return strings.Compare(*a.Place, *b.Place)
		})
	}

	return items, nil
}

func (r *MemoryItemRepository) Insert(_ context.Context, item model.NewItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := model.TextID(uuid.NewString())
	r.items[id.String()] = model.Item{
		ID:        id,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Place:     cloneString(item.Place),
		Purchased: false,
		CreatedAt: r.now(),
	}
	return nil
}

func (r *MemoryItemRepository) Update(_ context.Context, id model.ID, patch model.ItemPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id.String()]
	if !ok {
		return nil
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity.Set {
		item.Quantity = patch.Quantity.Value
	}
	if patch.Place.Set {
		item.Place = patch.Place.Ptr()
	}
	if patch.Purchased != nil {
		item.Purchased = *patch.Purchased
	}

	r.items[id.String()] = item
	return nil
}

func (r *MemoryItemRepository) Delete(_ context.Context, id model.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id.String())
	return nil
}

func (r *MemoryItemRepository) Ping(context.Context) error {
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
