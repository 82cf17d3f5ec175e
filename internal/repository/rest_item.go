package repository

import (
	"context"
	"errors"
	"net/url"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/errs"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/lib/postgrest"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/sqlerr"
)

// restInsertRow is the body of an insert. purchased is always written so
// the row does not depend on a column default.
type restInsertRow struct {
	Name      string         `json:"name"`
	Quantity  model.Quantity `json:"quantity"`
	Place     *string        `json:"place"`
	Purchased bool           `json:"purchased"`
}

// RestItemRepository stores items in a table exposed by PostgREST.
type RestItemRepository struct {
	client *postgrest.Client
	table  string
}

func NewRestItemRepository(client *postgrest.Client, table string) *RestItemRepository {
	return &RestItemRepository{client: client, table: table}
}

// List translates q into PostgREST filters:
//
//	?select=*&name=ilike.*milk*&place=eq.Fridge&order=place.asc
func (r *RestItemRepository) List(ctx context.Context, q model.ListQuery) ([]model.Item, error) {
	params := listParams(q)

	items := []model.Item{}
	if err := r.client.Select(ctx, r.table, params, &items); err != nil {
		return nil, r.handleError(err)
	}
	if items == nil {
		// A "null" body decodes to a nil slice.
		items = []model.Item{}
	}
	return items, nil
}

func listParams(q model.ListQuery) url.Values {
	params := url.Values{}
	params.Set("select", "*")

	if q.Search != "" {
		params.Set("name", "ilike.*"+model.EscapeLike(q.Search)+"*")
	}
	if q.Place != "" {
		params.Set("place", "eq."+q.Place)
	}

	if q.Sort == model.SortPlace {
		params.Set("order", "place.asc")
	} else {
		params.Set("order", "created_at.desc")
	}
	return params
}

func (r *RestItemRepository) Insert(ctx context.Context, item model.NewItem) error {
	rows := []restInsertRow{{
		Name:     item.Name,
		Quantity: item.Quantity,
		Place:    item.Place,
	}}
	return r.handleError(r.client.Insert(ctx, r.table, rows))
}

func (r *RestItemRepository) Update(ctx context.Context, id model.ID, patch model.ItemPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return r.handleError(r.client.Update(ctx, r.table, idFilter(id), restPatch(patch)))
}

// restPatch is the PATCH body: only the fields the patch sets, with null
// for the ones it clears.
func restPatch(patch model.ItemPatch) map[string]any {
	body := make(map[string]any, 4)
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Quantity.Set {
		body["quantity"] = patch.Quantity.Value
	}
	if patch.Place.Set {
		body["place"] = patch.Place.Ptr()
	}
	if patch.Purchased != nil {
		body["purchased"] = *patch.Purchased
	}
	return body
}

func (r *RestItemRepository) Delete(ctx context.Context, id model.ID) error {
	return r.handleError(r.client.Delete(ctx, r.table, idFilter(id)))
}

func (r *RestItemRepository) Ping(ctx context.Context) error {
	return r.handleError(r.client.Ping(ctx))
}

func idFilter(id model.ID) url.Values {
	filter := url.Values{}
	filter.Set("id", "eq."+id.String())
	return filter
}

// handleError keeps the message PostgREST reported and classifies its
// SQLSTATE the same way pgx errors are classified.
func (r *RestItemRepository) handleError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *postgrest.Error
	if errors.As(err, &apiErr) {
		return sqlerr.HandleStateError(r.table, apiErr.Code, apiErr.Error())
	}
	return errs.NewStorageError(err.Error(), nil)
}
