package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/model"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// id is read through to_jsonb so a bigint key comes back as a JSON number
// and a uuid or text key as a JSON string.
const itemColumns = "to_jsonb(id), name, quantity, place, purchased, created_at"

// PostgresItemRepository stores items in a PostgreSQL table. quantity is a
// jsonb column so numbers and strings both read back unchanged. Ids are
// bound as text parameters, which Postgres converts to the column type.
type PostgresItemRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresItemRepository(pool *pgxpool.Pool, table string) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool, table: table}
}

func (r *PostgresItemRepository) List(ctx context.Context, q model.ListQuery) ([]model.Item, error) {
	stmt, args := buildListQuery(r.table, q)

	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (r *PostgresItemRepository) Insert(ctx context.Context, item model.NewItem) error {
	stmt := fmt.Sprintf(
		"INSERT INTO %s (name, quantity, place, purchased) VALUES ($1, $2::jsonb, $3, false)",
		tableIdentifier(r.table),
	)

	_, err := r.pool.Exec(ctx, stmt, item.Name, quantityArg(item.Quantity), item.Place)
	return sqlerr.HandleError(err)
}

// Update writes the fields patch sets. Zero rows affected is not an error.
func (r *PostgresItemRepository) Update(ctx context.Context, id model.ID, patch model.ItemPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	stmt, args := buildUpdate(r.table, id, patch)
	_, err := r.pool.Exec(ctx, stmt, args...)
	return sqlerr.HandleError(err)
}

func (r *PostgresItemRepository) Delete(ctx context.Context, id model.ID) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = $1", tableIdentifier(r.table))

	_, err := r.pool.Exec(ctx, stmt, id.String())
	return sqlerr.HandleError(err)
}

func (r *PostgresItemRepository) Ping(ctx context.Context) error {
	return sqlerr.HandleError(r.pool.Ping(ctx))
}

// tableIdentifier quotes a possibly schema-qualified table name.
func tableIdentifier(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func buildListQuery(table string, q model.ListQuery) (string, []any) {
	var (
		sb    strings.Builder
		conds []string
		args  []any
	)

	sb.WriteString("SELECT " + itemColumns + " FROM " + tableIdentifier(table))

	if q.Search != "" {
		args = append(args, model.EscapeLike(q.Search))
		conds = append(conds, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if q.Place != "" {
		args = append(args, q.Place)
		conds = append(conds, fmt.Sprintf("place = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	if q.Sort == model.SortPlace {
		sb.WriteString(" ORDER BY place ASC")
	} else {
		sb.WriteString(" ORDER BY created_at DESC")
	}

	return sb.String(), args
}

func buildUpdate(table string, id model.ID, patch model.ItemPatch) (string, []any) {
	var (
		sets []string
		args []any
	)

	set := func(column, cast string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d%s", column, len(args), cast))
	}

	if patch.Name != nil {
		set("name", "", *patch.Name)
	}
	if patch.Quantity.Set {
		set("quantity", "::jsonb", quantityArg(patch.Quantity.Value))
	}
	if patch.Place.Set {
		set("place", "", patch.Place.Ptr())
	}
	if patch.Purchased != nil {
		set("purchased", "", *patch.Purchased)
	}

	args = append(args, id.String())
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		tableIdentifier(table), strings.Join(sets, ", "), len(args))

	return stmt, args
}

// quantityArg is the jsonb parameter for q; nil writes SQL NULL.
func quantityArg(q model.Quantity) any {
	if q.IsNull() {
		return nil
	}
	return string(q.Raw())
}

func scanItem(row pgx.CollectableRow) (model.Item, error) {
	var (
		item     model.Item
		id       []byte
		name     *string
		quantity []byte
	)

	if err := row.Scan(&id, &name, &quantity, &item.Place, &item.Purchased, &item.CreatedAt); err != nil {
		return model.Item{}, err
	}

	itemID, err := model.IDFromJSON(id)
	if err != nil {
		return model.Item{}, fmt.Errorf("item id %s: %w", id, err)
	}
	item.ID = itemID

	if name != nil {
		item.Name = *name
	}

	q, err := model.QuantityFromJSON(quantity)
	if err != nil {
		return model.Item{}, fmt.Errorf("item %s: %w", item.ID, err)
	}
	item.Quantity = q

	return item, nil
}
