// Package pgxrows hydrates entities from pgx query results.
package pgxrows

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zoobzio/hydrate"
)

// Collect reads every row of rows and hydrates a *T from each using
// mapping. rows is closed when Collect returns.
func Collect[T any](ctx context.Context, h *hydrate.Hydrator, rows pgx.Rows, mapping hydrate.Mapping) ([]*T, error) {
	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(records))
	for _, rec := range records {
		entity, err := hydrate.Hydrate[T](ctx, h, rec, mapping)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// CollectSimple reads every row of rows and hydrates a *T from each. The
// mapping is inferred once from the first row, in column order.
func CollectSimple[T any](ctx context.Context, h *hydrate.Hydrator, rows pgx.Rows) ([]*T, error) {
	columns := Columns(rows)

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []*T{}, nil
	}

	name, err := hydrate.Resolve[T](h)
	if err != nil {
		return nil, err
	}

	mapping, err := hydrate.Infer(name, records[0], columns...)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(records))
	for _, rec := range records {
		entity, err := hydrate.Hydrate[T](ctx, h, rec, mapping)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

// Columns returns the result column names of rows in order.
func Columns(rows pgx.Rows) []string {
	fds := rows.FieldDescriptions()
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}
