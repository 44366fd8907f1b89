package postgres

import (
	"context"
	"fmt"

	"github.com/phrazzld/inventory-api/internal/store"
)

// listPage runs one keyset page query against table. The two statement
// shapes differ only in whether a lower bound on id is applied.
func listPage[T any](ctx context.Context, db store.DBTX, table, columns string, cursor *store.Cursor) ([]T, error) {
	c := store.Resolve(cursor)
	rows := make([]T, 0, c.PageSize)

	if c.LastSeenID != nil {
		query := fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE id > $1
			ORDER BY id ASC
			LIMIT $2`, columns, table)
		if err := db.SelectContext(ctx, &rows, query, *c.LastSeenID, c.PageSize); err != nil {
			return nil, err
		}
		return rows, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY id ASC
		LIMIT $1`, columns, table)
	if err := db.SelectContext(ctx, &rows, query, c.PageSize); err != nil {
		return nil, err
	}
	return rows, nil
}
