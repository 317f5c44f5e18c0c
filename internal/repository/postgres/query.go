package postgres

import "github.com/dtroode/healthnest-server/internal/model"

// selectQuery builds the containment query for a collection table. Sort keys
// are timestamp fields, so they are compared as timestamptz rather than text.
func selectQuery(table string, order model.Sort, pattern string) (string, []any) {
	query := `SELECT doc FROM ` + table + ` WHERE doc @> $1::jsonb`
	args := []any{pattern}

	if order.Field == "" {
		return query + ` ORDER BY id`, args
	}

	direction := "ASC"
	if order.Descending {
		direction = "DESC"
	}
	args = append(args, order.Field)
	return query + ` ORDER BY (doc->>$2)::timestamptz ` + direction + `, id`, args
}
