package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
)

var _ model.Collection[model.Patient] = (*Collection[model.Patient])(nil)

// Collection stores documents of type T as JSONB rows in a table named after the collection.
type Collection[T any] struct {
	db    *Connection
	name  string
	table string
}

// NewCollection binds a typed collection to the JSONB table of the same name.
func NewCollection[T any](db *Connection, name string) *Collection[T] {
	return &Collection[T]{
		db:    db,
		name:  name,
		table: pgx.Identifier{name}.Sanitize(),
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var doc T

	var raw []byte
	err := c.db.QueryRow(ctx, `SELECT doc FROM `+c.table+` WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, model.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("failed to find %s document: %w", c.name, err)
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode %s document: %w", c.name, err)
	}
	return doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, filter model.Filter, order model.Sort) ([]T, error) {
	pattern, err := json.Marshal(filter.Pattern())
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}

	query, args := selectQuery(c.table, order, string(pattern))
	rows, err := c.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", c.name, err)
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", c.name, err)
	}

	return docs, nil
}

func (c *Collection[T]) Insert(ctx context.Context, doc T) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", c.name, err)
	}

	id := identifier.New()
	query := `INSERT INTO ` + c.table + ` (id, doc) VALUES ($1, $2::jsonb || jsonb_build_object('id', $3::text))`
	if _, err := c.db.Exec(ctx, query, id, string(body), id); err != nil {
		return "", fmt.Errorf("failed to insert %s document: %w", c.name, err)
	}

	return id, nil
}

// Update merges fields into the stored document and returns the result in a single statement.
func (c *Collection[T]) Update(ctx context.Context, id string, fields model.Fields) (T, error) {
	var doc T

	body, err := json.Marshal(fields)
	if err != nil {
		return doc, fmt.Errorf("failed to encode %s fields: %w", c.name, err)
	}

	var raw []byte
	query := `UPDATE ` + c.table + ` SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`
	err = c.db.QueryRow(ctx, query, id, string(body)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return doc, model.ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("failed to update %s document: %w", c.name, err)
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode %s document: %w", c.name, err)
	}
	return doc, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := c.db.Exec(ctx, `DELETE FROM `+c.table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s document: %w", c.name, err)
	}
	return cmd.RowsAffected() > 0, nil
}
