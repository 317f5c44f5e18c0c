package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
)

var _ model.Collection[model.Patient] = (*Collection[model.Patient])(nil)

// Collection stores documents of type T in a Database.
type Collection[T any] struct {
	db   *Database
	name string
}

// NewCollection binds a typed collection to the named map in db.
func NewCollection[T any](db *Database, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) FindByID(_ context.Context, id string) (T, error) {
	var zero T

	c.db.mu.RLock()
	doc, ok := c.db.collections[c.name][id]
	c.db.mu.RUnlock()
	if !ok {
		return zero, model.ErrNotFound
	}

	return decode[T](doc)
}

func (c *Collection[T]) Find(_ context.Context, filter model.Filter, order model.Sort) ([]T, error) {
	pattern, err := normalize(filter.Pattern())
	if err != nil {
		return nil, fmt.Errorf("failed to normalize filter: %w", err)
	}

	c.db.mu.RLock()
	var matched []map[string]any
	for _, doc := range c.db.collections[c.name] {
		if contains(doc, pattern) {
			matched = append(matched, doc)
		}
	}
	c.db.mu.RUnlock()

	sortDocuments(matched, order)

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) Insert(_ context.Context, doc T) (string, error) {
	normalized, err := normalize(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	fields, ok := normalized.(map[string]any)
	if !ok {
		return "", fmt.Errorf("document of %s is not an object", c.name)
	}

	id := identifier.New()
	fields[model.FieldID] = id

	c.db.mu.Lock()
	c.db.collection(c.name)[id] = fields
	c.db.mu.Unlock()

	return id, nil
}

func (c *Collection[T]) Update(_ context.Context, id string, fields model.Fields) (T, error) {
	var zero T

	normalized, err := normalize(fields)
	if err != nil {
		return zero, fmt.Errorf("failed to encode fields: %w", err)
	}
	set, _ := normalized.(map[string]any)

	c.db.mu.Lock()
	current, ok := c.db.collections[c.name][id]
	if !ok {
		c.db.mu.Unlock()
		return zero, model.ErrNotFound
	}
	merged := maps.Clone(current)
	maps.Copy(merged, set)
	c.db.collections[c.name][id] = merged
	c.db.mu.Unlock()

	return decode[T](merged)
}

func (c *Collection[T]) Delete(_ context.Context, id string) (bool, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	docs := c.db.collections[c.name]
	if _, ok := docs[id]; !ok {
		return false, nil
	}
	delete(docs, id)
	return true, nil
}

// normalize round-trips v through JSON so documents, patterns and updates share one shape.
func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode[T any](doc map[string]any) (T, error) {
	var out T
	b, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("failed to decode document: %w", err)
	}
	return out, nil
}

// contains mirrors the PostgreSQL jsonb @> operator for objects, arrays and scalars.
func contains(doc, pattern any) bool {
	switch p := pattern.(type) {
	case map[string]any:
		d, ok := doc.(map[string]any)
		if !ok {
			return false
		}
		for k, pv := range p {
			dv, ok := d[k]
			if !ok || !contains(dv, pv) {
				return false
			}
		}
		return true
	case []any:
		d, ok := doc.([]any)
		if !ok {
			return false
		}
		for _, pe := range p {
			found := false
			for _, de := range d {
				if contains(de, pe) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		switch doc.(type) {
		case map[string]any, []any:
			return false
		}
		return doc == pattern
	}
}

func sortDocuments(docs []map[string]any, order model.Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		if order.Field != "" {
			ti, tj := timeField(docs[i], order.Field), timeField(docs[j], order.Field)
			if !ti.Equal(tj) {
				if order.Descending {
					return ti.After(tj)
				}
				return ti.Before(tj)
			}
		}
		idI, _ := docs[i][model.FieldID].(string)
		idJ, _ := docs[j][model.FieldID].(string)
		return idI < idJ
	})
}

func timeField(doc map[string]any, field string) time.Time {
	s, _ := doc[field].(string)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
