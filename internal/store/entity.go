// Package store is the generic repository layer over a document collection.
// It owns timestamps and immutable fields; it never checks ownership.
package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
)

var _ model.EntityStore[model.Patient] = (*Entity[model.Patient, *model.Patient])(nil)

// alwaysProtected can never be changed through Update.
var alwaysProtected = []string{
	model.FieldID,
	model.FieldMongoID,
	model.FieldCreatedAt,
	model.FieldUpdatedAt,
}

type config struct {
	protected []string
	clock     func() time.Time
}

// Option configures an Entity store.
type Option func(*config)

// Protect marks fields that are set at creation and dropped from every update.
func Protect(fields ...string) Option {
	return func(c *config) {
		c.protected = append(c.protected, fields...)
	}
}

// WithClock replaces the time source.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// Entity is the repository for one entity type.
type Entity[T any, P model.DocumentPtr[T]] struct {
	coll      model.Collection[T]
	protected []string
	clock     func() time.Time
}

// New wraps coll in an entity store configured by opts.
func New[T any, P model.DocumentPtr[T]](coll model.Collection[T], opts ...Option) *Entity[T, P] {
	cfg := config{clock: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Entity[T, P]{
		coll:      coll,
		protected: append(slices.Clone(alwaysProtected), cfg.protected...),
		clock:     cfg.clock,
	}
}

// Collection returns the backing collection name.
func (s *Entity[T, P]) Collection() string {
	return s.coll.Name()
}

// GetByID returns model.ErrNotFound for absent documents and malformed ids alike.
func (s *Entity[T, P]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	if !identifier.IsValid(id) {
		return zero, model.ErrNotFound
	}

	doc, err := s.coll.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	return doc, nil
}

// Find returns every matching document, fully materialized, in the requested order.
func (s *Entity[T, P]) Find(ctx context.Context, filter model.Filter, sort model.Sort) ([]T, error) {
	docs, err := s.coll.Find(ctx, filter, sort)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

// Insert stamps createdAt and updatedAt and returns the stored document with its new id.
func (s *Entity[T, P]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T

	now := s.now()
	meta := P(&doc).GetMeta()
	meta.ID = ""
	meta.CreatedAt = now
	meta.UpdatedAt = now

	id, err := s.coll.Insert(ctx, doc)
	if err != nil {
		return zero, fmt.Errorf("failed to insert into %s: %w", s.coll.Name(), err)
	}
	meta.ID = id

	return doc, nil
}

// Update merges fields atomically and returns the post-update document. Protected
// fields are dropped, updatedAt is always advanced, and a missing document yields
// model.ErrNotFound.
func (s *Entity[T, P]) Update(ctx context.Context, id string, fields model.Fields) (T, error) {
	var zero T
	if !identifier.IsValid(id) {
		return zero, model.ErrNotFound
	}

	set := make(model.Fields, len(fields)+1)
	for k, v := range fields {
		if !slices.Contains(s.protected, k) {
			set[k] = v
		}
	}
	set[model.FieldUpdatedAt] = s.now()

	doc, err := s.coll.Update(ctx, id, set)
	if err != nil {
		return zero, err
	}
	return doc, nil
}

// Delete reports whether a document was removed. Children are left in place.
func (s *Entity[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	if !identifier.IsValid(id) {
		return false, nil
	}
	return s.coll.Delete(ctx, id)
}

// Load fetches a document as a chain link for the ownership resolver.
func (s *Entity[T, P]) Load(ctx context.Context, id string) (model.Document, error) {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return P(&doc), nil
}

func (s *Entity[T, P]) now() time.Time {
	return s.clock().UTC().Truncate(time.Millisecond)
}
