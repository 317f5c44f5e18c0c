package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
)

// owned is the read/update/delete path shared by every entity reached through an ownership chain.
// Nothing is written before the chain resolves to the requesting user.
type owned[T any, P model.DocumentPtr[T]] struct {
	store    model.EntityStore[T]
	resolver *ownership.Resolver
	chain    ownership.Chain
	entity   string
}

func (o owned[T, P]) get(ctx context.Context, userID, id string) (T, error) {
	return ownership.ResolveAs[T, P](ctx, o.resolver, o.chain, id, userID)
}

func (o owned[T, P]) update(ctx context.Context, userID, id string, fields model.Fields) (T, error) {
	var zero T

	if _, err := o.get(ctx, userID, id); err != nil {
		return zero, err
	}

	doc, err := o.store.Update(ctx, id, fields)
	if errors.Is(err, model.ErrNotFound) {
		return zero, model.NotFound(o.entity)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to update %s: %w", o.entity, err)
	}
	return doc, nil
}

func (o owned[T, P]) delete(ctx context.Context, userID, id string) error {
	if _, err := o.get(ctx, userID, id); err != nil {
		return err
	}

	deleted, err := o.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", o.entity, err)
	}
	if !deleted {
		return model.NotFound(o.entity)
	}
	return nil
}

// parent resolves a parent named in a request body or query.
func parent[T any, P model.DocumentPtr[T]](
	ctx context.Context,
	resolver *ownership.Resolver,
	chain ownership.Chain,
	entity, id, userID string,
) (T, error) {
	if !identifier.IsValid(id) {
		var zero T
		return zero, model.InvalidID(entity)
	}
	return ownership.ResolveAs[T, P](ctx, resolver, chain, id, userID)
}
