// Package ownership decides whether a user may act on an entity by walking
// its chain of parent references up to the owning user.
package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// Source loads one document of a collection by id.
type Source interface {
	Load(ctx context.Context, id string) (model.Document, error)
}

// Link is one hop of a chain: the documents of Entity are loaded from Source
// and point at their parent through ForeignKey.
type Link struct {
	Entity     string
	ForeignKey string
	Source     Source
}

// Chain lists links leaf first. The foreign key of the last link holds the owning user id.
type Chain []Link

// Resolution is the outcome of a successful walk.
type Resolution struct {
	Leaf model.Document
	// Ancestors are ordered nearest parent first and exclude the user.
	Ancestors []model.Document
}

// Resolver walks ownership chains from a leaf document up to its owning user.
type Resolver struct {
	logger *logger.Logger
}

// NewResolver creates a resolver that logs dangling references through logger.
func NewResolver(logger *logger.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve loads the leaf and every ancestor and checks that the chain ends at requesterID.
// An unknown or malformed leaf id and a broken reference anywhere along the chain
// are reported as not found for the leaf entity. A foreign owner is forbidden.
func (r *Resolver) Resolve(ctx context.Context, chain Chain, leafID, requesterID string) (Resolution, error) {
	if len(chain) == 0 {
		return Resolution{}, errors.New("empty ownership chain")
	}
	leafEntity := chain[0].Entity

	if !identifier.IsValid(leafID) {
		return Resolution{}, model.NotFound(leafEntity)
	}

	leaf, err := chain[0].Source.Load(ctx, leafID)
	if errors.Is(err, model.ErrNotFound) {
		return Resolution{}, model.NotFound(leafEntity)
	}
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to load %s: %w", leafEntity, err)
	}

	res := Resolution{Leaf: leaf}
	current := leaf
	for i, link := range chain {
		ref := current.Ref(link.ForeignKey)
		if !identifier.IsValid(ref) {
			r.integrityFault(link, current, ref)
			return Resolution{}, model.NotFound(leafEntity)
		}

		if i == len(chain)-1 {
			if ref != requesterID {
				return Resolution{}, model.Forbidden(leafEntity)
			}
			break
		}

		parentLink := chain[i+1]
		parent, err := parentLink.Source.Load(ctx, ref)
		if errors.Is(err, model.ErrNotFound) {
			r.integrityFault(link, current, ref)
			return Resolution{}, model.NotFound(leafEntity)
		}
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to load %s: %w", parentLink.Entity, err)
		}

		res.Ancestors = append(res.Ancestors, parent)
		current = parent
	}

	return res, nil
}

func (r *Resolver) integrityFault(link Link, doc model.Document, ref string) {
	r.logger.Warn("OwnershipResolver: dangling reference",
		"entity", link.Entity,
		"id", doc.GetMeta().ID,
		"field", link.ForeignKey,
		"ref", ref,
	)
}

// ResolveAs resolves the chain and returns the leaf as its concrete type.
func ResolveAs[T any, P model.DocumentPtr[T]](ctx context.Context, r *Resolver, chain Chain, leafID, requesterID string) (T, error) {
	var zero T

	res, err := r.Resolve(ctx, chain, leafID, requesterID)
	if err != nil {
		return zero, err
	}

	leaf, ok := res.Leaf.(P)
	if !ok {
		return zero, fmt.Errorf("unexpected %T at the leaf of a %s chain", res.Leaf, chain[0].Entity)
	}
	return *leaf, nil
}
