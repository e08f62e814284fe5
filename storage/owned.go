// Package storage provides generic persistence helpers for records that are
// owned by a single user. Every read and write is scoped to the caller
// resolved from the request's bearer token, so one user can never see or
// touch another user's rows.
package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches within the caller's scope.
	// An existing row owned by someone else yields the same error.
	ErrNotFound = errors.New("record not found")
	// ErrMultipleMatches is returned when a SelectOne filter matches more
	// than one row within the caller's scope.
	ErrMultipleMatches = errors.New("filter matched more than one record")
)

// Owned is the capability an entity must provide to be stored with owner
// scoping. The backing table must keep the owner in an owner_id column.
type Owned interface {
	Owner() string
	SetOwner(id string)
}

// UserResolver resolves a bearer token to the id of an existing user.
// Implementations return the same error for every validation failure.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

// Access bundles what one request needs to reach owned rows: the caller's
// raw bearer token and the storage session. It is created per request and
// never retained.
type Access struct {
	Token string
	DB    *gorm.DB
}

// Filter narrows a scoped query with an extra WHERE condition.
type Filter struct {
	Query string
	Args  []any
}

// Create persists obj with its owner forced to the resolved caller. Any
// owner id already set on obj is overwritten; this is the scoping guarantee,
// not a default. Returns obj with server-assigned fields populated.
func Create[T Owned](ctx context.Context, resolver UserResolver, access Access, obj T) (T, error) {
	var zero T

	ownerID, err := resolver.ResolveUser(ctx, access.Token)
	if err != nil {
		return zero, err
	}

	obj.SetOwner(ownerID)

	if err := access.DB.WithContext(ctx).Create(obj).Error; err != nil {
		return zero, fmt.Errorf("failed to create record: %w", err)
	}
	return obj, nil
}

// SelectAll returns every row of type T owned by the resolved caller.
func SelectAll[T Owned](ctx context.Context, resolver UserResolver, access Access) ([]T, error) {
	ownerID, err := resolver.ResolveUser(ctx, access.Token)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := access.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	return items, nil
}

// SelectOne returns the single row owned by the resolved caller that matches
// filter. A filter that matches nothing yields ErrNotFound; one that matches
// two or more rows yields ErrMultipleMatches, since callers are expected to
// pass selective filters.
func SelectOne[T Owned](ctx context.Context, resolver UserResolver, access Access, filter Filter) (T, error) {
	var zero T

	ownerID, err := resolver.ResolveUser(ctx, access.Token)
	if err != nil {
		return zero, err
	}

	var items []T
	q := access.DB.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Query != "" {
		q = q.Where(filter.Query, filter.Args...)
	}
	// Fetch at most two rows: enough to tell "one" from "too many".
	if err := q.Limit(2).Find(&items).Error; err != nil {
		return zero, fmt.Errorf("failed to select record: %w", err)
	}

	switch len(items) {
	case 0:
		return zero, ErrNotFound
	case 1:
		return items[0], nil
	default:
		return zero, ErrMultipleMatches
	}
}
