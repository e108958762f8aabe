package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// ScopedOperations are the CRUD descriptors of a scoped resource.
type ScopedOperations struct {
	List   *dispatch.Descriptor
	Get    *dispatch.Descriptor
	Create *dispatch.Descriptor
	Update *dispatch.Descriptor
	Delete *dispatch.Descriptor
}

// ScopedClient provides a generic client for resources owned by an
// application or a table.
type ScopedClient[T any] struct {
	dispatcher *dispatch.Dispatcher
	ops        ScopedOperations
	scopeKey   string
	idKey      string
	resource   string
}

// NewScopedClient creates a new generic scoped resource client. scopeKey and
// idKey are the param names of the owner id and the resource id.
func NewScopedClient[T any](dispatcher *dispatch.Dispatcher, ops ScopedOperations, resource, scopeKey, idKey string) *ScopedClient[T] {
	return &ScopedClient[T]{
		dispatcher: dispatcher,
		ops:        ops,
		scopeKey:   scopeKey,
		idKey:      idKey,
		resource:   resource,
	}
}

// List retrieves every resource in the scope.
func (c *ScopedClient[T]) List(ctx context.Context, scopeID string, callOpts ...lcp.CallOption) ([]T, error) {
	var items []T

	err := call(ctx, c.dispatcher, c.ops.List, lcp.Params{c.scopeKey: scopeID}, &items, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.resource, err)
	}

	return items, nil
}

// Get retrieves a specific resource by id.
func (c *ScopedClient[T]) Get(ctx context.Context, scopeID, id string, callOpts ...lcp.CallOption) (*T, error) {
	var item T

	err := call(ctx, c.dispatcher, c.ops.Get, c.routing(scopeID, id), &item, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.resource, err)
	}

	return &item, nil
}

// Create creates a resource in the scope.
func (c *ScopedClient[T]) Create(ctx context.Context, scopeID string, resource *T, callOpts ...lcp.CallOption) (*T, error) {
	params, err := paramsOf(resource, lcp.Params{c.scopeKey: scopeID})
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.resource, err)
	}

	var created T

	err = call(ctx, c.dispatcher, c.ops.Create, params, &created, callOpts)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.resource, err)
	}

	return &created, nil
}

// Update replaces the settings of a resource.
func (c *ScopedClient[T]) Update(ctx context.Context, scopeID, id string, resource *T, callOpts ...lcp.CallOption) (*T, error) {
	params, err := paramsOf(resource, c.routing(scopeID, id))
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.resource, err)
	}

	var updated T

	err = call(ctx, c.dispatcher, c.ops.Update, params, &updated, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.resource, err)
	}

	return &updated, nil
}

// Delete removes a resource.
func (c *ScopedClient[T]) Delete(ctx context.Context, scopeID, id string, callOpts ...lcp.CallOption) (*lcp.DeleteResult, error) {
	var result lcp.DeleteResult

	err := call(ctx, c.dispatcher, c.ops.Delete, c.routing(scopeID, id), &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting %s: %w", c.resource, err)
	}

	return &result, nil
}

func (c *ScopedClient[T]) routing(scopeID, id string) lcp.Params {
	return lcp.Params{c.scopeKey: scopeID, c.idKey: id}
}
