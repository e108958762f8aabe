package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// FieldsClient implements lcp.FieldsClient.
type FieldsClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewFieldsClient creates a new fields client.
func NewFieldsClient(d *dispatch.Dispatcher) *FieldsClient {
	return &FieldsClient{dispatcher: d}
}

// List implements lcp.FieldsClient.List.
func (c *FieldsClient) List(ctx context.Context, tableID string, opts *lcp.FieldListOptions, callOpts ...lcp.CallOption) ([]lcp.Field, error) {
	params, err := paramsOf(opts, lcp.Params{paramTableID: tableID})
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	var fields []lcp.Field

	err = call(ctx, c.dispatcher, operations.GetFields, params, &fields, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	return fields, nil
}

// Get implements lcp.FieldsClient.Get.
func (c *FieldsClient) Get(ctx context.Context, tableID string, fieldID int, callOpts ...lcp.CallOption) (*lcp.Field, error) {
	var field lcp.Field

	err := call(ctx, c.dispatcher, operations.GetField, fieldRouting(tableID, fieldID), &field, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting field: %w", err)
	}

	return &field, nil
}

// Create implements lcp.FieldsClient.Create.
func (c *FieldsClient) Create(ctx context.Context, tableID string, request *lcp.FieldRequest, callOpts ...lcp.CallOption) (*lcp.Field, error) {
	params, err := paramsOf(request, lcp.Params{paramTableID: tableID})
	if err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}

	var field lcp.Field

	err = call(ctx, c.dispatcher, operations.PostField, params, &field, callOpts)
	if err != nil {
		return nil, fmt.Errorf("creating field: %w", err)
	}

	return &field, nil
}

// Update implements lcp.FieldsClient.Update.
func (c *FieldsClient) Update(ctx context.Context, tableID string, fieldID int, request *lcp.FieldRequest, callOpts ...lcp.CallOption) (*lcp.Field, error) {
	params, err := paramsOf(request, fieldRouting(tableID, fieldID))
	if err != nil {
		return nil, fmt.Errorf("updating field: %w", err)
	}

	var field lcp.Field

	err = call(ctx, c.dispatcher, operations.PutField, params, &field, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating field: %w", err)
	}

	return &field, nil
}

// Delete implements lcp.FieldsClient.Delete.
func (c *FieldsClient) Delete(ctx context.Context, tableID string, fieldIDs []int, callOpts ...lcp.CallOption) (*lcp.FieldsDeleteResult, error) {
	params := lcp.Params{paramTableID: tableID}
	if len(fieldIDs) > 0 {
		params["fieldIds"] = fieldIDs
	}

	var result lcp.FieldsDeleteResult

	err := call(ctx, c.dispatcher, operations.DeleteFields, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting fields: %w", err)
	}

	return &result, nil
}

// ListUsage implements lcp.FieldsClient.ListUsage.
func (c *FieldsClient) ListUsage(ctx context.Context, tableID string, opts *lcp.PageOptions, callOpts ...lcp.CallOption) ([]lcp.FieldUsage, error) {
	params, err := paramsOf(opts, lcp.Params{paramTableID: tableID})
	if err != nil {
		return nil, fmt.Errorf("listing field usage: %w", err)
	}

	var usage []lcp.FieldUsage

	err = call(ctx, c.dispatcher, operations.GetFieldsUsage, params, &usage, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing field usage: %w", err)
	}

	return usage, nil
}

// GetUsage implements lcp.FieldsClient.GetUsage.
func (c *FieldsClient) GetUsage(ctx context.Context, tableID string, fieldID int, callOpts ...lcp.CallOption) ([]lcp.FieldUsage, error) {
	var usage []lcp.FieldUsage

	err := call(ctx, c.dispatcher, operations.GetFieldUsage, fieldRouting(tableID, fieldID), &usage, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting field usage: %w", err)
	}

	return usage, nil
}

func fieldRouting(tableID string, fieldID int) lcp.Params {
	return lcp.Params{paramTableID: tableID, paramFieldID: fieldID}
}
