package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// TablesClient implements lcp.TablesClient.
type TablesClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewTablesClient creates a new tables client.
func NewTablesClient(d *dispatch.Dispatcher) *TablesClient {
	return &TablesClient{dispatcher: d}
}

// List implements lcp.TablesClient.List.
func (c *TablesClient) List(ctx context.Context, appID string, callOpts ...lcp.CallOption) ([]lcp.Table, error) {
	var tables []lcp.Table

	err := call(ctx, c.dispatcher, operations.GetTables, lcp.Params{paramAppID: appID}, &tables, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	return tables, nil
}

// Get implements lcp.TablesClient.Get.
func (c *TablesClient) Get(ctx context.Context, appID, tableID string, callOpts ...lcp.CallOption) (*lcp.Table, error) {
	var table lcp.Table

	err := call(ctx, c.dispatcher, operations.GetTable, tableRouting(appID, tableID), &table, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting table: %w", err)
	}

	return &table, nil
}

// Create implements lcp.TablesClient.Create.
func (c *TablesClient) Create(ctx context.Context, appID string, request *lcp.TableRequest, callOpts ...lcp.CallOption) (*lcp.Table, error) {
	params, err := paramsOf(request, lcp.Params{paramAppID: appID})
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}

	var table lcp.Table

	err = call(ctx, c.dispatcher, operations.PostTable, params, &table, callOpts)
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &table, nil
}

// Update implements lcp.TablesClient.Update.
func (c *TablesClient) Update(ctx context.Context, appID, tableID string, request *lcp.TableRequest, callOpts ...lcp.CallOption) (*lcp.Table, error) {
	params, err := paramsOf(request, tableRouting(appID, tableID))
	if err != nil {
		return nil, fmt.Errorf("updating table: %w", err)
	}

	var table lcp.Table

	err = call(ctx, c.dispatcher, operations.PutTable, params, &table, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating table: %w", err)
	}

	return &table, nil
}

// Delete implements lcp.TablesClient.Delete.
func (c *TablesClient) Delete(ctx context.Context, appID, tableID string, callOpts ...lcp.CallOption) (*lcp.DeleteResult, error) {
	var result lcp.DeleteResult

	err := call(ctx, c.dispatcher, operations.DeleteTable, tableRouting(appID, tableID), &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting table: %w", err)
	}

	return &result, nil
}

// ListRelationships implements lcp.TablesClient.ListRelationships.
func (c *TablesClient) ListRelationships(ctx context.Context, tableID string, opts *lcp.PageOptions, callOpts ...lcp.CallOption) ([]lcp.Relationship, error) {
	params, err := paramsOf(opts, lcp.Params{paramTableID: tableID})
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	var relationships []lcp.Relationship

	err = call(ctx, c.dispatcher, operations.GetTableRelationships, params, &relationships, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	return relationships, nil
}

// CreateRelationship implements lcp.TablesClient.CreateRelationship. tableID
// is the child table.
func (c *TablesClient) CreateRelationship(ctx context.Context, tableID string, request *lcp.RelationshipRequest, callOpts ...lcp.CallOption) (*lcp.Relationship, error) {
	params, err := paramsOf(request, lcp.Params{paramTableID: tableID})
	if err != nil {
		return nil, fmt.Errorf("creating relationship: %w", err)
	}

	var relationship lcp.Relationship

	err = call(ctx, c.dispatcher, operations.PostTableRelationship, params, &relationship, callOpts)
	if err != nil {
		return nil, fmt.Errorf("creating relationship: %w", err)
	}

	return &relationship, nil
}

// UpdateRelationship implements lcp.TablesClient.UpdateRelationship.
func (c *TablesClient) UpdateRelationship(ctx context.Context, tableID string, relationshipID int, request *lcp.RelationshipRequest, callOpts ...lcp.CallOption) (*lcp.Relationship, error) {
	params, err := paramsOf(request, relationshipRouting(tableID, relationshipID))
	if err != nil {
		return nil, fmt.Errorf("updating relationship: %w", err)
	}

	var relationship lcp.Relationship

	err = call(ctx, c.dispatcher, operations.PutTableRelationship, params, &relationship, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating relationship: %w", err)
	}

	return &relationship, nil
}

// DeleteRelationship implements lcp.TablesClient.DeleteRelationship.
func (c *TablesClient) DeleteRelationship(ctx context.Context, tableID string, relationshipID int, callOpts ...lcp.CallOption) (*lcp.RelationshipDeleteResult, error) {
	var result lcp.RelationshipDeleteResult

	err := call(ctx, c.dispatcher, operations.DeleteTableRelationship, relationshipRouting(tableID, relationshipID), &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting relationship: %w", err)
	}

	return &result, nil
}

func tableRouting(appID, tableID string) lcp.Params {
	return lcp.Params{paramAppID: appID, paramTableID: tableID}
}

func relationshipRouting(tableID string, relationshipID int) lcp.Params {
	return lcp.Params{paramTableID: tableID, paramRelationshipID: relationshipID}
}
