package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// RecordsClient implements lcp.RecordsClient.
type RecordsClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewRecordsClient creates a new records client.
func NewRecordsClient(d *dispatch.Dispatcher) *RecordsClient {
	return &RecordsClient{dispatcher: d}
}

// List implements lcp.RecordsClient.List.
func (c *RecordsClient) List(ctx context.Context, opts *lcp.RecordListOptions, callOpts ...lcp.CallOption) ([]lcp.Record, error) {
	params, err := paramsOf(opts, nil)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	var records []lcp.Record

	err = call(ctx, c.dispatcher, operations.GetRecords, params, &records, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	return records, nil
}

// Get implements lcp.RecordsClient.Get. An empty columns returns every field.
func (c *RecordsClient) Get(ctx context.Context, tableID, recordID string, columns []string, callOpts ...lcp.CallOption) (lcp.Record, error) {
	params := recordRouting(tableID, recordID)
	if len(columns) > 0 {
		params["columns"] = columns
	}

	var record lcp.Record

	err := call(ctx, c.dispatcher, operations.GetRecord, params, &record, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting record: %w", err)
	}

	return record, nil
}

// Upsert implements lcp.RecordsClient.Upsert.
func (c *RecordsClient) Upsert(ctx context.Context, request *lcp.RecordsUpsertRequest, callOpts ...lcp.CallOption) (*lcp.UpsertResult, error) {
	params, err := paramsOf(request, nil)
	if err != nil {
		return nil, fmt.Errorf("upserting records: %w", err)
	}

	var result lcp.UpsertResult

	err = call(ctx, c.dispatcher, operations.PostRecords, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("upserting records: %w", err)
	}

	return &result, nil
}

// Query implements lcp.RecordsClient.Query.
func (c *RecordsClient) Query(ctx context.Context, request *lcp.RecordsQueryRequest, callOpts ...lcp.CallOption) (*lcp.QueryResult, error) {
	params, err := paramsOf(request, nil)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	var result lcp.QueryResult

	err = call(ctx, c.dispatcher, operations.PostRecordsQuery, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}

	return &result, nil
}

// Update implements lcp.RecordsClient.Update. record maps field ids to values.
func (c *RecordsClient) Update(ctx context.Context, tableID, recordID string, record lcp.Record, callOpts ...lcp.CallOption) (lcp.Record, error) {
	params, err := paramsOf(map[string]any(record), recordRouting(tableID, recordID))
	if err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}

	var updated lcp.Record

	err = call(ctx, c.dispatcher, operations.PutRecord, params, &updated, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}

	return updated, nil
}

// Delete implements lcp.RecordsClient.Delete.
func (c *RecordsClient) Delete(ctx context.Context, tableID, recordID string, callOpts ...lcp.CallOption) (*lcp.DeleteResult, error) {
	var result lcp.DeleteResult

	err := call(ctx, c.dispatcher, operations.DeleteRecord, recordRouting(tableID, recordID), &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting record: %w", err)
	}

	return &result, nil
}

// DeleteWhere implements lcp.RecordsClient.DeleteWhere.
func (c *RecordsClient) DeleteWhere(ctx context.Context, request *lcp.RecordsDeleteRequest, callOpts ...lcp.CallOption) (*lcp.DeleteResult, error) {
	params, err := paramsOf(request, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting records: %w", err)
	}

	var result lcp.DeleteResult

	err = call(ctx, c.dispatcher, operations.DeleteRecords, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting records: %w", err)
	}

	return &result, nil
}

func recordRouting(tableID, recordID string) lcp.Params {
	return lcp.Params{paramTableID: tableID, paramRecordID: recordID}
}
