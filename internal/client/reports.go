package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

const paramReportID = "reportid"

// ReportsClient implements lcp.ReportsClient.
type ReportsClient struct {
	*ScopedClient[lcp.Report]
}

// NewReportsClient creates a new reports client.
func NewReportsClient(d *dispatch.Dispatcher) *ReportsClient {
	return &ReportsClient{
		ScopedClient: NewScopedClient[lcp.Report](d, ScopedOperations{
			List:   operations.GetReports,
			Get:    operations.GetReport,
			Create: operations.PostReport,
			Update: operations.PutReport,
			Delete: operations.DeleteReport,
		}, "report", paramTableID, paramReportID),
	}
}

// Run implements lcp.ReportsClient.Run.
func (c *ReportsClient) Run(ctx context.Context, tableID, reportID string, opts *lcp.PageOptions, callOpts ...lcp.CallOption) (*lcp.ReportRunResult, error) {
	params, err := paramsOf(opts, lcp.Params{paramTableID: tableID, paramReportID: reportID})
	if err != nil {
		return nil, fmt.Errorf("running report: %w", err)
	}

	var result lcp.ReportRunResult

	err = call(ctx, c.dispatcher, operations.PostReportRun, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("running report: %w", err)
	}

	return &result, nil
}
