package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// FormulasClient implements lcp.FormulasClient.
type FormulasClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewFormulasClient creates a new formulas client.
func NewFormulasClient(d *dispatch.Dispatcher) *FormulasClient {
	return &FormulasClient{dispatcher: d}
}

// Run implements lcp.FormulasClient.Run.
func (c *FormulasClient) Run(ctx context.Context, request *lcp.FormulaRunRequest, callOpts ...lcp.CallOption) (*lcp.FormulaResult, error) {
	params, err := paramsOf(request, nil)
	if err != nil {
		return nil, fmt.Errorf("running formula: %w", err)
	}

	var result lcp.FormulaResult

	err = call(ctx, c.dispatcher, operations.PostFormulaRun, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("running formula: %w", err)
	}

	return &result, nil
}
