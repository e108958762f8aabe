package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// FilesClient implements lcp.FilesClient.
type FilesClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewFilesClient creates a new files client.
func NewFilesClient(d *dispatch.Dispatcher) *FilesClient {
	return &FilesClient{dispatcher: d}
}

// Get implements lcp.FilesClient.Get.
func (c *FilesClient) Get(ctx context.Context, ref *lcp.FileRef, callOpts ...lcp.CallOption) (*lcp.File, error) {
	params, err := paramsOf(ref, nil)
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	var file lcp.File

	err = call(ctx, c.dispatcher, operations.GetFile, params, &file, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	return &file, nil
}

// Delete implements lcp.FilesClient.Delete.
func (c *FilesClient) Delete(ctx context.Context, ref *lcp.FileRef, callOpts ...lcp.CallOption) (*lcp.FileDeleteResult, error) {
	params, err := paramsOf(ref, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting file: %w", err)
	}

	var result lcp.FileDeleteResult

	err = call(ctx, c.dispatcher, operations.DeleteFile, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting file: %w", err)
	}

	return &result, nil
}
