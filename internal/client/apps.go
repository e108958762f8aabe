package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// AppsClient implements lcp.AppsClient.
type AppsClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewAppsClient creates a new apps client.
func NewAppsClient(d *dispatch.Dispatcher) *AppsClient {
	return &AppsClient{dispatcher: d}
}

// Get implements lcp.AppsClient.Get.
func (c *AppsClient) Get(ctx context.Context, appID string, callOpts ...lcp.CallOption) (*lcp.App, error) {
	var app lcp.App

	err := call(ctx, c.dispatcher, operations.GetApp, lcp.Params{paramAppID: appID}, &app, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting app: %w", err)
	}

	return &app, nil
}

// Create implements lcp.AppsClient.Create.
func (c *AppsClient) Create(ctx context.Context, request *lcp.AppCreateRequest, callOpts ...lcp.CallOption) (*lcp.App, error) {
	return c.send(ctx, operations.PostApp, request, nil, "creating app", callOpts)
}

// Update implements lcp.AppsClient.Update.
func (c *AppsClient) Update(ctx context.Context, appID string, request *lcp.AppUpdateRequest, callOpts ...lcp.CallOption) (*lcp.App, error) {
	return c.send(ctx, operations.PutApp, request, lcp.Params{paramAppID: appID}, "updating app", callOpts)
}

// Copy implements lcp.AppsClient.Copy.
func (c *AppsClient) Copy(ctx context.Context, appID string, request *lcp.AppCopyRequest, callOpts ...lcp.CallOption) (*lcp.App, error) {
	return c.send(ctx, operations.PostAppCopy, request, lcp.Params{paramAppID: appID}, "copying app", callOpts)
}

// Delete implements lcp.AppsClient.Delete. The Service refuses the call
// unless name matches the application's name.
func (c *AppsClient) Delete(ctx context.Context, appID, name string, callOpts ...lcp.CallOption) (*lcp.DeleteResult, error) {
	var result lcp.DeleteResult

	err := call(ctx, c.dispatcher, operations.DeleteApp, lcp.Params{paramAppID: appID, "name": name}, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting app: %w", err)
	}

	return &result, nil
}

// ListEvents implements lcp.AppsClient.ListEvents.
func (c *AppsClient) ListEvents(ctx context.Context, appID string, callOpts ...lcp.CallOption) ([]lcp.AppEvent, error) {
	var events []lcp.AppEvent

	err := call(ctx, c.dispatcher, operations.GetAppEvents, lcp.Params{paramAppID: appID}, &events, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing app events: %w", err)
	}

	return events, nil
}

// ListRoles implements lcp.AppsClient.ListRoles.
func (c *AppsClient) ListRoles(ctx context.Context, appID string, callOpts ...lcp.CallOption) ([]lcp.Role, error) {
	var roles []lcp.Role

	err := call(ctx, c.dispatcher, operations.GetAppRoles, lcp.Params{paramAppID: appID}, &roles, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing app roles: %w", err)
	}

	return roles, nil
}

func (c *AppsClient) send(ctx context.Context, desc *dispatch.Descriptor, request any, routing lcp.Params, action string, callOpts []lcp.CallOption) (*lcp.App, error) {
	params, err := paramsOf(request, routing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var app lcp.App

	err = call(ctx, c.dispatcher, desc, params, &app, callOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return &app, nil
}
