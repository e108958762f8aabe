package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// PreferencesClient implements lcp.PreferencesClient.
type PreferencesClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewPreferencesClient creates a new preferences client.
func NewPreferencesClient(d *dispatch.Dispatcher) *PreferencesClient {
	return &PreferencesClient{dispatcher: d}
}

// Get implements lcp.PreferencesClient.Get.
func (c *PreferencesClient) Get(ctx context.Context, callOpts ...lcp.CallOption) (*lcp.Preferences, error) {
	var preferences lcp.Preferences

	err := call(ctx, c.dispatcher, operations.GetPreferences, nil, &preferences, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting preferences: %w", err)
	}

	return &preferences, nil
}

// Update implements lcp.PreferencesClient.Update.
func (c *PreferencesClient) Update(ctx context.Context, preferences *lcp.Preferences, callOpts ...lcp.CallOption) (*lcp.Preferences, error) {
	params, err := paramsOf(preferences, nil)
	if err != nil {
		return nil, fmt.Errorf("updating preferences: %w", err)
	}

	var updated lcp.Preferences

	err = call(ctx, c.dispatcher, operations.PutPreferences, params, &updated, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating preferences: %w", err)
	}

	return &updated, nil
}
