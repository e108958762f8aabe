package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

const (
	paramWebhookID  = "webhookid"
	paramFunctionID = "functionid"
)

// NewNotificationsClient creates a notifications client.
func NewNotificationsClient(d *dispatch.Dispatcher) *ScopedClient[lcp.Notification] {
	return NewScopedClient[lcp.Notification](d, ScopedOperations{
		List:   operations.GetNotifications,
		Get:    operations.GetNotification,
		Create: operations.PostNotification,
		Update: operations.PutNotification,
		Delete: operations.DeleteNotification,
	}, "notification", paramTableID, "notificationid")
}

// NewTriggersClient creates a triggers client.
func NewTriggersClient(d *dispatch.Dispatcher) *ScopedClient[lcp.Trigger] {
	return NewScopedClient[lcp.Trigger](d, ScopedOperations{
		List:   operations.GetTriggers,
		Get:    operations.GetTrigger,
		Create: operations.PostTrigger,
		Update: operations.PutTrigger,
		Delete: operations.DeleteTrigger,
	}, "trigger", paramTableID, "triggerid")
}

// WebhooksClient implements lcp.WebhooksClient.
type WebhooksClient struct {
	*ScopedClient[lcp.Webhook]
}

// NewWebhooksClient creates a new webhooks client.
func NewWebhooksClient(d *dispatch.Dispatcher) *WebhooksClient {
	return &WebhooksClient{
		ScopedClient: NewScopedClient[lcp.Webhook](d, ScopedOperations{
			List:   operations.GetWebhooks,
			Get:    operations.GetWebhook,
			Create: operations.PostWebhook,
			Update: operations.PutWebhook,
			Delete: operations.DeleteWebhook,
		}, "webhook", paramTableID, paramWebhookID),
	}
}

// Test implements lcp.WebhooksClient.Test.
func (c *WebhooksClient) Test(ctx context.Context, tableID, webhookID string, callOpts ...lcp.CallOption) (*lcp.WebhookTestResult, error) {
	var result lcp.WebhookTestResult

	err := call(ctx, c.dispatcher, operations.PostWebhookTest,
		lcp.Params{paramTableID: tableID, paramWebhookID: webhookID}, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("testing webhook: %w", err)
	}

	return &result, nil
}

// FunctionsClient implements lcp.FunctionsClient.
type FunctionsClient struct {
	*ScopedClient[lcp.Function]
}

// NewFunctionsClient creates a new functions client.
func NewFunctionsClient(d *dispatch.Dispatcher) *FunctionsClient {
	return &FunctionsClient{
		ScopedClient: NewScopedClient[lcp.Function](d, ScopedOperations{
			List:   operations.GetFunctions,
			Get:    operations.GetFunction,
			Create: operations.PostFunction,
			Update: operations.PutFunction,
			Delete: operations.DeleteFunction,
		}, "function", paramAppID, paramFunctionID),
	}
}

// Run implements lcp.FunctionsClient.Run. args become the request body.
func (c *FunctionsClient) Run(ctx context.Context, appID, functionID string, args map[string]any, callOpts ...lcp.CallOption) (json.RawMessage, error) {
	params, err := paramsOf(args, lcp.Params{paramAppID: appID, paramFunctionID: functionID})
	if err != nil {
		return nil, fmt.Errorf("running function: %w", err)
	}

	var result json.RawMessage

	err = call(ctx, c.dispatcher, operations.PostFunctionRun, params, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("running function: %w", err)
	}

	return result, nil
}
