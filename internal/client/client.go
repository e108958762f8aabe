package client

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// Client implements the lcp.Client interface.
type Client struct {
	dispatcher *dispatch.Dispatcher

	// Resource clients
	users         lcp.UsersClient
	preferences   lcp.PreferencesClient
	apps          lcp.AppsClient
	tables        lcp.TablesClient
	fields        lcp.FieldsClient
	records       lcp.RecordsClient
	reports       lcp.ReportsClient
	files         lcp.FilesClient
	formulas      lcp.FormulasClient
	forms         lcp.FormsClient
	dashboards    lcp.DashboardsClient
	pages         lcp.PagesClient
	notifications lcp.NotificationsClient
	webhooks      lcp.WebhooksClient
	functions     lcp.FunctionsClient
	triggers      lcp.TriggersClient
}

// New creates a new LCP API client. The configuration is copied.
func New(config *lcp.Config) (*Client, error) {
	dispatcher, err := dispatch.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	client := &Client{dispatcher: dispatcher}
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	d := c.dispatcher

	c.users = NewUsersClient(d)
	c.preferences = NewPreferencesClient(d)
	c.apps = NewAppsClient(d)
	c.tables = NewTablesClient(d)
	c.fields = NewFieldsClient(d)
	c.records = NewRecordsClient(d)
	c.reports = NewReportsClient(d)
	c.files = NewFilesClient(d)
	c.formulas = NewFormulasClient(d)
	c.forms = NewFormsClient(d)
	c.dashboards = NewDashboardsClient(d)
	c.pages = NewPagesClient(d)
	c.notifications = NewNotificationsClient(d)
	c.webhooks = NewWebhooksClient(d)
	c.functions = NewFunctionsClient(d)
	c.triggers = NewTriggersClient(d)
}

// Users implements lcp.Client.Users.
func (c *Client) Users() lcp.UsersClient { return c.users }

// Preferences implements lcp.Client.Preferences.
func (c *Client) Preferences() lcp.PreferencesClient { return c.preferences }

// Apps implements lcp.Client.Apps.
func (c *Client) Apps() lcp.AppsClient { return c.apps }

// Tables implements lcp.Client.Tables.
func (c *Client) Tables() lcp.TablesClient { return c.tables }

// Fields implements lcp.Client.Fields.
func (c *Client) Fields() lcp.FieldsClient { return c.fields }

// Records implements lcp.Client.Records.
func (c *Client) Records() lcp.RecordsClient { return c.records }

// Reports implements lcp.Client.Reports.
func (c *Client) Reports() lcp.ReportsClient { return c.reports }

// Files implements lcp.Client.Files.
func (c *Client) Files() lcp.FilesClient { return c.files }

// Formulas implements lcp.Client.Formulas.
func (c *Client) Formulas() lcp.FormulasClient { return c.formulas }

// Forms implements lcp.Client.Forms.
func (c *Client) Forms() lcp.FormsClient { return c.forms }

// Dashboards implements lcp.Client.Dashboards.
func (c *Client) Dashboards() lcp.DashboardsClient { return c.dashboards }

// Pages implements lcp.Client.Pages.
func (c *Client) Pages() lcp.PagesClient { return c.pages }

// Notifications implements lcp.Client.Notifications.
func (c *Client) Notifications() lcp.NotificationsClient { return c.notifications }

// Webhooks implements lcp.Client.Webhooks.
func (c *Client) Webhooks() lcp.WebhooksClient { return c.webhooks }

// Functions implements lcp.Client.Functions.
func (c *Client) Functions() lcp.FunctionsClient { return c.functions }

// Triggers implements lcp.Client.Triggers.
func (c *Client) Triggers() lcp.TriggersClient { return c.triggers }

// Do implements lcp.Client.Do. params may be lcp.Params, a map or any struct
// that encodes to a JSON object.
func (c *Client) Do(ctx context.Context, operation string, params any, out any, opts ...lcp.CallOption) error {
	desc, ok := operations.Lookup(operation)
	if !ok {
		return fmt.Errorf("%w: %q", lcp.ErrUnknownOperation, operation)
	}

	values, err := paramsOf(params, nil)
	if err != nil {
		return fmt.Errorf("calling %s: %w", operation, err)
	}

	return call(ctx, c.dispatcher, desc, values, out, opts)
}

// Config implements lcp.Client.Config.
func (c *Client) Config() *lcp.Config {
	return c.dispatcher.Config()
}

// ToJSON implements lcp.Client.ToJSON.
func (c *Client) ToJSON() ([]byte, error) {
	data, err := json.Marshal(c.dispatcher.Config())
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return data, nil
}

// FromJSON implements lcp.Client.FromJSON. The logger, interceptors and
// telemetry providers carry over from the active configuration.
func (c *Client) FromJSON(data []byte) error {
	next, err := lcp.ConfigFromJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %w", lcp.ErrConfiguration, err)
	}

	return c.Reconfigure(carryOver(c.dispatcher.Config(), next))
}

// FromMap implements lcp.Client.FromMap.
func (c *Client) FromMap(raw map[string]any) error {
	next, err := lcp.ConfigFromMap(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", lcp.ErrConfiguration, err)
	}

	return c.Reconfigure(carryOver(c.dispatcher.Config(), next))
}

// Reconfigure implements lcp.Client.Reconfigure.
func (c *Client) Reconfigure(config *lcp.Config) error {
	err := c.dispatcher.Reconfigure(config)
	if err != nil {
		return fmt.Errorf("reconfiguring client: %w", err)
	}

	return nil
}

// Sequence implements lcp.Client.Sequence.
func (c *Client) Sequence() uint64 {
	return c.dispatcher.Sequence()
}

// Close implements lcp.Client.Close.
func (c *Client) Close() error {
	c.dispatcher.Close()

	return nil
}

// carryOver copies the runtime attachments of current onto next.
func carryOver(current, next *lcp.Config) *lcp.Config {
	next.Logger = current.Logger
	next.Interceptors = current.Interceptors
	next.TracerProvider = current.TracerProvider
	next.MeterProvider = current.MeterProvider

	return next
}

// call sends one request and decodes its results payload into out.
func call(ctx context.Context, d *dispatch.Dispatcher, desc *dispatch.Descriptor, params lcp.Params, out any, opts []lcp.CallOption) error {
	result, err := d.Request(ctx, desc, params, opts...)
	if err != nil {
		return err
	}

	return result.Decode(desc.Name, out)
}

// paramsOf flattens request into params and sets the routing keys on top.
// The caller's map is never modified.
func paramsOf(request any, routing lcp.Params) (lcp.Params, error) {
	fields, err := lcp.ToParams(request)
	if err != nil {
		return nil, err
	}

	params := make(lcp.Params, len(fields)+len(routing))
	maps.Copy(params, fields)
	maps.Copy(params, routing)

	return params, nil
}
