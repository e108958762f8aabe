package lcp

import (
	"context"
	"encoding/json"
)

// AccountClients provides access to account-level resource clients.
type AccountClients interface {
	Users() UsersClient
	Preferences() PreferencesClient
}

// SchemaClients provides access to application structure clients.
type SchemaClients interface {
	Apps() AppsClient
	Tables() TablesClient
	Fields() FieldsClient
}

// DataClients provides access to record-level clients.
type DataClients interface {
	Records() RecordsClient
	Reports() ReportsClient
	Files() FilesClient
	Formulas() FormulasClient
}

// InterfaceClients provides access to presentation clients.
type InterfaceClients interface {
	Forms() FormsClient
	Dashboards() DashboardsClient
	Pages() PagesClient
}

// AutomationClients provides access to automation clients.
type AutomationClients interface {
	Notifications() NotificationsClient
	Webhooks() WebhooksClient
	Functions() FunctionsClient
	Triggers() TriggersClient
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	AccountClients
	SchemaClients
	DataClients
	InterfaceClients
	AutomationClients
}

// Client is the entry point to the Service. It is safe for concurrent use.
type Client interface {
	ResourceClients

	// Do calls the named operation with params and decodes the results
	// payload into out, which may be nil.
	Do(ctx context.Context, operation string, params any, out any, opts ...CallOption) error

	// Config returns a copy of the active configuration.
	Config() *Config
	// ToJSON serializes the active configuration.
	ToJSON() ([]byte, error)
	// FromJSON replaces the configuration with one parsed from data.
	FromJSON(data []byte) error
	// FromMap replaces the configuration with one decoded from raw.
	FromMap(raw map[string]any) error
	// Reconfigure replaces the configuration wholesale. Request numbering
	// continues across reconfiguration.
	Reconfigure(cfg *Config) error
	// Sequence returns the number assigned to the most recent request.
	Sequence() uint64
	// Close releases the rate limiter. Queued calls fail.
	Close() error
}

// UsersClient manages account users.
type UsersClient interface {
	List(ctx context.Context, opts *UserListOptions, callOpts ...CallOption) ([]User, error)
	Get(ctx context.Context, userID string, callOpts ...CallOption) (*User, error)
	Create(ctx context.Context, request *UserCreateRequest, callOpts ...CallOption) (*User, error)
	Update(ctx context.Context, userID string, request *UserUpdateRequest, callOpts ...CallOption) (*User, error)
	Delete(ctx context.Context, userID string, callOpts ...CallOption) (*DeleteResult, error)
	GetTempToken(ctx context.Context, appID string, callOpts ...CallOption) (*TempToken, error)
}

// AppsClient manages applications.
type AppsClient interface {
	Get(ctx context.Context, appID string, callOpts ...CallOption) (*App, error)
	Create(ctx context.Context, request *AppCreateRequest, callOpts ...CallOption) (*App, error)
	Update(ctx context.Context, appID string, request *AppUpdateRequest, callOpts ...CallOption) (*App, error)
	// Delete removes an application. name must match the application's name.
	Delete(ctx context.Context, appID, name string, callOpts ...CallOption) (*DeleteResult, error)
	Copy(ctx context.Context, appID string, request *AppCopyRequest, callOpts ...CallOption) (*App, error)
	ListEvents(ctx context.Context, appID string, callOpts ...CallOption) ([]AppEvent, error)
	ListRoles(ctx context.Context, appID string, callOpts ...CallOption) ([]Role, error)
}

// TablesClient manages tables and their relationships.
type TablesClient interface {
	List(ctx context.Context, appID string, callOpts ...CallOption) ([]Table, error)
	Get(ctx context.Context, appID, tableID string, callOpts ...CallOption) (*Table, error)
	Create(ctx context.Context, appID string, request *TableRequest, callOpts ...CallOption) (*Table, error)
	Update(ctx context.Context, appID, tableID string, request *TableRequest, callOpts ...CallOption) (*Table, error)
	Delete(ctx context.Context, appID, tableID string, callOpts ...CallOption) (*DeleteResult, error)

	ListRelationships(ctx context.Context, tableID string, opts *PageOptions, callOpts ...CallOption) ([]Relationship, error)
	CreateRelationship(ctx context.Context, tableID string, request *RelationshipRequest, callOpts ...CallOption) (*Relationship, error)
	UpdateRelationship(ctx context.Context, tableID string, relationshipID int, request *RelationshipRequest, callOpts ...CallOption) (*Relationship, error)
	DeleteRelationship(ctx context.Context, tableID string, relationshipID int, callOpts ...CallOption) (*RelationshipDeleteResult, error)
}

// FieldsClient manages table fields.
type FieldsClient interface {
	List(ctx context.Context, tableID string, opts *FieldListOptions, callOpts ...CallOption) ([]Field, error)
	Get(ctx context.Context, tableID string, fieldID int, callOpts ...CallOption) (*Field, error)
	Create(ctx context.Context, tableID string, request *FieldRequest, callOpts ...CallOption) (*Field, error)
	Update(ctx context.Context, tableID string, fieldID int, request *FieldRequest, callOpts ...CallOption) (*Field, error)
	Delete(ctx context.Context, tableID string, fieldIDs []int, callOpts ...CallOption) (*FieldsDeleteResult, error)
	ListUsage(ctx context.Context, tableID string, opts *PageOptions, callOpts ...CallOption) ([]FieldUsage, error)
	GetUsage(ctx context.Context, tableID string, fieldID int, callOpts ...CallOption) ([]FieldUsage, error)
}

// RecordsClient reads and writes table records.
type RecordsClient interface {
	List(ctx context.Context, opts *RecordListOptions, callOpts ...CallOption) ([]Record, error)
	Get(ctx context.Context, tableID, recordID string, columns []string, callOpts ...CallOption) (Record, error)
	Upsert(ctx context.Context, request *RecordsUpsertRequest, callOpts ...CallOption) (*UpsertResult, error)
	Query(ctx context.Context, request *RecordsQueryRequest, callOpts ...CallOption) (*QueryResult, error)
	Update(ctx context.Context, tableID, recordID string, record Record, callOpts ...CallOption) (Record, error)
	Delete(ctx context.Context, tableID, recordID string, callOpts ...CallOption) (*DeleteResult, error)
	DeleteWhere(ctx context.Context, request *RecordsDeleteRequest, callOpts ...CallOption) (*DeleteResult, error)
}

// ReportsClient manages and runs reports.
type ReportsClient interface {
	ScopedResourceClient[Report]

	Run(ctx context.Context, tableID, reportID string, opts *PageOptions, callOpts ...CallOption) (*ReportRunResult, error)
}

// ScopedResourceClient is the CRUD surface shared by resources that live
// under an application or a table. scopeID is that owning app or table id.
type ScopedResourceClient[T any] interface {
	List(ctx context.Context, scopeID string, callOpts ...CallOption) ([]T, error)
	Get(ctx context.Context, scopeID, id string, callOpts ...CallOption) (*T, error)
	Create(ctx context.Context, scopeID string, resource *T, callOpts ...CallOption) (*T, error)
	Update(ctx context.Context, scopeID, id string, resource *T, callOpts ...CallOption) (*T, error)
	Delete(ctx context.Context, scopeID, id string, callOpts ...CallOption) (*DeleteResult, error)
}

// FormsClient manages forms. The scope is a table id.
type FormsClient interface {
	ScopedResourceClient[Form]
}

// DashboardsClient manages dashboards. The scope is an app id.
type DashboardsClient interface {
	ScopedResourceClient[Dashboard]
}

// PagesClient manages pages. The scope is an app id.
type PagesClient interface {
	ScopedResourceClient[Page]
}

// NotificationsClient manages notifications. The scope is a table id.
type NotificationsClient interface {
	ScopedResourceClient[Notification]
}

// WebhooksClient manages webhooks. The scope is a table id.
type WebhooksClient interface {
	ScopedResourceClient[Webhook]

	Test(ctx context.Context, tableID, webhookID string, callOpts ...CallOption) (*WebhookTestResult, error)
}

// FunctionsClient manages functions. The scope is an app id.
type FunctionsClient interface {
	ScopedResourceClient[Function]

	Run(ctx context.Context, appID, functionID string, args map[string]any, callOpts ...CallOption) (json.RawMessage, error)
}

// TriggersClient manages triggers. The scope is a table id.
type TriggersClient interface {
	ScopedResourceClient[Trigger]
}

// FilesClient reads and removes file attachments.
type FilesClient interface {
	Get(ctx context.Context, ref *FileRef, callOpts ...CallOption) (*File, error)
	Delete(ctx context.Context, ref *FileRef, callOpts ...CallOption) (*FileDeleteResult, error)
}

// PreferencesClient reads and writes account preferences.
type PreferencesClient interface {
	Get(ctx context.Context, callOpts ...CallOption) (*Preferences, error)
	Update(ctx context.Context, preferences *Preferences, callOpts ...CallOption) (*Preferences, error)
}

// FormulasClient evaluates formulas.
type FormulasClient interface {
	Run(ctx context.Context, request *FormulaRunRequest, callOpts ...CallOption) (*FormulaResult, error)
}
