package lcp

import (
	"encoding/json"
	"time"
)

// Timestamps carries the audit dates most resources report.
type Timestamps struct {
	DateCreated  time.Time `json:"dateCreated,omitzero"  yaml:"dateCreated,omitempty"`
	DateModified time.Time `json:"dateModified,omitzero" yaml:"dateModified,omitempty"`
}

// DeleteResult is the results shape of delete operations.
type DeleteResult struct {
	ID      json.Number `json:"id,omitempty"      yaml:"id,omitempty"`
	Deleted bool        `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Count   int         `json:"count,omitempty"   yaml:"count,omitempty"`
}

// PageOptions selects a slice of a list.
type PageOptions struct {
	Skip int `json:"skip,omitempty" yaml:"skip,omitempty"`
	Top  int `json:"top,omitempty"  yaml:"top,omitempty"`
}

// User represents an account member.
type User struct {
	Timestamps `yaml:",inline"`

	ID        string `json:"id"                  yaml:"id"`
	Email     string `json:"email"               yaml:"email"`
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	UserName  string `json:"userName,omitempty"  yaml:"userName,omitempty"`
	Active    bool   `json:"active"              yaml:"active"`
}

// UserListOptions filters GET /users.
type UserListOptions struct {
	PageOptions `yaml:",inline"`

	AccountID string `json:"accountid,omitempty" yaml:"accountid,omitempty"`
}

// UserCreateRequest is the body of POST /users.
type UserCreateRequest struct {
	Email     string   `json:"email"               yaml:"email"`
	FirstName string   `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	UserName  string   `json:"userName,omitempty"  yaml:"userName,omitempty"`
	AppIDs    []string `json:"appIds,omitempty"  yaml:"appIds,omitempty"`
}

// UserUpdateRequest is the body of PUT /users/{userid}.
type UserUpdateRequest struct {
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	UserName  string `json:"userName,omitempty"  yaml:"userName,omitempty"`
	Active    *bool  `json:"active,omitempty"    yaml:"active,omitempty"`
}

// TempToken is a short-lived credential scoped to one application.
type TempToken struct {
	TempToken string `json:"temporaryAuthorization" yaml:"temporaryAuthorization"`
}

// App represents an application.
type App struct {
	Timestamps `yaml:",inline"`

	ID                       string         `json:"id"                          yaml:"id"`
	Name                     string         `json:"name"                        yaml:"name"`
	Description              string         `json:"description,omitempty"       yaml:"description,omitempty"`
	TimeZone                 string         `json:"timeZone,omitempty"          yaml:"timeZone,omitempty"`
	DateFormat               string         `json:"dateFormat,omitempty"        yaml:"dateFormat,omitempty"`
	HasEveryoneOnTheInternet bool           `json:"hasEveryoneOnTheInternet"    yaml:"hasEveryoneOnTheInternet"`
	Variables                []AppVariable  `json:"variables,omitempty"         yaml:"variables,omitempty"`
	Properties               map[string]any `json:"properties,omitempty"        yaml:"properties,omitempty"`
}

// AppVariable is a named application-level value.
type AppVariable struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// AppCreateRequest is the body of POST /apps.
type AppCreateRequest struct {
	Name               string         `json:"name"                              yaml:"name"`
	Description        string         `json:"description,omitempty"             yaml:"description,omitempty"`
	AssignToken        bool           `json:"assignToken,omitempty"             yaml:"assignToken,omitempty"`
	Variables          []AppVariable  `json:"variables,omitempty"               yaml:"variables,omitempty"`
	SecurityProperties map[string]any `json:"securityProperties,omitempty"      yaml:"securityProperties,omitempty"`
}

// AppUpdateRequest is the body of PUT /apps/{appid}.
type AppUpdateRequest struct {
	Name               string         `json:"name,omitempty"               yaml:"name,omitempty"`
	Description        string         `json:"description,omitempty"        yaml:"description,omitempty"`
	Variables          []AppVariable  `json:"variables,omitempty"          yaml:"variables,omitempty"`
	SecurityProperties map[string]any `json:"securityProperties,omitempty" yaml:"securityProperties,omitempty"`
}

// AppCopyRequest is the body of POST /apps/{appid}/copy.
type AppCopyRequest struct {
	Name        string          `json:"name"                  yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  *AppCopyOptions `json:"properties,omitempty"  yaml:"properties,omitempty"`
}

// AppCopyOptions selects what a copy carries over.
type AppCopyOptions struct {
	KeepData        bool `json:"keepData,omitempty"         yaml:"keepData,omitempty"`
	ExcludeFiles    bool `json:"excludeFiles,omitempty"     yaml:"excludeFiles,omitempty"`
	UsersAndRoles   bool `json:"usersAndRoles,omitempty"    yaml:"usersAndRoles,omitempty"`
	AssignUserToken bool `json:"assignUserToken,omitempty"  yaml:"assignUserToken,omitempty"`
}

// AppEvent is an automation event defined in an application.
type AppEvent struct {
	Type    string `json:"type"              yaml:"type"`
	Name    string `json:"name"              yaml:"name"`
	TableID string `json:"tableId,omitempty" yaml:"tableId,omitempty"`
	Owner   string `json:"owner,omitempty"   yaml:"owner,omitempty"`
	Active  bool   `json:"isActive"          yaml:"isActive"`
}

// Role is an application role.
type Role struct {
	ID     int        `json:"id"               yaml:"id"`
	Name   string     `json:"name"             yaml:"name"`
	Access RoleAccess `json:"access,omitzero" yaml:"access,omitempty"`
}

// RoleAccess describes the access level a role grants.
type RoleAccess struct {
	ID   int    `json:"id"   yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// Table represents a table in an application.
type Table struct {
	Timestamps `yaml:",inline"`

	ID               string `json:"id"                     yaml:"id"`
	Alias            string `json:"alias,omitempty"        yaml:"alias,omitempty"`
	Name             string `json:"name"                   yaml:"name"`
	Description      string `json:"description,omitempty"  yaml:"description,omitempty"`
	NextRecordID     int    `json:"nextRecordId,omitempty" yaml:"nextRecordId,omitempty"`
	NextFieldID      int    `json:"nextFieldId,omitempty"  yaml:"nextFieldId,omitempty"`
	KeyFieldID       int    `json:"keyFieldId,omitempty"   yaml:"keyFieldId,omitempty"`
	SingleRecordName string `json:"singleRecordName,omitempty" yaml:"singleRecordName,omitempty"`
	PluralRecordName string `json:"pluralRecordName,omitempty" yaml:"pluralRecordName,omitempty"`
	Icon             Icon   `json:"icon,omitempty"         yaml:"icon,omitempty"`
}

// TableRequest is the body of POST /tables and PUT /tables/{tableid}.
type TableRequest struct {
	Name             string `json:"name,omitempty"             yaml:"name,omitempty"`
	Description      string `json:"description,omitempty"      yaml:"description,omitempty"`
	SingleRecordName string `json:"singleRecordName,omitempty" yaml:"singleRecordName,omitempty"`
	PluralRecordName string `json:"pluralRecordName,omitempty" yaml:"pluralRecordName,omitempty"`
	Icon             Icon   `json:"icon,omitempty"             yaml:"icon,omitempty"`
}

// Relationship links a child table to a parent table.
type Relationship struct {
	ID            int                 `json:"id"                      yaml:"id"`
	ParentTableID string              `json:"parentTableId"           yaml:"parentTableId"`
	ChildTableID  string              `json:"childTableId"            yaml:"childTableId"`
	ForeignKey    RelationshipField   `json:"foreignKeyField,omitzero" yaml:"foreignKeyField,omitempty"`
	IsCrossApp    bool                `json:"isCrossApp"              yaml:"isCrossApp"`
	LookupFields  []RelationshipField `json:"lookupFields,omitempty" yaml:"lookupFields,omitempty"`
}

// RelationshipField identifies a field taking part in a relationship.
type RelationshipField struct {
	ID    int    `json:"id"              yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Type  string `json:"type,omitempty"  yaml:"type,omitempty"`
}

// RelationshipRequest is the body of relationship create and update calls.
type RelationshipRequest struct {
	ParentTableID   string                 `json:"parentTableId,omitempty" yaml:"parentTableId,omitempty"`
	ForeignKeyField *RelationshipFieldSpec `json:"foreignKeyField,omitempty" yaml:"foreignKeyField,omitempty"`
	LookupFieldIDs  []int                  `json:"lookupFieldIds,omitempty" yaml:"lookupFieldIds,omitempty"`
}

// RelationshipFieldSpec names a new foreign key field.
type RelationshipFieldSpec struct {
	Label string `json:"label" yaml:"label"`
}

// RelationshipDeleteResult is the results shape of deleteTableRelationship.
type RelationshipDeleteResult struct {
	RelationshipID int `json:"relationshipId" yaml:"relationshipId"`
}

// Field represents a table column.
type Field struct {
	ID          int               `json:"id"                    yaml:"id"`
	Label       string            `json:"label"                 yaml:"label"`
	FieldType   string            `json:"fieldType"             yaml:"fieldType"`
	Mode        string            `json:"mode,omitempty"        yaml:"mode,omitempty"`
	NoWrap      bool              `json:"noWrap,omitempty"      yaml:"noWrap,omitempty"`
	Bold        bool              `json:"bold,omitempty"        yaml:"bold,omitempty"`
	Required    bool              `json:"required,omitempty"    yaml:"required,omitempty"`
	Unique      bool              `json:"unique,omitempty"      yaml:"unique,omitempty"`
	FieldHelp   string            `json:"fieldHelp,omitempty"   yaml:"fieldHelp,omitempty"`
	Properties  map[string]any    `json:"properties,omitempty"  yaml:"properties,omitempty"`
	Permissions []FieldPermission `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// FieldPermission is the access a role has to a field.
type FieldPermission struct {
	RoleID         int    `json:"roleId"         yaml:"roleId"`
	Role           string `json:"role"           yaml:"role"`
	PermissionType string `json:"permissionType" yaml:"permissionType"`
}

// FieldListOptions filters GET /fields.
type FieldListOptions struct {
	IncludeFieldPerms bool `json:"includeFieldPerms,omitempty" yaml:"includeFieldPerms,omitempty"`
}

// FieldRequest is the body of POST /fields and PUT /fields/{fieldid}.
type FieldRequest struct {
	Label      string         `json:"label,omitempty"      yaml:"label,omitempty"`
	FieldType  string         `json:"fieldType,omitempty"  yaml:"fieldType,omitempty"`
	Required   *bool          `json:"required,omitempty"   yaml:"required,omitempty"`
	Unique     *bool          `json:"unique,omitempty"     yaml:"unique,omitempty"`
	FieldHelp  string         `json:"fieldHelp,omitempty"  yaml:"fieldHelp,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// FieldsDeleteResult is the results shape of deleteFields.
type FieldsDeleteResult struct {
	DeletedFieldIDs []int    `json:"deletedFieldIds"  yaml:"deletedFieldIds"`
	Errors          []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// FieldUsage reports where a field is referenced.
type FieldUsage struct {
	Field FieldUsageField            `json:"field" yaml:"field"`
	Usage map[string]FieldUsageCount `json:"usage" yaml:"usage"`
}

// FieldUsageField identifies the field a usage entry belongs to.
type FieldUsageField struct {
	ID   int    `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// FieldUsageCount counts references of one kind.
type FieldUsageCount struct {
	Count int `json:"count" yaml:"count"`
}

// Record maps field ids to values. Values are objects of the form
// {"value": ...} as the Service returns them.
type Record map[string]any

// RecordListOptions filters GET /records.
type RecordListOptions struct {
	TableID string   `json:"tableid"           yaml:"tableid"`
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Where   string   `json:"where,omitempty"   yaml:"where,omitempty"`
	Sort    []string `json:"sort,omitempty"    yaml:"sort,omitempty"`
	Limit   int      `json:"limit,omitempty"   yaml:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"  yaml:"offset,omitempty"`
}

// RecordsUpsertRequest is the body of POST /records.
type RecordsUpsertRequest struct {
	TableID        string   `json:"to"                       yaml:"to"`
	Data           []Record `json:"data"                     yaml:"data"`
	MergeFieldID   int      `json:"mergeFieldId,omitempty"   yaml:"mergeFieldId,omitempty"`
	FieldsToReturn []int    `json:"fieldsToReturn,omitempty" yaml:"fieldsToReturn,omitempty"`
}

// UpsertResult is the results shape of POST /records.
type UpsertResult struct {
	Data     []Record       `json:"data"     yaml:"data"`
	Metadata UpsertMetadata `json:"metadata" yaml:"metadata"`
}

// UpsertMetadata summarises an upsert.
type UpsertMetadata struct {
	CreatedRecordIDs   []int `json:"createdRecordIds"              yaml:"createdRecordIds"`
	UpdatedRecordIDs   []int `json:"updatedRecordIds"              yaml:"updatedRecordIds"`
	UnchangedRecordIDs []int `json:"unchangedRecordIds"            yaml:"unchangedRecordIds"`
	TotalProcessed     int   `json:"totalNumberOfRecordsProcessed" yaml:"totalNumberOfRecordsProcessed"`
}

// RecordsQueryRequest is the body of POST /records/query.
type RecordsQueryRequest struct {
	TableID string       `json:"from"              yaml:"from"`
	Select  []int        `json:"select,omitempty"  yaml:"select,omitempty"`
	Where   string       `json:"where,omitempty"   yaml:"where,omitempty"`
	SortBy  []SortField  `json:"sortBy,omitempty"  yaml:"sortBy,omitempty"`
	GroupBy []GroupField `json:"groupBy,omitempty" yaml:"groupBy,omitempty"`
	Options *PageOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// SortField orders query results.
type SortField struct {
	FieldID int    `json:"fieldId" yaml:"fieldId"`
	Order   string `json:"order"   yaml:"order"`
}

// GroupField groups query results.
type GroupField struct {
	FieldID  int    `json:"fieldId"  yaml:"fieldId"`
	Grouping string `json:"grouping" yaml:"grouping"`
}

// QueryResult is the results shape of POST /records/query.
type QueryResult struct {
	Data     []Record      `json:"data"     yaml:"data"`
	Fields   []QueryField  `json:"fields"   yaml:"fields"`
	Metadata QueryMetadata `json:"metadata" yaml:"metadata"`
}

// QueryField describes a returned column.
type QueryField struct {
	ID    int    `json:"id"    yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type"  yaml:"type"`
}

// QueryMetadata reports paging totals.
type QueryMetadata struct {
	TotalRecords int `json:"totalRecords" yaml:"totalRecords"`
	NumRecords   int `json:"numRecords"   yaml:"numRecords"`
	NumFields    int `json:"numFields"    yaml:"numFields"`
	Skip         int `json:"skip"         yaml:"skip"`
}

// RecordsDeleteRequest is the body of DELETE /records.
type RecordsDeleteRequest struct {
	TableID string `json:"from"  yaml:"from"`
	Where   string `json:"where" yaml:"where"`
}

// Report represents a saved report on a table.
type Report struct {
	ID          string         `json:"id"                    yaml:"id"`
	Name        string         `json:"name"                  yaml:"name"`
	Type        string         `json:"type"                  yaml:"type"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Query       map[string]any `json:"query,omitempty"       yaml:"query,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"  yaml:"properties,omitempty"`
	UsedLast    time.Time      `json:"usedLast,omitzero"     yaml:"usedLast,omitempty"`
	UsedCount   int            `json:"usedCount,omitempty"   yaml:"usedCount,omitempty"`
}

// ReportRunResult is the results shape of postReportRun.
type ReportRunResult struct {
	Data     []Record       `json:"data"               yaml:"data"`
	Fields   []QueryField   `json:"fields,omitempty"   yaml:"fields,omitempty"`
	Metadata QueryMetadata  `json:"metadata"           yaml:"metadata"`
	Extra    map[string]any `json:"extra,omitempty"    yaml:"extra,omitempty"`
}

// Form represents a data-entry form on a table.
type Form struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	Elements   []any          `json:"elements,omitempty"   yaml:"elements,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Dashboard represents an application dashboard.
type Dashboard struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	Widgets    []any          `json:"widgets,omitempty"    yaml:"widgets,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Page represents a custom application page.
type Page struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	Content    string         `json:"content,omitempty"    yaml:"content,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Notification represents an email notification rule on a table.
type Notification struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	Active     *bool          `json:"active,omitempty"     yaml:"active,omitempty"`
	Recipients []string       `json:"recipients,omitempty" yaml:"recipients,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Webhook represents an outbound webhook on a table.
type Webhook struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	URL        string         `json:"url,omitempty"        yaml:"url,omitempty"`
	Method     string         `json:"method,omitempty"     yaml:"method,omitempty"`
	Active     *bool          `json:"active,omitempty"     yaml:"active,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// WebhookTestResult is the results shape of postWebhookTest.
type WebhookTestResult struct {
	StatusCode int    `json:"statusCode"     yaml:"statusCode"`
	Body       string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Function represents a server-side function in an application.
type Function struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	Runtime    string         `json:"runtime,omitempty"    yaml:"runtime,omitempty"`
	Source     string         `json:"source,omitempty"     yaml:"source,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Trigger represents a record-change trigger on a table.
type Trigger struct {
	ID         string         `json:"id,omitempty"         yaml:"id,omitempty"`
	Name       string         `json:"name,omitempty"       yaml:"name,omitempty"`
	Events     []string       `json:"events,omitempty"     yaml:"events,omitempty"`
	Active     *bool          `json:"active,omitempty"     yaml:"active,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// FileRef addresses one version of a file attachment.
type FileRef struct {
	TableID       string `json:"tableid"       yaml:"tableid"`
	RecordID      string `json:"recordid"      yaml:"recordid"`
	FieldID       string `json:"fieldid"       yaml:"fieldid"`
	VersionNumber int    `json:"versionnumber" yaml:"versionnumber"`
}

// File is a file attachment. Data holds the base64 encoded content.
type File struct {
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	Data     string `json:"data"               yaml:"data"`
}

// FileDeleteResult is the results shape of deleteFile.
type FileDeleteResult struct {
	FileName      string `json:"fileName"      yaml:"fileName"`
	VersionNumber int    `json:"versionNumber" yaml:"versionNumber"`
	Uploaded      string `json:"uploaded"      yaml:"uploaded"`
}

// Preferences holds account-level preferences.
type Preferences struct {
	Currency   Currency       `json:"currency,omitempty"   yaml:"currency,omitempty"`
	TimeZone   string         `json:"timeZone,omitempty"   yaml:"timeZone,omitempty"`
	DateFormat string         `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
	Theme      string         `json:"theme,omitempty"      yaml:"theme,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// FormulaRunRequest is the body of POST /formula/run.
type FormulaRunRequest struct {
	Formula  string `json:"formula"            yaml:"formula"`
	TableID  string `json:"from"               yaml:"from"`
	RecordID int    `json:"rid,omitempty"      yaml:"rid,omitempty"`
}

// FormulaResult is the results shape of postFormulaRun.
type FormulaResult struct {
	Result json.RawMessage `json:"result" yaml:"result"`
}
