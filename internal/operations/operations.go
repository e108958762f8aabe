// Package operations declares every supported Service operation.
package operations

import (
	"net/http"
	"slices"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
)

// Query keys shared by many operations.
const (
	keyAppID   = "appid"
	keyTableID = "tableid"
	keySkip    = "skip"
	keyTop     = "top"
)

// Users.
var (
	GetUsers = &dispatch.Descriptor{
		Name: "getUsers", Method: http.MethodGet, Path: "/users",
		QueryParams: []string{"accountid", keySkip, keyTop},
		Description: "List users of the account",
	}
	GetUser = &dispatch.Descriptor{
		Name: "getUser", Method: http.MethodGet, Path: "/users/{userid}",
		Description: "Get a user",
	}
	PostUser = &dispatch.Descriptor{
		Name: "postUser", Method: http.MethodPost, Path: "/users",
		Required:    []string{"email"},
		Description: "Create a user",
	}
	PutUser = &dispatch.Descriptor{
		Name: "putUser", Method: http.MethodPut, Path: "/users/{userid}",
		Description: "Update a user",
	}
	DeleteUser = &dispatch.Descriptor{
		Name: "deleteUser", Method: http.MethodDelete, Path: "/users/{userid}",
		Description: "Delete a user",
	}
	GetTempToken = &dispatch.Descriptor{
		Name: "getTempToken", Method: http.MethodGet, Path: "/auth/temporary/{appid}",
		Description: "Get a temporary token for an application",
	}
)

// Apps.
var (
	GetApp = &dispatch.Descriptor{
		Name: "getApp", Method: http.MethodGet, Path: "/apps/{appid}",
		Description: "Get an application",
	}
	PostApp = &dispatch.Descriptor{
		Name: "postApp", Method: http.MethodPost, Path: "/apps",
		Required:    []string{"name"},
		Description: "Create an application",
	}
	PutApp = &dispatch.Descriptor{
		Name: "putApp", Method: http.MethodPut, Path: "/apps/{appid}",
		Description: "Update an application",
	}
	DeleteApp = &dispatch.Descriptor{
		Name: "deleteApp", Method: http.MethodDelete, Path: "/apps/{appid}",
		Required:    []string{"name"},
		Description: "Delete an application",
	}
	PostAppCopy = &dispatch.Descriptor{
		Name: "postAppCopy", Method: http.MethodPost, Path: "/apps/{appid}/copy",
		Required:    []string{"name"},
		Description: "Copy an application",
	}
	GetAppEvents = &dispatch.Descriptor{
		Name: "getAppEvents", Method: http.MethodGet, Path: "/apps/{appid}/events",
		Description: "List the events of an application",
	}
	GetAppRoles = &dispatch.Descriptor{
		Name: "getAppRoles", Method: http.MethodGet, Path: "/apps/{appid}/roles",
		Description: "List the roles of an application",
	}
)

// Tables and relationships.
var (
	GetTables = &dispatch.Descriptor{
		Name: "getTables", Method: http.MethodGet, Path: "/tables",
		QueryParams: []string{keyAppID},
		Description: "List the tables of an application",
	}
	GetTable = &dispatch.Descriptor{
		Name: "getTable", Method: http.MethodGet, Path: "/tables/{tableid}",
		QueryParams: []string{keyAppID},
		Description: "Get a table",
	}
	PostTable = &dispatch.Descriptor{
		Name: "postTable", Method: http.MethodPost, Path: "/tables",
		QueryParams: []string{keyAppID},
		Required:    []string{"name"},
		Description: "Create a table",
	}
	PutTable = &dispatch.Descriptor{
		Name: "putTable", Method: http.MethodPut, Path: "/tables/{tableid}",
		QueryParams: []string{keyAppID},
		Description: "Update a table",
	}
	DeleteTable = &dispatch.Descriptor{
		Name: "deleteTable", Method: http.MethodDelete, Path: "/tables/{tableid}",
		QueryParams: []string{keyAppID},
		Description: "Delete a table",
	}
	GetTableRelationships = &dispatch.Descriptor{
		Name: "getTableRelationships", Method: http.MethodGet, Path: "/tables/{tableid}/relationships",
		QueryParams: []string{keySkip},
		Description: "List the relationships of a table",
	}
	PostTableRelationship = &dispatch.Descriptor{
		Name: "postTableRelationship", Method: http.MethodPost, Path: "/tables/{tableid}/relationship",
		Required:    []string{"parentTableId"},
		Description: "Create a relationship",
	}
	PutTableRelationship = &dispatch.Descriptor{
		Name: "putTableRelationship", Method: http.MethodPut, Path: "/tables/{tableid}/relationship/{relationshipid}",
		Description: "Update a relationship",
	}
	DeleteTableRelationship = &dispatch.Descriptor{
		Name: "deleteTableRelationship", Method: http.MethodDelete, Path: "/tables/{tableid}/relationship/{relationshipid}",
		Description: "Delete a relationship",
	}
)

// Fields.
var (
	GetFields = &dispatch.Descriptor{
		Name: "getFields", Method: http.MethodGet, Path: "/fields",
		QueryParams: []string{keyTableID, "includeFieldPerms"},
		Description: "List the fields of a table",
	}
	GetField = &dispatch.Descriptor{
		Name: "getField", Method: http.MethodGet, Path: "/fields/{fieldid}",
		QueryParams: []string{keyTableID},
		Description: "Get a field",
	}
	PostField = &dispatch.Descriptor{
		Name: "postField", Method: http.MethodPost, Path: "/fields",
		QueryParams: []string{keyTableID},
		Required:    []string{"label", "fieldType"},
		Description: "Create a field",
	}
	PutField = &dispatch.Descriptor{
		Name: "putField", Method: http.MethodPut, Path: "/fields/{fieldid}",
		QueryParams: []string{keyTableID},
		Description: "Update a field",
	}
	DeleteFields = &dispatch.Descriptor{
		Name: "deleteFields", Method: http.MethodDelete, Path: "/fields",
		QueryParams: []string{keyTableID},
		Required:    []string{"fieldIds"},
		Description: "Delete fields",
	}
	GetFieldsUsage = &dispatch.Descriptor{
		Name: "getFieldsUsage", Method: http.MethodGet, Path: "/fields/usage",
		QueryParams: []string{keyTableID, keySkip, keyTop},
		Description: "List field usage for a table",
	}
	GetFieldUsage = &dispatch.Descriptor{
		Name: "getFieldUsage", Method: http.MethodGet, Path: "/fields/usage/{fieldid}",
		QueryParams: []string{keyTableID},
		Description: "Get the usage of a field",
	}
)

// Records.
var (
	GetRecords = &dispatch.Descriptor{
		Name: "getRecords", Method: http.MethodGet, Path: "/records",
		QueryParams: []string{keyTableID, "columns", "where", "sort", "limit", "offset"},
		Description: "List records of a table",
	}
	GetRecord = &dispatch.Descriptor{
		Name: "getRecord", Method: http.MethodGet, Path: "/records/{recordid}",
		QueryParams: []string{keyTableID, "columns"},
		Description: "Get a record",
	}
	PostRecords = &dispatch.Descriptor{
		Name: "postRecords", Method: http.MethodPost, Path: "/records",
		Required:    []string{"to", "data"},
		Description: "Insert or update records",
	}
	PostRecordsQuery = &dispatch.Descriptor{
		Name: "postRecordsQuery", Method: http.MethodPost, Path: "/records/query",
		Required:    []string{"from"},
		Description: "Query records",
	}
	PutRecord = &dispatch.Descriptor{
		Name: "putRecord", Method: http.MethodPut, Path: "/records/{recordid}",
		QueryParams: []string{keyTableID},
		Description: "Update a record",
	}
	DeleteRecord = &dispatch.Descriptor{
		Name: "deleteRecord", Method: http.MethodDelete, Path: "/records/{recordid}",
		QueryParams: []string{keyTableID},
		Description: "Delete a record",
	}
	DeleteRecords = &dispatch.Descriptor{
		Name: "deleteRecords", Method: http.MethodDelete, Path: "/records",
		Required:    []string{"from", "where"},
		Description: "Delete records matching a query",
	}
)

// Reports.
var (
	GetReports, GetReport, PostReport, PutReport, DeleteReport = crud("Report", "reports", "reportid", keyTableID)

	PostReportRun = &dispatch.Descriptor{
		Name: "postReportRun", Method: http.MethodPost, Path: "/reports/{reportid}/run",
		QueryParams: []string{keyTableID, keySkip, keyTop},
		Description: "Run a report",
	}
)

// Forms, dashboards, pages.
var (
	GetForms, GetForm, PostForm, PutForm, DeleteForm                          = crud("Form", "forms", "formid", keyTableID)
	GetDashboards, GetDashboard, PostDashboard, PutDashboard, DeleteDashboard = crud("Dashboard", "dashboards", "dashboardid", keyAppID)
	GetPages, GetPage, PostPage, PutPage, DeletePage                          = crud("Page", "pages", "pageid", keyAppID)
)

// Notifications, webhooks, functions, triggers.
var (
	GetNotifications, GetNotification, PostNotification, PutNotification, DeleteNotification = crud("Notification", "notifications", "notificationid", keyTableID)

	GetWebhooks, GetWebhook, PostWebhook, PutWebhook, DeleteWebhook = crud("Webhook", "webhooks", "webhookid", keyTableID)

	PostWebhookTest = &dispatch.Descriptor{
		Name: "postWebhookTest", Method: http.MethodPost, Path: "/webhooks/{webhookid}/test",
		QueryParams: []string{keyTableID},
		Description: "Send a test delivery for a webhook",
	}

	GetFunctions, GetFunction, PostFunction, PutFunction, DeleteFunction = crud("Function", "functions", "functionid", keyAppID)

	PostFunctionRun = &dispatch.Descriptor{
		Name: "postFunctionRun", Method: http.MethodPost, Path: "/functions/{functionid}/run",
		QueryParams: []string{keyAppID},
		Description: "Run a function",
	}

	GetTriggers, GetTrigger, PostTrigger, PutTrigger, DeleteTrigger = crud("Trigger", "triggers", "triggerid", keyTableID)
)

// Files, preferences, formulas.
var (
	GetFile = &dispatch.Descriptor{
		Name: "getFile", Method: http.MethodGet, Path: "/files/{tableid}/{recordid}/{fieldid}/{versionnumber}",
		Description: "Download a file attachment",
	}
	DeleteFile = &dispatch.Descriptor{
		Name: "deleteFile", Method: http.MethodDelete, Path: "/files/{tableid}/{recordid}/{fieldid}/{versionnumber}",
		Description: "Delete a file attachment version",
	}
	GetPreferences = &dispatch.Descriptor{
		Name: "getPreferences", Method: http.MethodGet, Path: "/preferences",
		Description: "Get account preferences",
	}
	PutPreferences = &dispatch.Descriptor{
		Name: "putPreferences", Method: http.MethodPut, Path: "/preferences",
		Description: "Update account preferences",
	}
	PostFormulaRun = &dispatch.Descriptor{
		Name: "postFormulaRun", Method: http.MethodPost, Path: "/formula/run",
		Required:    []string{"formula", "from"},
		Description: "Evaluate a formula",
	}
)

// crud declares the list, get, create, update and delete operations of a
// resource scoped by an app or table id passed in the query string.
func crud(singular, collection, idKey, scopeKey string) (list, get, post, put, del *dispatch.Descriptor) {
	plural := singular + "s"
	item := "/" + collection + "/{" + idKey + "}"
	noun := strings.ToLower(singular)
	scope := []string{scopeKey}

	list = &dispatch.Descriptor{
		Name: "get" + plural, Method: http.MethodGet, Path: "/" + collection,
		QueryParams: scope, Description: "List " + strings.ToLower(plural),
	}
	get = &dispatch.Descriptor{
		Name: "get" + singular, Method: http.MethodGet, Path: item,
		QueryParams: scope, Description: "Get a " + noun,
	}
	post = &dispatch.Descriptor{
		Name: "post" + singular, Method: http.MethodPost, Path: "/" + collection,
		QueryParams: scope, Description: "Create a " + noun,
	}
	put = &dispatch.Descriptor{
		Name: "put" + singular, Method: http.MethodPut, Path: item,
		QueryParams: scope, Description: "Update a " + noun,
	}
	del = &dispatch.Descriptor{
		Name: "delete" + singular, Method: http.MethodDelete, Path: item,
		QueryParams: scope, Description: "Delete a " + noun,
	}

	return list, get, post, put, del
}

var registry = func() map[string]*dispatch.Descriptor {
	all := []*dispatch.Descriptor{
		GetUsers, GetUser, PostUser, PutUser, DeleteUser, GetTempToken,
		GetApp, PostApp, PutApp, DeleteApp, PostAppCopy, GetAppEvents, GetAppRoles,
		GetTables, GetTable, PostTable, PutTable, DeleteTable,
		GetTableRelationships, PostTableRelationship, PutTableRelationship, DeleteTableRelationship,
		GetFields, GetField, PostField, PutField, DeleteFields, GetFieldsUsage, GetFieldUsage,
		GetRecords, GetRecord, PostRecords, PostRecordsQuery, PutRecord, DeleteRecord, DeleteRecords,
		GetReports, GetReport, PostReport, PutReport, DeleteReport, PostReportRun,
		GetForms, GetForm, PostForm, PutForm, DeleteForm,
		GetDashboards, GetDashboard, PostDashboard, PutDashboard, DeleteDashboard,
		GetPages, GetPage, PostPage, PutPage, DeletePage,
		GetNotifications, GetNotification, PostNotification, PutNotification, DeleteNotification,
		GetWebhooks, GetWebhook, PostWebhook, PutWebhook, DeleteWebhook, PostWebhookTest,
		GetFunctions, GetFunction, PostFunction, PutFunction, DeleteFunction, PostFunctionRun,
		GetTriggers, GetTrigger, PostTrigger, PutTrigger, DeleteTrigger,
		GetFile, DeleteFile,
		GetPreferences, PutPreferences,
		PostFormulaRun,
	}

	byName := make(map[string]*dispatch.Descriptor, len(all))
	for _, desc := range all {
		byName[desc.Name] = desc
	}

	return byName
}()

// Lookup returns the descriptor named name.
func Lookup(name string) (*dispatch.Descriptor, bool) {
	desc, ok := registry[name]

	return desc, ok
}

// All returns every descriptor sorted by name.
func All() []*dispatch.Descriptor {
	all := make([]*dispatch.Descriptor, 0, len(registry))
	for _, desc := range registry {
		all = append(all, desc)
	}

	slices.SortFunc(all, func(a, b *dispatch.Descriptor) int {
		return strings.Compare(a.Name, b.Name)
	})

	return all
}
