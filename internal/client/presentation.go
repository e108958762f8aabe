package client

import (
	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// Param names of the ids that route a request.
const (
	paramAppID          = "appid"
	paramTableID        = "tableid"
	paramUserID         = "userid"
	paramFieldID        = "fieldid"
	paramRecordID       = "recordid"
	paramRelationshipID = "relationshipid"
)

// NewFormsClient creates a forms client. Forms live on a table.
func NewFormsClient(d *dispatch.Dispatcher) *ScopedClient[lcp.Form] {
	return NewScopedClient[lcp.Form](d, ScopedOperations{
		List:   operations.GetForms,
		Get:    operations.GetForm,
		Create: operations.PostForm,
		Update: operations.PutForm,
		Delete: operations.DeleteForm,
	}, "form", paramTableID, "formid")
}

// NewDashboardsClient creates a dashboards client. Dashboards live on an app.
func NewDashboardsClient(d *dispatch.Dispatcher) *ScopedClient[lcp.Dashboard] {
	return NewScopedClient[lcp.Dashboard](d, ScopedOperations{
		List:   operations.GetDashboards,
		Get:    operations.GetDashboard,
		Create: operations.PostDashboard,
		Update: operations.PutDashboard,
		Delete: operations.DeleteDashboard,
	}, "dashboard", paramAppID, "dashboardid")
}

// NewPagesClient creates a pages client. Pages live on an app.
func NewPagesClient(d *dispatch.Dispatcher) *ScopedClient[lcp.Page] {
	return NewScopedClient[lcp.Page](d, ScopedOperations{
		List:   operations.GetPages,
		Get:    operations.GetPage,
		Create: operations.PostPage,
		Update: operations.PutPage,
		Delete: operations.DeletePage,
	}, "page", paramAppID, "pageid")
}
