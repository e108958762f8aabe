package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
)

// UsersClient implements lcp.UsersClient.
type UsersClient struct {
	dispatcher *dispatch.Dispatcher
}

// NewUsersClient creates a new users client.
func NewUsersClient(d *dispatch.Dispatcher) *UsersClient {
	return &UsersClient{dispatcher: d}
}

// List implements lcp.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, opts *lcp.UserListOptions, callOpts ...lcp.CallOption) ([]lcp.User, error) {
	params, err := paramsOf(opts, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var users []lcp.User

	err = call(ctx, c.dispatcher, operations.GetUsers, params, &users, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

// Get implements lcp.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string, callOpts ...lcp.CallOption) (*lcp.User, error) {
	var user lcp.User

	err := call(ctx, c.dispatcher, operations.GetUser, lcp.Params{paramUserID: userID}, &user, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &user, nil
}

// Create implements lcp.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, request *lcp.UserCreateRequest, callOpts ...lcp.CallOption) (*lcp.User, error) {
	params, err := paramsOf(request, nil)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var user lcp.User

	err = call(ctx, c.dispatcher, operations.PostUser, params, &user, callOpts)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

// Update implements lcp.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, userID string, request *lcp.UserUpdateRequest, callOpts ...lcp.CallOption) (*lcp.User, error) {
	params, err := paramsOf(request, lcp.Params{paramUserID: userID})
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	var user lcp.User

	err = call(ctx, c.dispatcher, operations.PutUser, params, &user, callOpts)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return &user, nil
}

// Delete implements lcp.UsersClient.Delete.
func (c *UsersClient) Delete(ctx context.Context, userID string, callOpts ...lcp.CallOption) (*lcp.DeleteResult, error) {
	var result lcp.DeleteResult

	err := call(ctx, c.dispatcher, operations.DeleteUser, lcp.Params{paramUserID: userID}, &result, callOpts)
	if err != nil {
		return nil, fmt.Errorf("deleting user: %w", err)
	}

	return &result, nil
}

// GetTempToken implements lcp.UsersClient.GetTempToken. The token is scoped
// to the given application.
func (c *UsersClient) GetTempToken(ctx context.Context, appID string, callOpts ...lcp.CallOption) (*lcp.TempToken, error) {
	var token lcp.TempToken

	err := call(ctx, c.dispatcher, operations.GetTempToken, lcp.Params{paramAppID: appID}, &token, callOpts)
	if err != nil {
		return nil, fmt.Errorf("getting temporary token: %w", err)
	}

	return &token, nil
}
