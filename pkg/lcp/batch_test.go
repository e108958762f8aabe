package lcp_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCaller implements lcp.Caller for testing.
type MockCaller struct {
	mock.Mock
}

func (m *MockCaller) Do(ctx context.Context, operation string, params any, out any, opts ...lcp.CallOption) error {
	args := m.Called(ctx, operation, params, out, opts)

	return args.Error(0)
}

// respondWith fills the raw response and out the way a client would.
func respondWith(sequence uint64, payload map[string]any) func(mock.Arguments) {
	return func(args mock.Arguments) {
		options := lcp.NewCallOptions(args.Get(4).([]lcp.CallOption)...)
		if options.RawResponse != nil {
			*options.RawResponse = &lcp.Response{Sequence: sequence, StatusCode: 200}
		}

		if out, ok := args.Get(3).(*map[string]any); ok {
			*out = payload
		}
	}
}

func TestBatchExecutor_Execute(t *testing.T) {
	t.Parallel()

	caller := &MockCaller{}

	failure := lcp.NewError(lcp.ErrServiceError, "getTable", 2, 404, "not found", nil)

	caller.On("Do", mock.Anything, "getApp", mock.Anything, mock.Anything, mock.Anything).
		Run(respondWith(1, map[string]any{"name": "CRM"})).Return(nil)
	caller.On("Do", mock.Anything, "getTable", mock.Anything, mock.Anything, mock.Anything).
		Return(failure)

	var app map[string]any

	var mu sync.Mutex

	var called []string

	operations := lcp.NewBatchBuilder().
		Add("app", "getApp", lcp.Params{"appid": "a1"}, &app).
		AddOperation(lcp.BatchOperation{
			ID:        "table",
			Operation: "getTable",
			Params:    lcp.Params{"appid": "a1", "tableid": "t1"},
			Callback: func(result *lcp.BatchResult) {
				mu.Lock()
				defer mu.Unlock()

				called = append(called, result.ID)
			},
		}).
		Build()

	results := lcp.NewBatchExecutor(caller, 2).Execute(context.Background(), operations)

	require.Len(t, results, 2)
	assert.Equal(t, "app", results[0].ID)
	assert.True(t, results[0].Success)
	assert.Equal(t, uint64(1), results[0].Sequence)
	assert.Equal(t, "CRM", app["name"])

	assert.Equal(t, "table", results[1].ID)
	assert.False(t, results[1].Success)
	assert.Equal(t, uint64(2), results[1].Sequence)
	assert.True(t, lcp.IsNotFound(results[1].Error))

	assert.Equal(t, []string{"table"}, called)

	require.Len(t, results.Failed(), 1)

	err := results.Err()
	require.ErrorIs(t, err, lcp.ErrBatchFailed)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, err.Error(), "table")

	caller.AssertExpectations(t)
}

func TestBatchExecutor_Concurrency(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32

	caller := &MockCaller{}
	caller.On("Do", mock.Anything, "getPreferences", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			current := inFlight.Add(1)
			for {
				seen := peak.Load()
				if current <= seen || peak.CompareAndSwap(seen, current) {
					break
				}
			}

			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
		}).Return(nil)

	builder := lcp.NewBatchBuilder()
	for range 8 {
		builder.Add("prefs", "getPreferences", nil, nil)
	}

	results := lcp.NewBatchExecutor(caller, 3).Execute(context.Background(), builder.Build())

	require.NoError(t, results.Err())
	assert.LessOrEqual(t, peak.Load(), int32(3))
	caller.AssertNumberOfCalls(t, "Do", 8)
}

func TestBatchExecutor_Timeout(t *testing.T) {
	t.Parallel()

	caller := &MockCaller{}
	caller.On("Do", mock.Anything, "getApp", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			options := lcp.NewCallOptions(args.Get(4).([]lcp.CallOption)...)
			assert.Equal(t, 2*time.Second, options.Timeout)
		}).Return(nil)

	executor := lcp.NewBatchExecutor(caller, 0)
	executor.SetTimeout(2 * time.Second)

	results := executor.Execute(context.Background(), lcp.NewBatchBuilder().Add("a", "getApp", nil, nil).Build())
	require.NoError(t, results.Err())
}

func TestBatchResults_Err(t *testing.T) {
	t.Parallel()

	assert.NoError(t, lcp.BatchResults{}.Err())
	assert.NoError(t, lcp.BatchResults{{ID: "a", Success: true}}.Err())

	err := lcp.BatchResults{{ID: "a", Success: true}, {ID: "b", Error: errors.New("boom")}}.Err()
	require.ErrorIs(t, err, lcp.ErrBatchFailed)
}
