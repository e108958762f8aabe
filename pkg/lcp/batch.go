package lcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/lcp/internal/constants"
)

// Caller sends one named operation. Client implements it.
type Caller interface {
	Do(ctx context.Context, operation string, params any, out any, opts ...CallOption) error
}

// BatchOperation is one call in a batch.
type BatchOperation struct {
	// ID identifies the operation in results.
	ID string
	// Operation is the descriptor name, e.g. "postRecords".
	Operation string
	// Params is passed to Caller.Do.
	Params any
	// Out receives the decoded results payload. May be nil.
	Out      any
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID        string
	Operation string
	// Sequence is the request number, or 0 if the call never reached the limiter.
	Sequence uint64
	Success  bool
	Error    error
	Duration time.Duration
}

// BatchResults are returned in the order the operations were given.
type BatchResults []BatchResult

// Failed returns the results that did not succeed.
func (r BatchResults) Failed() BatchResults {
	var failed BatchResults

	for _, result := range r {
		if !result.Success {
			failed = append(failed, result)
		}
	}

	return failed
}

// Err returns nil when every operation succeeded, otherwise an error
// wrapping ErrBatchFailed that names the failed operations.
func (r BatchResults) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}

	ids := make([]string, len(failed))
	for i, result := range failed {
		ids[i] = result.ID
	}

	return fmt.Errorf("%w: %d of %d: %v", ErrBatchFailed, len(failed), len(r), ids)
}

// BatchExecutor runs operations concurrently. The client's connection
// limit still applies; concurrency only bounds goroutines in flight.
type BatchExecutor struct {
	caller      Caller
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(caller Caller, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}

	return &BatchExecutor{
		caller:      caller,
		concurrency: concurrency,
	}
}

// SetTimeout sets a per-operation timeout. Zero means none.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs operations and waits for all of them. Failures are reported
// per result; see BatchResults.Err.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) BatchResults {
	results := make(BatchResults, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			result := b.executeOperation(ctx, operation)
			results[index] = *result

			if operation.Callback != nil {
				operation.Callback(result)
			}
		}()
	}

	waitGroup.Wait()

	return results
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	var raw *Response

	opts := []CallOption{WithRawResponse(&raw)}
	if b.timeout > 0 {
		opts = append(opts, WithTimeout(b.timeout))
	}

	start := time.Now()
	err := b.caller.Do(ctx, operation.Operation, operation.Params, operation.Out, opts...)

	result := &BatchResult{
		ID:        operation.ID,
		Operation: operation.Operation,
		Success:   err == nil,
		Error:     err,
		Duration:  time.Since(start),
		Sequence:  SequenceOf(err),
	}

	if raw != nil {
		result.Sequence = raw.Sequence
	}

	return result
}

// BatchBuilder collects operations for a BatchExecutor.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{}
}

// Add appends a call to operation. out may be nil.
func (b *BatchBuilder) Add(id, operation string, params any, out any) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:        id,
		Operation: operation,
		Params:    params,
		Out:       out,
	})

	return b
}

// AddOperation appends a prepared operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the collected operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
