// Package lcp provides types, interfaces, and helpers for working with the
// LCP low-code platform REST API.
//
// # Overview
//
// The lcp package defines the domain types (e.g., App, Table, Field, Record,
// Report) and the interfaces for resource-oriented clients (e.g., AppsClient,
// RecordsClient). A concrete implementation is provided by the lcpclient
// package, which wires configuration, transport, rate limiting and error
// normalization. Most consumers should import lcpclient to construct a client
// and then interact with the resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/lcp/pkg/lcp"
//	  "github.com/fivetwenty-io/lcp/pkg/lcpclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := lcpclient.NewWithUserToken("acme", "b9x7...")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  records, err := cli.Records().List(ctx, &lcp.RecordListOptions{
//	    TableID: "bq2z8x",
//	    Columns: []string{"3", "6", "7"},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = records
//	}
//
// # Rate limiting
//
// Every client admits at most Config.ConnectionLimit requests per
// Config.ConnectionLimitPeriod. Calls over the limit wait in arrival order
// for the next window, or fail with ErrRateLimitExceeded when
// Config.ErrorOnConnectionLimit is set. Waiting honours context cancellation.
//
// # Errors
//
// Every failure is an *Error whose Kind is one of ErrConfiguration,
// ErrMissingParameter, ErrRateLimitExceeded, ErrTransport, ErrServiceError or
// ErrParse, so both forms below work:
//
//	if errors.Is(err, lcp.ErrServiceError) { ... }
//	if e, ok := lcp.AsError(err); ok { log.Println(e.Status, e.Sequence) }
//
// The client never retries on its own unless Config.RetryMax is set.
//
// # Raw responses
//
// Pass WithRawResponse to receive the full transport response alongside the
// decoded results, for example to read response headers.
package lcp
