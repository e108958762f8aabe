// Package lcpclient provides the primary entry point for constructing an LCP
// API client that implements the lcp.Client interface.
//
// It layers configuration, connection limiting and HTTP transport on top of
// the resource interfaces and types defined in the lcp package. Most
// applications should import lcpclient to build a client, then use the
// returned lcp.Client to access resource-specific clients, for example
// Apps(), Tables(), Records(), etc.
//
// Quick start
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
//
//	  // With a user token:
//	  cli, err := lcpclient.NewWithUserToken("acme", "user-token")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // Or with full control over connection limiting:
//	  cli, err = lcpclient.New(&lcp.Config{
//	    Instance:               "acme",
//	    UserToken:              "user-token",
//	    ConnectionLimit:        5,
//	    ConnectionLimitPeriod:  time.Second,
//	    ErrorOnConnectionLimit: true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  records, err := cli.Records().List(ctx, &lcp.RecordListOptions{
//	    TableID: "bq2x9h3kp",
//	    Columns: []string{"3", "6"},
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = records
//	}
//
// # Instances
//
// The instance is the account's subdomain. Host names and URLs such as
// "acme.lcp.app" or "https://acme.lcp.app/" are reduced to "acme".
//
// # Helpers
//
// The package also provides convenience constructors NewWithUserToken,
// NewWithTempToken and NewFromJSON that wrap New with the appropriate
// configuration.
package lcpclient
