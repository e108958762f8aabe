package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/fivetwenty-io/lcp/internal/dispatch"
	"github.com/fivetwenty-io/lcp/internal/operations"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/spf13/cobra"
)

// NewCallCommand creates the call command, which sends any operation by name.
func NewCallCommand() *cobra.Command {
	var (
		data    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "call OPERATION [KEY=VALUE...]",
		Short: "Call an API operation by name",
		Long: `Call any API operation by name. Values are parsed as JSON when
possible, otherwise sent as strings. See "lcp operations" for names.

Examples:
  lcp call getApp appid=bpqe82s1
  lcp call getRecords tableid=bq2x9h3kp 'columns=[3,6]' limit=10
  lcp call postFormulaRun --data '{"formula":"SUM(1,2)","from":"bq2x9h3kp"}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseCallParams(data, args[1:])
			if err != nil {
				return err
			}

			var opts []lcp.CallOption
			if timeout > 0 {
				opts = append(opts, lcp.WithTimeout(timeout))
			}

			return withClient(func(client lcp.Client) error {
				var result any

				err := client.Do(cmd.Context(), args[0], params, &result, opts...)
				if err != nil {
					return err
				}

				return render(cmd, result, nil)
			})
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "JSON object of parameters, merged under KEY=VALUE arguments")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-call timeout")

	return cmd
}

// NewOperationsCommand creates the operations command.
func NewOperationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List API operations",
		Long:    "List every operation name accepted by the call command",
		RunE: func(cmd *cobra.Command, args []string) error {
			type operation struct {
				Name        string   `json:"name"                  yaml:"name"`
				Method      string   `json:"method"                yaml:"method"`
				Path        string   `json:"path"                  yaml:"path"`
				Query       []string `json:"query,omitempty"       yaml:"query,omitempty"`
				Params      []string `json:"params,omitempty"      yaml:"params,omitempty"`
				Description string   `json:"description,omitempty" yaml:"description,omitempty"`
			}

			all := operations.All()

			listing := make([]operation, 0, len(all))
			for _, desc := range all {
				listing = append(listing, operation{
					Name:        desc.Name,
					Method:      desc.Method,
					Path:        desc.Path,
					Query:       desc.QueryParams,
					Params:      dispatch.KnownParams(desc),
					Description: desc.Description,
				})
			}

			return render(cmd, listing, func(w io.Writer) error {
				rows := make([][]string, 0, len(listing))
				for _, op := range listing {
					rows = append(rows, []string{op.Name, op.Method, op.Path, strings.Join(op.Params, ","), op.Description})
				}

				return renderTable(w, []string{"Operation", "Method", "Path", "Params", "Description"}, rows)
			})
		},
	}
}

// parseCallParams merges the --data object with KEY=VALUE arguments.
func parseCallParams(data string, args []string) (lcp.Params, error) {
	params := lcp.Params{}

	if data != "" {
		decoded, ok := decodeJSON(data).(map[string]any)
		if !ok {
			return nil, constants.ErrInvalidParamData
		}

		params = decoded
	}

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParamArgument, arg)
		}

		params[key] = decodeJSON(value)
	}

	return params, nil
}

// decodeJSON returns value decoded as JSON, or value itself when it is not
// valid JSON. Numbers decode to json.Number.
func decodeJSON(value string) any {
	decoder := json.NewDecoder(bytes.NewReader([]byte(value)))
	decoder.UseNumber()

	var decoded any

	err := decoder.Decode(&decoded)
	if err != nil || decoder.More() {
		return value
	}

	return decoded
}
