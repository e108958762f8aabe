package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/spf13/cobra"
)

// NewRecordsCommand creates the records command group.
func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "records",
		Aliases: []string{"record"},
		Short:   "Query records",
		Long:    "Query the records of a table",
	}

	cmd.AddCommand(newRecordsQueryCommand())

	return cmd
}

func newRecordsQueryCommand() *cobra.Command {
	var (
		selectFlag string
		where      string
		sortFlag   string
		top        int
		skip       int
	)

	cmd := &cobra.Command{
		Use:   "query TABLE_ID",
		Short: "Query records",
		Long: `Query the records of a table.

Examples:
  lcp records query bq2x9h3kp --select 3,6,7 --where "{6.EX.'open'}"
  lcp records query bq2x9h3kp --sort 6:DESC --top 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := buildQueryRequest(args[0], selectFlag, where, sortFlag)
			if err != nil {
				return err
			}

			if top > 0 || skip > 0 {
				request.Options = &lcp.PageOptions{Top: top, Skip: skip}
			}

			return withClient(func(client lcp.Client) error {
				result, err := client.Records().Query(cmd.Context(), request)
				if err != nil {
					return err
				}

				return render(cmd, result, func(w io.Writer) error {
					return displayQueryResult(w, result)
				})
			})
		},
	}

	cmd.Flags().StringVar(&selectFlag, "select", "", "comma separated field ids to return")
	cmd.Flags().StringVar(&where, "where", "", "query filter")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "comma separated FIELD_ID:ASC|DESC pairs")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of records")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of records to skip")

	return cmd
}

func buildQueryRequest(tableID, selectFlag, where, sortFlag string) (*lcp.RecordsQueryRequest, error) {
	request := &lcp.RecordsQueryRequest{TableID: tableID, Where: where}

	for _, item := range splitList(selectFlag) {
		fieldID, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%w: --select %q", constants.ErrInvalidFieldID, item)
		}

		request.Select = append(request.Select, fieldID)
	}

	for _, item := range splitList(sortFlag) {
		id, order, found := strings.Cut(item, ":")
		if !found {
			order = "ASC"
		}

		fieldID, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("%w: --sort %q", constants.ErrInvalidFieldID, item)
		}

		request.SortBy = append(request.SortBy, lcp.SortField{FieldID: fieldID, Order: strings.ToUpper(order)})
	}

	return request, nil
}

func displayQueryResult(w io.Writer, result *lcp.QueryResult) error {
	header := make([]string, 0, len(result.Fields))
	for _, field := range result.Fields {
		header = append(header, field.Label)
	}

	rows := make([][]string, 0, len(result.Data))
	for _, record := range result.Data {
		row := make([]string, 0, len(result.Fields))
		for _, field := range result.Fields {
			row = append(row, cell(record[strconv.Itoa(field.ID)]))
		}

		rows = append(rows, row)
	}

	err := renderTable(w, header, rows)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%d of %d records\n", result.Metadata.NumRecords, result.Metadata.TotalRecords)

	return nil
}
