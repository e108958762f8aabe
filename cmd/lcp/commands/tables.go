package commands

import (
	"io"

	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command group.
func NewTablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tables",
		Aliases: []string{"table"},
		Short:   "Manage tables",
		Long:    "List the tables of an application",
	}

	cmd.AddCommand(newTablesListCommand())

	return cmd
}

func newTablesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list APP_ID",
		Short: "List tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client lcp.Client) error {
				tables, err := client.Tables().List(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return render(cmd, tables, func(w io.Writer) error {
					rows := make([][]string, 0, len(tables))
					for _, table := range tables {
						rows = append(rows, []string{
							table.ID,
							table.Name,
							orNotAvailable(table.Alias),
							orNotAvailable(truncate(table.Description)),
						})
					}

					return renderTable(w, []string{"ID", "Name", "Alias", "Description"}, rows)
				})
			})
		},
	}
}
