package commands

import (
	"io"
	"strconv"

	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/spf13/cobra"
)

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app"},
		Short:   "Manage applications",
		Long:    "Inspect applications",
	}

	cmd.AddCommand(newAppsGetCommand())

	return cmd
}

func newAppsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get APP_ID",
		Short: "Get an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client lcp.Client) error {
				app, err := client.Apps().Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return render(cmd, app, func(w io.Writer) error {
					return propertyRows(w, [][]string{
						{"ID", app.ID},
						{"Name", app.Name},
						{"Description", orNotAvailable(truncate(app.Description))},
						{"Time Zone", orNotAvailable(app.TimeZone)},
						{"Date Format", orNotAvailable(app.DateFormat)},
						{"Public", strconv.FormatBool(app.HasEveryoneOnTheInternet)},
						{"Variables", strconv.Itoa(len(app.Variables))},
					})
				})
			})
		},
	}
}
