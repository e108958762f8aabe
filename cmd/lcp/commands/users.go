package commands

import (
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List and inspect account users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var (
		accountID string
		top       int
		skip      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client lcp.Client) error {
				users, err := client.Users().List(cmd.Context(), &lcp.UserListOptions{
					PageOptions: lcp.PageOptions{Top: top, Skip: skip},
					AccountID:   accountID,
				})
				if err != nil {
					return err
				}

				return render(cmd, users, func(w io.Writer) error {
					rows := make([][]string, 0, len(users))
					for _, user := range users {
						rows = append(rows, []string{
							user.ID,
							user.Email,
							orNotAvailable(fullName(&user)),
							strconv.FormatBool(user.Active),
						})
					}

					return renderTable(w, []string{"ID", "Email", "Name", "Active"}, rows)
				})
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "restrict to one account")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of users")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of users to skip")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(client lcp.Client) error {
				user, err := client.Users().Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return render(cmd, user, func(w io.Writer) error {
					return propertyRows(w, [][]string{
						{"ID", user.ID},
						{"Email", user.Email},
						{"Name", orNotAvailable(fullName(user))},
						{"User Name", orNotAvailable(user.UserName)},
						{"Active", strconv.FormatBool(user.Active)},
					})
				})
			})
		},
	}
}

func fullName(user *lcp.User) string {
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
