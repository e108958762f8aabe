package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/lcp/internal/auth"
	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/fivetwenty-io/lcp/pkg/lcpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		instance   string
		token      string
		kindFlag   string
		skipVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials for an instance",
		Long:  "Save the instance and a user or temporary token, verifying them against the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := auth.ParseTokenKind(kindFlag)
			if err != nil {
				return fmt.Errorf("invalid --kind: %w", err)
			}

			if instance == "" {
				instance = viper.GetString(KeyInstance)
			}

			if instance == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Instance: ")
				instance, _ = reader.ReadString('\n')
			}

			instance = lcpclient.NormalizeInstance(instance)
			if instance == "" {
				return constants.ErrNoInstanceConfigured
			}

			if token == "" {
				fmt.Print("Token: ")

				byteToken, err := term.ReadPassword(int(os.Stdin.Fd()))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}

				fmt.Println()

				token = strings.TrimSpace(string(byteToken))
			}

			if token == "" {
				return constants.ErrTokenRequired
			}

			config := loadConfig()
			config.Instance = instance

			if kind == auth.TokenKindTemp {
				config.TempToken = token
			} else {
				config.UserToken = token
				config.TempToken = ""
			}

			if !skipVerify {
				err = verifyCredentials(cmd, config)
				if err != nil {
					return err
				}
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", instance)

			return nil
		},
	}

	cmd.Flags().StringVar(&instance, "instance", "", "instance name")
	cmd.Flags().StringVar(&token, "token", "", "token (prompted when omitted)")
	cmd.Flags().StringVar(&kindFlag, "kind", string(auth.TokenKindUser), "token kind (user, temp)")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save without calling the API")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored tokens",
		Long:  "Clear the user and temporary tokens from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.UserToken = ""
			config.TempToken = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func verifyCredentials(cmd *cobra.Command, config *Config) error {
	client, err := lcpclient.New(config.ClientConfig())
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	defer func() { _ = client.Close() }()

	_, err = client.Preferences().Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	return nil
}
