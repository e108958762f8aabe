package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/lcp/internal/auth"
	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/fivetwenty-io/lcp/pkg/lcp"
	"github.com/fivetwenty-io/lcp/pkg/lcpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Instance               string        `json:"instance,omitempty"                  yaml:"instance,omitempty"`
	UserToken              string        `json:"user_token,omitempty"                yaml:"user_token,omitempty"`
	TempToken              string        `json:"temp_token,omitempty"                yaml:"temp_token,omitempty"`
	BaseURL                string        `json:"base_url,omitempty"                  yaml:"base_url,omitempty"`
	Output                 string        `json:"output,omitempty"                    yaml:"output,omitempty"`
	ConnectionLimit        int           `json:"connection_limit,omitempty"          yaml:"connection_limit,omitempty"`
	ConnectionLimitPeriod  time.Duration `json:"connection_limit_period,omitempty"   yaml:"connection_limit_period,omitempty"`
	ErrorOnConnectionLimit bool          `json:"error_on_connection_limit,omitempty" yaml:"error_on_connection_limit,omitempty"`
}

// Masked returns a copy of c with its tokens masked for display.
func (c *Config) Masked() *Config {
	masked := *c
	masked.UserToken = auth.Masked(c.UserToken)
	masked.TempToken = auth.Masked(c.TempToken)

	return &masked
}

// ClientConfig converts c to a library configuration.
func (c *Config) ClientConfig() *lcp.Config {
	return &lcp.Config{
		Instance:               c.Instance,
		UserToken:              c.UserToken,
		TempToken:              c.TempToken,
		BaseURL:                c.BaseURL,
		ConnectionLimit:        c.ConnectionLimit,
		ConnectionLimitPeriod:  c.ConnectionLimitPeriod,
		ErrorOnConnectionLimit: c.ErrorOnConnectionLimit,
	}
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage LCP CLI configuration including the instance, tokens and connection limits",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. Tokens are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().Masked()

			return render(cmd, config, func(w io.Writer) error {
				return displayConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Keys: instance, user_token, temp_token,
base_url, output, connection_limit, connection_limit_period,
error_on_connection_limit.`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value, restoring its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := unsetConfigValue(config, args[0])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

// loadConfig reads the configuration from viper, which merges the config
// file, LCP_* variables and flags.
func loadConfig() *Config {
	return &Config{
		Instance:               viper.GetString(KeyInstance),
		UserToken:              viper.GetString(KeyUserToken),
		TempToken:              viper.GetString(KeyTempToken),
		BaseURL:                viper.GetString(KeyBaseURL),
		Output:                 viper.GetString(KeyOutput),
		ConnectionLimit:        viper.GetInt(KeyConnectionLimit),
		ConnectionLimitPeriod:  viper.GetDuration(KeyConnectionLimitPeriod),
		ErrorOnConnectionLimit: viper.GetBool(KeyErrorOnConnectionLimit),
	}
}

// saveConfigStruct writes config to the active config file, defaulting to
// ~/.lcp/config.yml.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".lcp")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep viper in step with the file for the rest of this process.
	for key, value := range map[string]any{
		KeyInstance:               config.Instance,
		KeyUserToken:              config.UserToken,
		KeyTempToken:              config.TempToken,
		KeyBaseURL:                config.BaseURL,
		KeyOutput:                 config.Output,
		KeyConnectionLimit:        config.ConnectionLimit,
		KeyConnectionLimitPeriod:  config.ConnectionLimitPeriod,
		KeyErrorOnConnectionLimit: config.ErrorOnConnectionLimit,
	} {
		viper.Set(key, value)
	}

	return nil
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case KeyInstance:
		config.Instance = lcpclient.NormalizeInstance(value)
	case KeyUserToken:
		config.UserToken = value
	case KeyTempToken:
		config.TempToken = value
	case KeyBaseURL:
		config.BaseURL = value
	case KeyOutput:
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: output must be table, json or yaml", constants.ErrInvalidConfigValue)
		}
	case KeyConnectionLimit:
		limit, err := strconv.Atoi(value)
		if err != nil || limit <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", constants.ErrInvalidConfigValue, key)
		}

		config.ConnectionLimit = limit
	case KeyConnectionLimitPeriod:
		period, err := time.ParseDuration(value)
		if err != nil || period <= 0 || period%time.Millisecond != 0 {
			return fmt.Errorf("%w: %s must be a positive whole-millisecond duration such as 1s", constants.ErrInvalidConfigValue, key)
		}

		config.ConnectionLimitPeriod = period
	case KeyErrorOnConnectionLimit:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", constants.ErrInvalidConfigValue, key)
		}

		config.ErrorOnConnectionLimit = enabled
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case KeyInstance:
		config.Instance = ""
	case KeyUserToken:
		config.UserToken = ""
	case KeyTempToken:
		config.TempToken = ""
	case KeyBaseURL:
		config.BaseURL = ""
	case KeyOutput:
		config.Output = ""
	case KeyConnectionLimit:
		config.ConnectionLimit = 0
	case KeyConnectionLimitPeriod:
		config.ConnectionLimitPeriod = 0
	case KeyErrorOnConnectionLimit:
		config.ErrorOnConnectionLimit = false
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func displayConfigTable(w io.Writer, config *Config) error {
	period := ""
	if config.ConnectionLimitPeriod > 0 {
		period = config.ConnectionLimitPeriod.String()
	}

	limit := ""
	if config.ConnectionLimit > 0 {
		limit = strconv.Itoa(config.ConnectionLimit)
	}

	kind := auth.Credentials{UserToken: config.UserToken, TempToken: config.TempToken}.Kind()

	return propertyRows(w, [][]string{
		{"Instance", orNotAvailable(config.Instance)},
		{"Token Kind", orNotAvailable(string(kind))},
		{"User Token", orNotAvailable(config.UserToken)},
		{"Temp Token", orNotAvailable(config.TempToken)},
		{"Base URL", orNotAvailable(config.BaseURL)},
		{"Output", orNotAvailable(config.Output)},
		{"Connection Limit", orNotAvailable(limit)},
		{"Connection Limit Period", orNotAvailable(period)},
		{"Error On Connection Limit", strconv.FormatBool(config.ErrorOnConnectionLimit)},
	})
}

// createClient builds a client from the CLI configuration. With --verbose,
// requests are logged to stderr through zap.
func createClient() (lcp.Client, error) {
	config := loadConfig()

	if config.Instance == "" && config.BaseURL == "" {
		return nil, constants.ErrNoInstanceConfigured
	}

	clientConfig := config.ClientConfig()

	if viper.GetBool(KeyVerbose) {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}

		clientConfig.Logger = lcp.NewZapLogger(logger)
		clientConfig.Debug = true
	}

	client, err := lcpclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// withClient runs fn with a client and closes it afterwards.
func withClient(fn func(client lcp.Client) error) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	return fn(client)
}

// splitList parses a comma separated flag value, dropping empty items.
func splitList(value string) []string {
	var items []string

	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
