package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// useConfig points viper at a fresh config file and applies settings.
// Tests calling it share viper's global state and must not run in parallel.
func useConfig(t *testing.T, settings map[string]any) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	for key, value := range settings {
		viper.Set(key, value)
	}

	return configFile
}

// execute runs cmd with args and returns what it wrote.
func execute(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())

	return out.String()
}
