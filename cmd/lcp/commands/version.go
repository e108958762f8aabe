package commands

import (
	"io"

	"github.com/fivetwenty-io/lcp/internal/constants"
	"github.com/spf13/cobra"
)

// VersionInfo describes the CLI build.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Built   string `json:"built"   yaml:"built"`
	Library string `json:"library" yaml:"library"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the LCP CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
				Library: constants.LibraryName + "/" + constants.LibraryVersion,
			}

			return render(cmd, info, func(w io.Writer) error {
				return propertyRows(w, [][]string{
					{"Version", info.Version},
					{"Commit", info.Commit},
					{"Built", info.Built},
					{"Library", info.Library},
				})
			})
		},
	}
}
