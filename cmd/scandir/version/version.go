package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version, Commit and Date should be set at build time using ldflags, e.g.:
//
//	-ldflags "-X 'github.com/gbansaghi/scandir/cmd/scandir/version.Version=1.2.3'"
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// NewCmd creates the `scandir version` command.
func NewCmd() *cobra.Command {
	var flagJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if !flagJSON {
				_, err := fmt.Fprintf(out, "scandir %s\n", Summary())

				return err
			}

			info := map[string]string{
				"version": Version,
				"commit":  commit(),
				"date":    Date,
				"go":      runtime.Version(),
				"go_os":   runtime.GOOS,
				"go_arch": runtime.GOARCH,
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")

			return enc.Encode(info)
		},
	}

	cmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")

	return cmd
}

// Summary returns "<version> (<commit>)", or just the version when the
// commit is unknown.
func Summary() string {
	if c := commit(); c != "" {
		return fmt.Sprintf("%s (%s)", Version, c)
	}

	return Version
}

// commit prefers the ldflags value and falls back to the VCS stamp embedded
// by the go tool.
func commit() string {
	if Commit != "" {
		return Commit
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}

	return ""
}
