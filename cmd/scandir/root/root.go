package root

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/gbansaghi/scandir"
	"github.com/gbansaghi/scandir/cmd/scandir/version"
	"github.com/gbansaghi/scandir/internal/config"
)

// flags holds the persistent flags shared by the listing subcommands.
type flags struct {
	configPath string
	format     string
	noDots     bool
	types      []string
	suffix     string
	prefix     string
	verbose    bool
}

// NewRootCmd creates the root command for scandir.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "scandir",
		Short: "List the entries of a directory, in the order the OS returns them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if f.verbose {
				scandir.SetLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			} else {
				scandir.SetLogger(scandir.DiscardLogger())
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Path to config file (.yaml)")
	pf.StringVarP(&f.format, "format", "o", "", "Output format: text | json | yaml")
	pf.BoolVar(&f.noDots, "no-dots", false, `Omit "." and ".."`)
	pf.StringSliceVarP(&f.types, "type", "t", nil, "Keep only entries of these types (reg, dir, symlink, fifo, socket, char, block, unknown)")
	pf.StringVar(&f.suffix, "suffix", "", "Keep only names ending with this suffix")
	pf.StringVar(&f.prefix, "prefix", "", "Keep only names starting with this prefix")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	// Subcommands
	cmd.AddCommand(newNamesCmd(f))
	cmd.AddCommand(newEntriesCmd(f))
	cmd.AddCommand(newSerialsCmd(f))
	cmd.AddCommand(version.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)

	return cmd.Execute()
}

// resolve loads the config file and overlays explicitly set flags.
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, usageError{err}
	}

	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = f.format
	}

	if changed("no-dots") {
		cfg.NoDots = f.noDots
	}

	if changed("type") {
		cfg.Types = f.types
	}

	if changed("suffix") {
		cfg.Suffix = f.suffix
	}

	if changed("prefix") {
		cfg.Prefix = f.prefix
	}

	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}

	return cfg, nil
}

// dirArg returns the directory operand, "." when omitted.
func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}

	return args[0]
}

// usageError marks invalid flags or config; the command exits with status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func (e usageError) ExitCode() int { return 2 }
