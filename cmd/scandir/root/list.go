package root

import (
	"github.com/spf13/cobra"

	"github.com/gbansaghi/scandir"
)

func newNamesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "names [DIR]",
		Short: "Print entry names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			ef, err := cfg.EntryFilter()
			if err != nil {
				return usageError{err}
			}

			names, err := scandir.Names(dirArg(args), cfg.NameFilter(), ef, cfg.Options()...)
			if err != nil {
				return err
			}

			return writeNames(cmd.OutOrStdout(), cfg.Format, names)
		},
	}
}

func newEntriesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "entries [DIR]",
		Short: "Print entry records (serial, type, name)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			ef, err := cfg.EntryFilter()
			if err != nil {
				return usageError{err}
			}

			var vf scandir.ValueFilter[scandir.Entry]
			if nf := cfg.NameFilter(); nf != nil {
				vf = func(e scandir.Entry) bool { return nf(e.Name()) }
			}

			entries, err := scandir.Entries(dirArg(args), vf, ef, cfg.Options()...)
			if err != nil {
				return err
			}

			return writeEntries(cmd.OutOrStdout(), cfg.Format, entries)
		},
	}
}

func newSerialsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serials [DIR]",
		Short: "Print file serial numbers (inode numbers)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			ef, err := cfg.EntryFilter()
			if err != nil {
				return usageError{err}
			}

			// Serial values carry no name, so name filters apply per entry.
			if nf := cfg.NameFilter(); nf != nil {
				ef = scandir.AllOf(ef, func(e *scandir.Entry) bool { return nf(e.Name()) })
			}

			serials, err := scandir.Serials(dirArg(args), nil, ef, cfg.Options()...)
			if err != nil {
				return err
			}

			return writeSerials(cmd.OutOrStdout(), cfg.Format, serials)
		},
	}
}
