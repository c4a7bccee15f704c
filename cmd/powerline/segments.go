package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/powerline/internal/logger"
	"github.com/alexisbeaulieu97/powerline/internal/segments"
)

func newSegmentsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "segments",
		Short: "List the segments that can be passed to --modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var log *logger.Logger
			if flags.verbose {
				var err error
				if log, err = newLogger(cmd, "debug"); err != nil {
					return err
				}
			}

			reg, err := newRegistry(log)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tDEFAULT\tDESCRIPTION")
			for _, name := range reg.Names() {
				desc, _ := reg.Describe(name)
				inDefault := "no"
				if slices.Contains(segments.DefaultOrder, name) {
					inDefault = "yes"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", name, inDefault, desc)
			}
			return writer.Flush()
		},
	}
}
