package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/powerline/internal/config"
	"github.com/alexisbeaulieu97/powerline/internal/render"
	"github.com/alexisbeaulieu97/powerline/internal/theme"
	"github.com/alexisbeaulieu97/powerline/pkg/diff"
)

func newThemeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect and validate theme files",
	}

	cmd.AddCommand(newThemeCheckCmd())
	cmd.AddCommand(newThemeShowCmd(flags))
	cmd.AddCommand(newThemeRolesCmd())
	cmd.AddCommand(newThemeDiffCmd())

	return cmd
}

func newThemeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse theme files and report the first broken line of each",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := theme.Load(path); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d theme files are invalid", failed, len(args))
			}
			return nil
		},
	}
}

type themeShowOptions struct {
	format string
}

func newThemeShowCmd(flags *rootFlags) *cobra.Command {
	opts := &themeShowOptions{}

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Show a theme, or the configured one when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Load(flags.configPath)
				if err != nil {
					return newCommandError("show theme", "reading the settings file", err, "")
				}
				path = cfg.Theme
			}

			th, err := loadTheme(path)
			if err != nil {
				return newCommandError("show theme", "loading theme", err, "")
			}
			return showTheme(cmd.OutOrStdout(), th, opts.format)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "auto", "Output format: auto, preview or theme (auto previews on a terminal)")

	return cmd
}

func showTheme(w io.Writer, th *theme.Theme, format string) error {
	switch format {
	case "auto":
		if isTerminal(w) {
			return showTheme(w, th, "preview")
		}
		return theme.Encode(w, th)
	case "preview":
		_, err := fmt.Fprintln(w, render.Preview(th))
		return err
	case "theme":
		return theme.Encode(w, th)
	default:
		return fmt.Errorf("unknown format %q (want auto, preview or theme)", format)
	}
}

func isTerminal(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func newThemeRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List every role a theme file may set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ROLE\tKIND")
			for _, role := range theme.Roles() {
				fmt.Fprintf(writer, "%s\t%s\n", role.Name, role.Kind)
			}
			return writer.Flush()
		},
	}
}

func newThemeDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <file> [file]",
		Short: "Show the roles two themes set differently (the second defaults to the built-in palette)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, leftLabel := "", "default"
			right, rightLabel := args[0], args[0]
			if len(args) == 2 {
				left, leftLabel = args[0], args[0]
				right, rightLabel = args[1], args[1]
			}

			a, err := loadTheme(left)
			if err != nil {
				return newCommandError("diff themes", "loading "+leftLabel, err, "")
			}
			b, err := loadTheme(right)
			if err != nil {
				return newCommandError("diff themes", "loading "+rightLabel, err, "")
			}

			changed := theme.ChangedRoles(a, b)
			if len(changed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "themes are identical")
				return nil
			}

			aText, err := encodeTheme(a)
			if err != nil {
				return err
			}
			bText, err := encodeTheme(b)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), diff.Lines(aText, bText, leftLabel, rightLabel))
			fmt.Fprintf(cmd.OutOrStdout(), "%d roles differ\n", len(changed))
			return nil
		},
	}
}

func encodeTheme(th *theme.Theme) ([]byte, error) {
	var buf bytes.Buffer
	if err := theme.Encode(&buf, th); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
