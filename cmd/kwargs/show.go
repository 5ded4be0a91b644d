package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/kwargs/internal/presentation/tui"
	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [file|-]",
		Short: "Pretty-print a dict as a tree or Markdown table",
		Long: `Renders a JSON or YAML document for humans. Without an argument the
canonical dict is shown. Colours are used only when stdout is a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := fixture.Canonical()
			title := "canonical"
			if len(args) > 0 {
				var err error
				if v, err = readDoc(cmd, args[0], a.encoding); err != nil {
					return err
				}
				title = filepath.Base(args[0])
			}

			tty := cmd.OutOrStdout() == os.Stdout && tui.IsTerminal(os.Stdout)
			if markdown, _ := cmd.Flags().GetBool("markdown"); markdown {
				return showMarkdown(cmd, title, v, tty)
			}

			profile := termenv.Ascii
			if tty {
				profile = termenv.ColorProfile()
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.NewTree(profile).Render(v))
			return nil
		},
	}
	cmd.Flags().Bool("markdown", false, "Render as a Markdown table")
	return cmd
}

func showMarkdown(cmd *cobra.Command, title string, v value.Value, tty bool) error {
	md := tui.Markdown(title, v)
	if !tty {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	out, err := tui.NewRenderer()(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
