package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/spf13/cobra"
)

func newEchoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo [file|-]",
		Short: "Carry a dict across the boundary and print it back",
		Long: `Reads a JSON or YAML document (stdin by default), converts it to host
objects, echoes it through both converters and prints the result.
With --check the command fails when the result differs from the input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			inFormat, _ := cmd.Flags().GetString("input-format")
			inEnc, err := value.ParseEncoding(inFormat)
			if err != nil {
				return err
			}

			in, err := readDoc(cmd, path, inEnc)
			if err != nil {
				return err
			}

			opts := a.convertOpts()
			host, err := convert.ToHost(in, opts...)
			if err != nil {
				return err
			}
			echoed, err := kwargs.EchoDict(host, opts...)
			if err != nil {
				return err
			}
			out, err := convert.FromHost(echoed, opts...)
			if err != nil {
				return err
			}

			if check, _ := cmd.Flags().GetBool("check"); check && !value.Equal(in, out) {
				for _, d := range value.Diff(in, out) {
					a.logger.Error("echo mismatch", "diff", d.String())
				}
				return errors.New("echo changed the dict")
			}
			a.logger.Debug("echo complete", "tag", out.Tag())
			if err := writeDoc(cmd, out, a.encoding); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("input-format", "json", "Format of input without a .json/.yaml extension")
	cmd.Flags().Bool("check", false, "Fail if the echoed dict differs from the input")
	return cmd
}
