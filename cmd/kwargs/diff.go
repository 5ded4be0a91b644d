package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/kwargs/pkg/value"
	"github.com/spf13/cobra"
)

var errDictsDiffer = errors.New("dicts differ")

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two dicts structurally",
		Long: `Compares two JSON or YAML documents. Mapping key order is ignored,
sequence order and the int/float distinction are not.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := readDoc(cmd, args[0], value.EncodingJSON)
			if err != nil {
				return err
			}
			right, err := readDoc(cmd, args[1], value.EncodingJSON)
			if err != nil {
				return err
			}

			diffs := value.Diff(left, right)
			if len(diffs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "equal")
				return nil
			}
			for _, d := range diffs {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}
			return fmt.Errorf("%w: %d difference(s)", errDictsDiffer, len(diffs))
		},
	}
}
