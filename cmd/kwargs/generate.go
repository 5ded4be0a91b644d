package main

import (
	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Print the canonical sample dict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := convert.FromHost(kwargs.GenerateDict())
			if err != nil {
				return err
			}
			return writeDoc(cmd, v, a.encoding)
		},
	}
}
