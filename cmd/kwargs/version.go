package main

import (
	"fmt"

	"github.com/aretw0/kwargs"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kwargs",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kwargs version %s\n", kwargs.Version)
		},
	}
}
