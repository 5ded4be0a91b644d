package main

import (
	"fmt"

	"github.com/aretw0/kwargs/pkg/buildinfo"
	"github.com/spf13/cobra"
)

func newConfigDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config-dir",
		Short: "Print the directory holding the CMake package files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if prefix, _ := cmd.Flags().GetString("prefix"); prefix != "" {
				dir = buildinfo.ConfigDir(prefix)
			} else {
				var err error
				if dir, err = buildinfo.ExecutableConfigDir(); err != nil {
					return fmt.Errorf("failed to locate executable: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	cmd.Flags().String("prefix", "", "Installation prefix (defaults to the executable's directory)")
	return cmd
}
