package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NexusOnePlus/spacedrive/internal/appconfig"
)

func newConfigCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the sdtabs config file",
	}
	cmd.AddCommand(newConfigInitCmd(cfgPath))
	return cmd
}

func newConfigInitCmd(cfgPath *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := appconfig.WriteDefault(*cfgPath, force)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}
