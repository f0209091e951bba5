package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nufmt/internal/config"
)

func newInitCmd(_ *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a .nufmt.toml config file",
		Long: `Init writes a commented .nufmt.toml listing every setting with its default
value into dir (the current directory by default). An existing file is kept
unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := config.WriteTemplate(dir, force)
			switch {
			case errors.Is(err, config.ErrExists):
				return &exitStatus{code: exitChanged, err: err}
			case err != nil:
				return &exitStatus{code: exitError, err: err}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
