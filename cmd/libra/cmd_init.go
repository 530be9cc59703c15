package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/cmd/ui"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new libra repository",
		Long: `Initialize a new libra repository in the current directory or specified path.
This creates a .libra directory holding objects, refs and HEAD.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			repoPath, err := scpath.NewRepositoryPath(path)
			if err != nil {
				return err
			}

			if branch == "" {
				branch = opts.config().Core.DefaultBranch
			}

			repo, err := librarepo.Initialize(repoPath, branch)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Initialized empty libra repository in", filepath.Join(repo.WorkingDirectory().String(), scpath.ControlDir)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "initial-branch", "b", "", "Name of the branch HEAD points at (default from core.default_branch)")
	return cmd
}
