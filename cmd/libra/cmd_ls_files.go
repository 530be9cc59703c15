package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/pkg/pathspec"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

func newLsFilesCmd(opts *globalOptions) *cobra.Command {
	var (
		under    []string
		fullName bool
	)

	cmd := &cobra.Command{
		Use:   "ls-files [pathspec]...",
		Short: "List working tree files matched by pathspecs",
		Long: `List the files in the working tree named by the pathspecs, or every file
when none are given. The control directory is never listed.
Paths are shown relative to the current directory unless --full-name is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}
			ctx := repo.Context()
			resolver := pathspec.NewResolver(ctx)

			var files []scpath.RelativePath
			if len(args) == 0 {
				files, err = resolver.ListWorkdirFiles()
			} else {
				var set pathspec.PathSet
				set, err = resolver.Integrate(args)
				files = set.Sorted()
			}
			if err != nil {
				return err
			}

			if len(under) > 0 {
				if files, err = resolver.FilterToSubtrees(files, under); err != nil {
					return err
				}
			}

			for _, rel := range files {
				if fullName {
					fmt.Fprintln(cmd.OutOrStdout(), rel.String())
					continue
				}
				shown, err := ctx.WorkdirToCurrent(rel)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), shown)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&under, "under", nil, "Only show files beneath these directories")
	cmd.Flags().BoolVar(&fullName, "full-name", false, "Show paths relative to the repository root")
	return cmd
}
