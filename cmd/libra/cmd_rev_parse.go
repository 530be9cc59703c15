package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRevParseCmd(opts *globalOptions) *cobra.Command {
	var commitOnly bool

	cmd := &cobra.Command{
		Use:   "rev-parse [--commit] <rev>...",
		Short: "Resolve refs and abbreviated hashes to full object ids",
		Long: `Resolve each argument to a full object id.
An argument is tried as a ref first, then as a hash prefix that must match
exactly one stored object. With --commit the result must be a commit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			for _, rev := range args {
				resolve := resolveRevision
				if commitOnly {
					resolve = resolveCommit
				}

				hash, err := resolve(repo, rev)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&commitOnly, "commit", false, "Require every argument to name a commit")
	return cmd
}
