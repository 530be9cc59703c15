package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/pathspec"
)

func newHashObjectCmd(opts *globalOptions) *cobra.Command {
	var (
		write    bool
		kindName string
	)

	cmd := &cobra.Command{
		Use:   "hash-object [-w] [-t type] <pathspec>...",
		Short: "Compute object ids, optionally storing the objects",
		Long: `Compute the object id of each file named by the pathspecs.
Directories expand to every file beneath them; ids are printed in path order.
With -w the objects are written to the object store.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := objects.ParseObjectType(kindName)
			if err != nil {
				return err
			}

			repo, repoErr := opts.openRepository()
			if write && repoErr != nil {
				return repoErr
			}

			files := args
			if repoErr == nil {
				set, err := pathspec.NewResolver(repo.Context()).Integrate(args)
				if err != nil {
					return err
				}
				files = files[:0:0]
				for _, rel := range set.Sorted() {
					abs, err := repo.Context().FromWorkdir(rel)
					if err != nil {
						return err
					}
					files = append(files, abs.String())
				}
			}

			for _, file := range files {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("cannot hash %s: %w", file, err)
				}

				hash := objects.ComputeObjectHash(kind, data)
				if write {
					if hash, err = repo.ObjectStore().Put(kind, data); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the objects into the object store")
	cmd.Flags().StringVarP(&kindName, "type", "t", string(objects.BlobType), "Object type (blob, tree, commit, tag)")
	return cmd
}
