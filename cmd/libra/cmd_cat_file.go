package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newCatFileCmd(opts *globalOptions) *cobra.Command {
	var showType, pretty, exists, size bool

	cmd := &cobra.Command{
		Use:   "cat-file (-t | -p | -s | -e) <object>",
		Short: "Show the type, size or content of a stored object",
		Long: `Show information about a stored object.
The object may be named by a full hash, an unambiguous hash prefix or a ref.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if countTrue(showType, pretty, exists, size) != 1 {
				return errors.New("exactly one of -t, -p, -s, -e is required")
			}

			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			hash, err := resolveRevision(repo, args[0])
			if err != nil {
				return err
			}

			kind, data, err := repo.ObjectStore().Get(hash)
			if err != nil {
				return err
			}

			switch {
			case showType:
				fmt.Fprintln(cmd.OutOrStdout(), kind.String())
			case size:
				fmt.Fprintln(cmd.OutOrStdout(), len(data))
			case pretty:
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "Show the object type")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Print the object content")
	cmd.Flags().BoolVarP(&size, "size", "s", false, "Show the object size in bytes")
	cmd.Flags().BoolVarP(&exists, "exists", "e", false, "Exit with an error unless the object exists")
	return cmd
}

func countTrue(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
