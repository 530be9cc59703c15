package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/pkg/objects"
)

func newLsObjectsCmd(opts *globalOptions) *cobra.Command {
	var hashOnly bool

	cmd := &cobra.Command{
		Use:   "ls-objects [prefix]",
		Short: "List stored objects, optionally those matching a hash prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}
			objs := repo.ObjectStore()

			var hashes []objects.ObjectHash
			if len(args) == 1 {
				hashes, err = objs.Search(args[0])
			} else {
				hashes, err = objs.List()
			}
			if err != nil {
				return err
			}

			if hashOnly {
				for _, h := range hashes {
					fmt.Fprintln(cmd.OutOrStdout(), h.String())
				}
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Hash", "Type", "Size")
			for _, h := range hashes {
				kind, data, err := objs.Get(h)
				if err != nil {
					return err
				}
				if err := table.Append(h.String(), kind.String(), strconv.Itoa(len(data))); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&hashOnly, "hash-only", false, "Print only the hashes")
	return cmd
}
