package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/pkg/refs/update"
	"github.com/utkarsh5026/libra/pkg/repository/refs"
)

func newShowRefCmd(opts *globalOptions) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "show-ref",
		Short: "List refs and the hashes they point at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			manager := refs.NewRefManager(repo)
			all, err := manager.ListRefs()
			if err != nil {
				return err
			}

			if !asTable {
				for _, r := range all {
					fmt.Fprintln(cmd.OutOrStdout(), r.Hash.String()+update.SP+r.Name.String())
				}
				return nil
			}

			head, _, err := manager.HeadTarget()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Ref", "Type", "Hash", "Default")
			for _, r := range all {
				def := ""
				if r.Name == head {
					def = "*"
				}
				row := []string{r.Name.String(), string(update.ClassifyRef(r.Name.String())), r.Hash.Short().String(), def}
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render refs as a table")
	return cmd
}
