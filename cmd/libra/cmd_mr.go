package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/cmd/ui"
	"github.com/utkarsh5026/libra/pkg/mr"
)

func newMRCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mr",
		Short: "Create, close, merge and list merge requests",
	}

	cmd.AddCommand(newMRCreateCmd(opts))
	cmd.AddCommand(newMRTransitionCmd(opts, "close", "Close an open merge request", (*mr.MergeRequest).Close))
	cmd.AddCommand(newMRTransitionCmd(opts, "merge", "Mark an open merge request as merged", (*mr.MergeRequest).Merge))
	cmd.AddCommand(newMRListCmd(opts))
	return cmd
}

func newMRCreateCmd(opts *globalOptions) *cobra.Command {
	var title, path, from, to string

	cmd := &cobra.Command{
		Use:   "create --title <title> --from <rev> --to <rev> [--path <path>]",
		Short: "Open a merge request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			fromHash, err := resolveRevision(repo, from)
			if err != nil {
				return err
			}
			toHash, err := resolveRevision(repo, to)
			if err != nil {
				return err
			}

			store, closeFn, err := opts.openMeta(cmd.Context(), repo)
			if err != nil {
				return err
			}
			defer closeFn()

			m := mr.New(title, path, fromHash, toHash)
			if err := store.SaveMergeRequest(cmd.Context(), m); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Opened merge request", m.Link))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Merge request title")
	cmd.Flags().StringVar(&path, "path", "/", "Repository path the request applies to")
	cmd.Flags().StringVar(&from, "from", "", "Revision the request starts from")
	cmd.Flags().StringVar(&to, "to", "", "Revision the request proposes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newMRTransitionCmd(opts *globalOptions, name, short string, transition func(*mr.MergeRequest) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <link>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			store, closeFn, err := opts.openMeta(cmd.Context(), repo)
			if err != nil {
				return err
			}
			defer closeFn()

			m, err := store.GetMergeRequest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := transition(m); err != nil {
				return err
			}
			if err := store.SaveMergeRequest(cmd.Context(), m); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), m.Link+" "+ui.MRStatusBadge(m.Status.String()))
			return nil
		},
	}
}

func newMRListCmd(opts *globalOptions) *cobra.Command {
	var statusName string

	cmd := &cobra.Command{
		Use:   "list [--status open|closed|merged]",
		Short: "List merge requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status mr.Status
			if statusName != "" {
				var err error
				if status, err = mr.ParseStatus(statusName); err != nil {
					return err
				}
			}

			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			store, closeFn, err := opts.openMeta(cmd.Context(), repo)
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := store.ListMergeRequests(cmd.Context(), status)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Link", "Title", "Status", "From", "To", "Merged")
			for _, m := range list {
				merged := ""
				if m.MergeDate != nil {
					merged = m.MergeDate.Format("2006-01-02 15:04")
				}
				if err := table.Append(m.Link, m.Title, m.Status.String(), m.FromHash.Short().String(), m.ToHash.Short().String(), merged); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}

	cmd.Flags().StringVar(&statusName, "status", "", "Only list requests in this status")
	return cmd
}
