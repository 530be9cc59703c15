package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/cmd/ui"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/meta"
	"github.com/utkarsh5026/libra/pkg/refs/update"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/refs"
)

func newUpdateRefCmd(opts *globalOptions) *cobra.Command {
	var noMirror bool

	cmd := &cobra.Command{
		Use:   "update-ref",
		Short: "Apply a batch of ref commands read from stdin",
		Long: `Read "<old-id> <new-id> <ref-name>" lines from stdin and apply them in order.
An all-zero old id creates the ref, an all-zero new id deletes it.
A rejected command does not stop the batch. One status line is printed
per command: "ok <ref>" or "ng <ref> <reason>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := opts.openRepository()
			if err != nil {
				return err
			}

			commands, err := readCommands(cmd)
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				return nil
			}

			manager := refs.NewRefManager(repo)
			if head, ok, err := manager.HeadTarget(); err == nil && ok {
				for _, c := range commands {
					c.DefaultBranch = c.RefName == head.String()
				}
			}

			update.NewApplier(manager, repo.ObjectStore()).Apply(cmd.Context(), commands)

			for _, line := range update.Report(commands) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.RefStatusLine(line))
			}

			if !noMirror {
				if err := mirrorCommands(cmd, opts, repo, commands); err != nil {
					return err
				}
			}

			failed := 0
			for _, c := range commands {
				if !c.IsOK() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d ref updates rejected", failed, len(commands))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noMirror, "no-mirror", false, "Do not record accepted commands in the metadata database")
	return cmd
}

func readCommands(cmd *cobra.Command) ([]*update.RefCommand, error) {
	var commands []*update.RefCommand

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c, err := update.ParseCommandLine(line)
		if err != nil {
			return nil, err
		}
		commands = append(commands, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

func mirrorCommands(cmd *cobra.Command, opts *globalOptions, repo *librarepo.SourceRepository, commands []*update.RefCommand) error {
	store, closeFn, err := opts.openMeta(cmd.Context(), repo)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := store.ApplyCommands(cmd.Context(), meta.LocalRepoID, commands); err != nil {
		return err
	}
	logger.Component("update-ref").Debug("ref commands mirrored", "count", len(commands))
	return nil
}
