package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pinfo/internal/output"
	"github.com/pranshuparmar/pinfo/internal/process"
	"github.com/pranshuparmar/pinfo/internal/target"
)

var treeCmd = &cobra.Command{
	Use:   "tree [--pid N | NAME]",
	Short: "Show the ancestry and children of a process",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	t, err := targetFromArgs(args)
	if err != nil {
		return err
	}
	pid, err := resolveOne(cmd.OutOrStdout(), t)
	if err != nil {
		return err
	}

	chain, err := process.BuildAncestry(pid, process.Live(false))
	if err != nil {
		return fmt.Errorf("failed to build ancestry: %w", err)
	}

	all, err := target.List()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	w := cmd.OutOrStdout()
	output.PrintTree(w, chain, output.ChildrenOf(pid, all), colorFor(w))
	return nil
}
