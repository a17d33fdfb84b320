package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pinfo/internal/config"
	"github.com/pranshuparmar/pinfo/internal/output"
	"github.com/pranshuparmar/pinfo/internal/process"
	"github.com/pranshuparmar/pinfo/internal/target"
)

var (
	listJSON        bool
	listConcurrency int
)

var listCmd = &cobra.Command{
	Use:   "list [NAME]",
	Short: "Inspect every running process, or every process matching NAME",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	listCmd.Flags().IntVarP(&listConcurrency, "concurrency", "j", 0, "parallel inspections (default GOMAXPROCS)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var pids []int
	if len(args) > 0 {
		matched, err := target.ResolveName(args[0])
		if err != nil {
			return err
		}
		pids = matched
	} else {
		all, err := target.List()
		if err != nil {
			return fmt.Errorf("failed to list processes: %w", err)
		}
		for _, p := range all {
			pids = append(pids, p.PID)
		}
	}

	procs, err := process.InspectAll(cmd.Context(), pids, process.Options{
		ReadEnvironment: listJSON && config.Current().ProcessInfo.ReadEnvironment && !noEnv,
		Concurrency:     listConcurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to inspect processes: %w", err)
	}

	if listJSON {
		return printJSON(cmd.OutOrStdout(), procs)
	}
	return output.RenderList(cmd.OutOrStdout(), procs)
}
