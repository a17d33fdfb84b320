package main

import (
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pinfo/internal/config"
	"github.com/pranshuparmar/pinfo/internal/target"
	"github.com/pranshuparmar/pinfo/internal/tui"
)

var watchAll bool

var watchCmd = &cobra.Command{
	Use:   "watch [--pid N | NAME]",
	Short: "Browse processes and follow one interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchAll, "all", "a", false, "include system processes")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := tui.Options{ShowAll: watchAll}
	if pidFlag != 0 || len(args) > 0 {
		t, err := targetFromArgs(args)
		if err != nil {
			return err
		}
		pids, err := target.Resolve(t)
		if err != nil {
			return err
		}
		opts.PID = pids[0]
	}

	cfg := config.Current().ProcessInfo
	opts.ReadEnvironment = cfg.ReadEnvironment && !noEnv
	opts.TitleFormat = cfg.TitleFormat
	opts.RemoteTitleFormat = cfg.RemoteTitleFormat
	return tui.Run(opts)
}
