package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/pinfo/internal/config"
	"github.com/pranshuparmar/pinfo/internal/output"
	"github.com/pranshuparmar/pinfo/internal/proc"
	"github.com/pranshuparmar/pinfo/internal/ssh"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

var (
	sshJSON   bool
	sshFormat string
)

var sshCmd = &cobra.Command{
	Use:   "ssh [--pid N | NAME]",
	Short: "Decode the user, host, port and command of an ssh client",
	Long: `Decode the login target of a running ssh client from its arguments.
Without --pid or a name the single running process named "ssh" is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSSH,
}

func init() {
	sshCmd.Flags().BoolVar(&sshJSON, "json", false, "output as JSON")
	sshCmd.Flags().StringVar(&sshFormat, "format", "", "title template (%u user, %h host)")
	rootCmd.AddCommand(sshCmd)
}

func runSSH(cmd *cobra.Command, args []string) error {
	if pidFlag == 0 && len(args) == 0 {
		args = []string{"ssh"}
	}
	t, err := targetFromArgs(args)
	if err != nil {
		return err
	}
	pid, err := resolveOne(cmd.OutOrStdout(), t)
	if err != nil {
		return err
	}

	info := proc.New(pid, false)
	info.Update()
	if !info.IsValid() {
		return fmt.Errorf("read process %d: %s", pid, describeError(info.Error()))
	}
	if name, ok := info.Name(); !ok || name != "ssh" {
		return fmt.Errorf("process %d is not an ssh client", pid)
	}

	s := ssh.New(info)
	format := sshFormat
	if format == "" {
		format = config.Current().ProcessInfo.RemoteTitleFormat
	}
	title := s.Format(format)

	w := cmd.OutOrStdout()
	if sshJSON {
		return printJSON(w, struct {
			PID    int                 `json:"pid"`
			Title  string              `json:"title"`
			Remote model.RemoteSession `json:"remote"`
		}{pid, title, s.Snapshot()})
	}
	output.RenderRemote(w, s.Snapshot(), title, colorFor(w))
	return nil
}
