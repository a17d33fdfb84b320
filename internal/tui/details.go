package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/pinfo/internal/output"
	"github.com/pranshuparmar/pinfo/internal/proc"
	"github.com/pranshuparmar/pinfo/internal/process"
	"github.com/pranshuparmar/pinfo/internal/ssh"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// details is everything the watch pane shows for one pid.
type details struct {
	pid         int
	snap        model.Process
	title       string
	remote      *model.RemoteSession
	remoteTitle string
	ancestry    []model.Process
	err         error
}

// inspect reads pid with a fresh Info. It runs off the UI goroutine.
func inspect(pid int, opts Options) tea.Cmd {
	return func() tea.Msg {
		info := proc.New(pid, opts.ReadEnvironment)
		info.Update()

		d := details{pid: pid}
		if !info.IsValid() {
			d.err = fmt.Errorf("process %d could not be read (%s)", pid, info.Error())
			return d
		}
		d.snap = info.Snapshot()
		d.title = info.Format(opts.TitleFormat)
		if name, ok := info.Name(); ok && name == "ssh" {
			s := ssh.New(info)
			remote := s.Snapshot()
			d.remote = &remote
			d.remoteTitle = s.Format(opts.RemoteTitleFormat)
		}
		d.ancestry, _ = process.BuildAncestry(pid, process.Live(false))
		return d
	}
}

func renderDetails(d details) string {
	if d.err != nil {
		return "Error: " + d.err.Error()
	}

	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%-12s %s\n", label, output.SanitizeLine(value))
	}

	field("Title", d.title)
	field("Process", fmt.Sprintf("%s (pid %d)", d.snap.Command(), d.snap.PID))
	if d.snap.PPID != nil {
		field("Parent", fmt.Sprint(*d.snap.PPID))
	}
	if d.snap.ForegroundPID != nil {
		field("Foreground", fmt.Sprint(*d.snap.ForegroundPID))
	}
	field("User", d.snap.UserLabel())
	field("Directory", d.snap.WorkingDir())
	field("Command", proc.FormatCommand(d.snap.Command(), d.snap.Args))
	if len(d.snap.Env) > 0 {
		field("Environment", fmt.Sprintf("%d variables", len(d.snap.Env)))
	}
	if d.remote != nil {
		field("Remote", d.remoteTitle)
	}
	if d.snap.Error != "" {
		field("Warning", d.snap.Error)
	}

	for i, p := range d.ancestry {
		indent := strings.Repeat("  ", i)
		if i > 0 {
			indent += "└─ "
		}
		fmt.Fprintf(&b, "\n%s%s (pid %d)", indent, output.SanitizeLine(p.Command()), p.PID)
	}
	return strings.TrimRight(b.String(), "\n")
}
