package output

import (
	"io"
	"strconv"

	"github.com/pranshuparmar/pinfo/internal/proc"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// RenderStandard prints the full report for one process.
func RenderStandard(w io.Writer, r model.Result, colorEnabled bool) {
	p := NewPrinter(w, colorEnabled)
	snap := r.Process

	if r.Title != "" {
		p.Field("Title", colorGreen, SanitizeLine(r.Title))
	}
	p.Field("Process", colorGreen, processLabel(snap))
	p.Field("Parent", colorBlue, optionalInt(snap.PPID))
	p.Field("Foreground", colorBlue, optionalInt(snap.ForegroundPID))
	p.Field("User", colorBlue, userLabel(snap))
	if snap.HomeDir != "" {
		p.Field("Home", colorBlue, snap.HomeDir)
	}
	p.Field("Directory", colorBlue, snap.WorkingDir())
	p.Field("Command", colorBlue, SanitizeLine(commandLine(snap)))

	if len(r.Ancestry) > 1 {
		p.Printf("%s%-12s%s: ", p.c(colorMagenta), "Ancestry", p.c(colorReset))
		printChain(p, r.Ancestry)
	}
	if r.Remote != nil {
		p.Println()
		renderRemote(p, *r.Remote, "")
	}
	if snap.Error != "" {
		p.Printf("\n%sWarning%s: some information could not be read (%s)\n", p.c(colorRed), p.c(colorReset), snap.Error)
	}
}

func processLabel(snap model.Process) string {
	return snap.Command() + " (pid " + strconv.Itoa(snap.PID) + ")"
}

func userLabel(snap model.Process) string {
	if snap.UID != nil && snap.User != "" {
		return snap.User + " (uid " + strconv.Itoa(*snap.UID) + ")"
	}
	return snap.UserLabel()
}

func optionalInt(v *int) string {
	if v == nil {
		return "unknown"
	}
	return strconv.Itoa(*v)
}

func commandLine(snap model.Process) string {
	return proc.FormatCommand(snap.Command(), snap.Args)
}
