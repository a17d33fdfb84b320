package output

import (
	"io"
	"strings"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

// childLimit caps how many children are listed under the target.
const childLimit = 10

// PrintTree prints the ancestry chain as an indented tree, followed by the
// direct children of the last process.
func PrintTree(w io.Writer, chain []model.Process, children []model.ProcessSummary, colorEnabled bool) {
	p := NewPrinter(w, colorEnabled)

	for i, proc := range chain {
		indent := strings.Repeat("  ", i)
		if i > 0 {
			p.Printf("%s%s└─ %s", indent, p.c(colorMagenta), p.c(colorReset))
		}

		cmdColor := ansiString("")
		if i == len(chain)-1 {
			cmdColor = colorGreen
		}
		p.Printf("%s%s%s (%spid %d%s)", p.c(cmdColor), proc.Command(), p.c(colorReset), p.c(colorDim), proc.PID, p.c(colorReset))
		if proc.CurrentDir != nil {
			p.Printf(" %s%s%s", p.c(colorDim), *proc.CurrentDir, p.c(colorReset))
		}
		p.Println()
	}

	printChildren(p, strings.Repeat("  ", len(chain)), children)
}

func printChildren(p Printer, indent string, children []model.ProcessSummary) {
	count := len(children)
	for i, child := range children {
		if i >= childLimit {
			p.Printf("%s%s└─ %s... and %d more\n", indent, p.c(colorMagenta), p.c(colorReset), count-childLimit)
			return
		}

		connector := "├─ "
		if i == count-1 || (i == childLimit-1 && count <= childLimit) {
			connector = "└─ "
		}

		name := child.Command
		if name == "" {
			name = "unknown"
		}
		p.Printf("%s%s%s%s%s (%spid %d%s)\n", indent, p.c(colorMagenta), connector, p.c(colorReset), name, p.c(colorDim), child.PID, p.c(colorReset))
	}
}

// ChildrenOf filters a process listing down to the direct children of pid.
func ChildrenOf(pid int, all []model.ProcessSummary) []model.ProcessSummary {
	var out []model.ProcessSummary
	for _, s := range all {
		if s.PPID == pid && s.PID != pid {
			out = append(out, s)
		}
	}
	return out
}
