package output

import (
	"io"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

// RenderShort prints the formatted title of the process on one line.
func RenderShort(w io.Writer, r model.Result, colorEnabled bool) {
	p := NewPrinter(w, colorEnabled)
	if r.Title == "" {
		p.Printf("%s%s%s\n", p.c(colorGreen), r.Process.Command(), p.c(colorReset))
		return
	}
	p.Printf("%s%s%s\n", p.c(colorGreen), SanitizeLine(r.Title), p.c(colorReset))
}

// printChain prints ancestry as a single arrow separated line, target last.
func printChain(p Printer, chain []model.Process) {
	for i, proc := range chain {
		if i > 0 {
			p.Printf("%s → %s", p.c(colorMagenta), p.c(colorReset))
		}
		nameColor := ansiString("")
		if i == len(chain)-1 {
			nameColor = colorGreen
		}
		p.Printf("%s%s%s (%spid %d%s)", p.c(nameColor), proc.Command(), p.c(colorReset), p.c(colorDim), proc.PID, p.c(colorReset))
	}
	p.Println()
}
