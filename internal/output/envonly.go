package output

import (
	"io"
	"maps"
	"slices"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

// RenderEnvOnly prints only the command and environment variables for a process
func RenderEnvOnly(w io.Writer, proc model.Process, colorEnabled bool) {
	p := NewPrinter(w, colorEnabled)

	p.Printf("%sCommand%s     : %s\n", p.c(colorGreen), p.c(colorReset), SanitizeLine(commandLine(proc)))
	if len(proc.Env) == 0 {
		p.Printf("%sNo environment variables found.%s\n", p.c(colorRed), p.c(colorReset))
		return
	}

	p.Printf("%sEnvironment%s :\n", p.c(colorBlue), p.c(colorReset))
	for _, name := range slices.Sorted(maps.Keys(proc.Env)) {
		p.Printf("  %s=%s\n", SanitizeLine(name), SanitizeLine(proc.Env[name]))
	}
}
