package output

import (
	"fmt"
	"io"
)

type ansiString string

const (
	colorReset   ansiString = "\033[0m"
	colorRed     ansiString = "\033[31m"
	colorGreen   ansiString = "\033[32m"
	colorBlue    ansiString = "\033[34m"
	colorMagenta ansiString = "\033[35m"
	colorCyan    ansiString = "\033[36m"
	colorDim     ansiString = "\033[2m"
)

// Printer writes terminal-safe output to an io.Writer
// sanitizing any string-like arguments (string, []byte, error, fmt.Stringer)
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, colorEnabled bool) Printer {
	return Printer{w: w, color: colorEnabled}
}

// c returns code, or nothing when colour is off.
func (p Printer) c(code ansiString) ansiString {
	if !p.color {
		return ""
	}
	return code
}

func (p Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, sanitizePrintArgs(args)...)
}

func (p Printer) Print(args ...any) {
	fmt.Fprint(p.w, sanitizePrintArgs(args)...)
}

func (p Printer) Println(args ...any) {
	fmt.Fprintln(p.w, sanitizePrintArgs(args)...)
}

// Field prints an aligned "Label : value" line.
func (p Printer) Field(label string, color ansiString, value any) {
	p.Printf("%s%-12s%s: %v\n", p.c(color), label, p.c(colorReset), value)
}

func sanitizePrintArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case ansiString: // our own ansiString type is allowed to render as-is
			out[i] = string(v)
		case string:
			out[i] = SanitizeTerminal(v)
		case []byte:
			out[i] = SanitizeTerminal(string(v))
		case error:
			out[i] = SanitizeTerminal(v.Error())
		case fmt.Stringer:
			out[i] = SanitizeTerminal(v.String())
		default:
			out[i] = a
		}
	}
	return out
}
