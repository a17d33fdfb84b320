package output

import (
	"io"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

// RenderRemote prints the login target decoded from an ssh client.
func RenderRemote(w io.Writer, s model.RemoteSession, title string, colorEnabled bool) {
	renderRemote(NewPrinter(w, colorEnabled), s, title)
}

func renderRemote(p Printer, s model.RemoteSession, title string) {
	if s == (model.RemoteSession{}) {
		p.Printf("%sNot an ssh client, or no login target found.%s\n", p.c(colorRed), p.c(colorReset))
		return
	}
	if title != "" {
		p.Field("Title", colorGreen, SanitizeLine(title))
	}
	p.Field("Remote", colorCyan, SanitizeLine(s.Target()))
	if s.Port != "" {
		p.Field("Port", colorCyan, SanitizeLine(s.Port))
	}
	if s.Command != "" {
		p.Field("Remote cmd", colorCyan, SanitizeLine(s.Command))
	}
}
