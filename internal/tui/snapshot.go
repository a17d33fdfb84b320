package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// saveSnapshot writes the current view to a markdown file in the working
// directory and reports the outcome in the status line.
func (m *tuiModel) saveSnapshot(now time.Time) {
	filename := fmt.Sprintf("pinfo_snapshot_%s.md", now.Format("20060102_150405"))

	var content strings.Builder
	content.WriteString("# pinfo snapshot - " + now.Format(time.RFC1123) + "\n\n")

	if m.state == stateWatch && m.details.pid != 0 {
		fmt.Fprintf(&content, "## Process %d\n", m.details.pid)
		content.WriteString("```\n" + renderDetails(m.details) + "\n```\n")
	} else {
		content.WriteString("## Processes\n\n")
		cols := m.table.Columns()
		for _, col := range cols {
			content.WriteString("| " + col.Title + " ")
		}
		content.WriteString("|\n")
		for range cols {
			content.WriteString("| --- ")
		}
		content.WriteString("|\n")
		for _, row := range m.table.Rows() {
			for _, cell := range row {
				content.WriteString("| " + cell + " ")
			}
			content.WriteString("|\n")
		}
	}

	if err := os.WriteFile(filename, []byte(content.String()), 0o644); err != nil {
		m.setMessage("Error saving snapshot: "+err.Error(), now)
		return
	}
	m.setMessage("Snapshot saved to "+filename, now)
}
