package output

import (
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

// RenderList prints one row per process. Cells are sanitized individually
// so process supplied text cannot break the column layout.
func RenderList(w io.Writer, procs []model.Process) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := io.WriteString(tw, "PID\tPPID\tUSER\tNAME\tDIRECTORY\tCOMMAND\n"); err != nil {
		return err
	}
	for _, proc := range procs {
		cells := []string{
			strconv.Itoa(proc.PID),
			optionalInt(proc.PPID),
			proc.UserLabel(),
			proc.Command(),
			proc.WorkingDir(),
			commandLine(proc),
		}
		for i, cell := range cells {
			sep := "\t"
			if i == len(cells)-1 {
				sep = "\n"
			}
			if _, err := io.WriteString(tw, SanitizeLine(cell)+sep); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}
