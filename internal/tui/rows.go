package tui

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/pranshuparmar/pinfo/internal/output"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// rowFilter narrows the process tree. A "field:" prefix (pid, user, cmd)
// restricts matching to one column.
type rowFilter struct {
	currentUser string
	showAll     bool
	prefix      string
	value       string
}

func parseFilter(raw, currentUser string, showAll bool) rowFilter {
	f := rowFilter{currentUser: currentUser, showAll: showAll}
	raw = strings.ToLower(raw)
	if prefix, value, ok := strings.Cut(raw, ":"); ok {
		f.prefix, f.value = prefix, value
	} else {
		f.value = raw
	}
	return f
}

func (f rowFilter) match(row table.Row) bool {
	if f.value == "" {
		return true
	}
	switch f.prefix {
	case "pid":
		return strings.Contains(row[0], f.value)
	case "user":
		return strings.Contains(strings.ToLower(row[1]), f.value)
	case "cmd":
		return strings.Contains(strings.ToLower(row[2]), f.value)
	case "":
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), f.value) {
				return true
			}
		}
	}
	return false
}

// processRows lays the process list out as an indented tree. Outside of
// show-all mode, processes of other users are hidden unless one of their
// descendants belongs to the current user, and kernel threads are hidden.
func processRows(procs []model.ProcessSummary, f rowFilter) []table.Row {
	children := make(map[int][]int)
	byPID := make(map[int]model.ProcessSummary, len(procs))
	for _, p := range procs {
		byPID[p.PID] = p
		if p.PPID != p.PID {
			children[p.PPID] = append(children[p.PPID], p.PID)
		}
	}

	var ownsDescendant func(int, map[int]bool) bool
	ownsDescendant = func(pid int, seen map[int]bool) bool {
		for _, kid := range children[pid] {
			if seen[kid] {
				continue
			}
			seen[kid] = true
			if byPID[kid].User == f.currentUser || ownsDescendant(kid, seen) {
				return true
			}
		}
		return false
	}

	hidden := func(p model.ProcessSummary) bool {
		if f.showAll {
			return false
		}
		if f.currentUser != "" && p.User != f.currentUser && !ownsDescendant(p.PID, map[int]bool{p.PID: true}) {
			return true
		}
		return isSystemProcess(p)
	}

	var rows []table.Row
	visited := make(map[int]bool)
	var walk func(pid int, prefix, branch string)
	walk = func(pid int, prefix, branch string) {
		p, ok := byPID[pid]
		if !ok || visited[pid] {
			return
		}
		visited[pid] = true

		// a hidden process still shows its children at its own depth
		if !hidden(p) {
			row := table.Row{
				strconv.Itoa(p.PID),
				output.SanitizeLine(p.User),
				prefix + branch + output.SanitizeLine(p.Command),
			}
			if f.match(row) {
				rows = append(rows, row)
			}
		}

		childPrefix := prefix
		switch branch {
		case "├─ ":
			childPrefix += "│  "
		case "└─ ":
			childPrefix += "   "
		}
		kids := slices.Clone(children[pid])
		slices.Sort(kids)
		for i, kid := range kids {
			next := "├─ "
			if i == len(kids)-1 {
				next = "└─ "
			}
			walk(kid, childPrefix, next)
		}
	}

	var roots []int
	for _, p := range procs {
		if _, hasParent := byPID[p.PPID]; !hasParent || p.PPID == p.PID {
			roots = append(roots, p.PID)
		}
	}
	slices.Sort(roots)
	for _, root := range roots {
		walk(root, "", "")
	}
	return rows
}

// isSystemProcess reports daemons and kernel threads hidden by default.
// Kernel threads have no argument vector.
func isSystemProcess(p model.ProcessSummary) bool {
	if len(p.Args) == 0 && p.PID > 1 {
		return true
	}
	exe := p.Command
	if len(p.Args) > 0 {
		exe = p.Args[0]
	}
	for _, dir := range []string{"/System/", "/usr/libexec/", "/usr/sbin/", "/sbin/", "/lib/systemd/", "/usr/lib/systemd/"} {
		if strings.HasPrefix(exe, dir) {
			return true
		}
	}
	return false
}

// sortRows orders rows by column col; the pid column sorts numerically.
func sortRows(rows []table.Row, col int, asc bool) {
	slices.SortStableFunc(rows, func(a, b table.Row) int {
		var c int
		if col == 0 {
			x, _ := strconv.Atoi(a[0])
			y, _ := strconv.Atoi(b[0])
			c = x - y
		} else {
			c = strings.Compare(strings.TrimLeft(a[col], " │├└─"), strings.TrimLeft(b[col], " │├└─"))
		}
		if !asc {
			c = -c
		}
		return c
	})
}
