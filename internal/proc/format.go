package proc

import (
	"os"
	"strings"
)

// maxAncestorDepth bounds the parent walk used to find a working directory.
const maxAncestorDepth = 32

// Format substitutes process tokens in template:
//
//	%u  user name
//	%n  process name, left in place when the name is unknown
//	%D  working directory with the home directory shown as ~
//	%d  working directory passed through ShortenDir
//
// Any other token is left untouched.
func (p *Info) Format(template string) string {
	pairs := []string{"%u", p.UserName()}
	if name, ok := p.Name(); ok {
		pairs = append(pairs, "%n", name)
	}
	if strings.Contains(template, "%d") || strings.Contains(template, "%D") {
		dir := p.validCurrentDir()
		pairs = append(pairs,
			"%D", tildeHome(dir, p.UserHomeDir()),
			"%d", ShortenDir(dir, CommonDirNames()),
		)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatCommand joins a process name and its argument vector with spaces.
// No shell quoting is applied.
func FormatCommand(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return strings.Join(args, " ")
}

func tildeHome(dir, home string) string {
	home = strings.TrimRight(home, string(os.PathSeparator))
	if home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+string(os.PathSeparator)) {
		return "~" + dir[len(home):]
	}
	return dir
}

// validCurrentDir returns the working directory of the process or, when it
// cannot be read, of the nearest ancestor whose directory can.
func (p *Info) validCurrentDir() string {
	if dir, ok := p.CurrentDir(); ok {
		return dir
	}
	ppid, ok := p.ParentPID()
	if !ok {
		return ""
	}

	ancestor := newWithReader(ppid, false, p.reader)
	seen := map[int]struct{}{p.pid: {}}
	for depth := 0; ppid != 0 && depth < maxAncestorDepth; depth++ {
		if _, dup := seen[ppid]; dup {
			break
		}
		seen[ppid] = struct{}{}

		ancestor.reset(ppid)
		ancestor.Update()
		if dir, ok := ancestor.CurrentDir(); ok {
			return dir
		}
		if ppid, ok = ancestor.ParentPID(); !ok {
			break
		}
	}
	return ""
}
