// Package target turns a user supplied pid or process name into pids.
package target

import (
	"fmt"
	"os"
	"os/user"
	"slices"
	"strconv"
	"strings"

	"github.com/tklauser/ps"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

// Resolve returns the pids a target refers to, sorted ascending.
func Resolve(t model.Target) ([]int, error) {
	switch t.Type {
	case model.TargetPID:
		pid, err := ResolvePID(t.Value)
		if err != nil {
			return nil, err
		}
		return []int{pid}, nil
	case model.TargetName:
		return ResolveName(t.Value)
	default:
		return nil, fmt.Errorf("unknown target type %q", t.Type)
	}
}

// ResolvePID validates a pid argument and checks that the process exists.
func ResolvePID(value string) (int, error) {
	pid, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid %q", value)
	}
	if _, err := ps.FindProcess(pid); err != nil {
		return 0, fmt.Errorf("no running process with pid %d: %w", pid, err)
	}
	return pid, nil
}

// ResolveName matches name case-insensitively against process names and
// command lines, ignoring this process and its parent.
func ResolveName(name string) ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	pids := matchName(procs, name, os.Getpid(), os.Getppid())
	if len(pids) == 0 {
		return nil, fmt.Errorf("no running process named %q", name)
	}
	return pids, nil
}

func matchName(procs []ps.Process, name string, self, parent int) []int {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	var pids []int
	for _, p := range procs {
		pid := p.PID()
		// a number given as a name would otherwise match its own pid
		if pid == self || pid == parent || needle == strconv.Itoa(pid) {
			continue
		}
		if strings.Contains(strings.ToLower(p.Command()), needle) ||
			strings.Contains(strings.ToLower(strings.Join(p.ExecutableArgs(), " ")), needle) {
			pids = append(pids, pid)
		}
	}
	slices.Sort(pids)
	return pids
}

// List returns a summary row for every running process, sorted by pid.
func List() ([]model.ProcessSummary, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	users := map[int]string{}
	out := make([]model.ProcessSummary, 0, len(procs))
	for _, p := range procs {
		out = append(out, model.ProcessSummary{
			PID:     p.PID(),
			PPID:    p.PPID(),
			User:    lookupUser(users, p.UID()),
			Command: p.Command(),
			Args:    p.ExecutableArgs(),
		})
	}
	slices.SortFunc(out, func(a, b model.ProcessSummary) int { return a.PID - b.PID })
	return out, nil
}

func lookupUser(cache map[int]string, uid int) string {
	if name, ok := cache[uid]; ok {
		return name
	}
	name := strconv.Itoa(uid)
	if u, err := user.LookupId(name); err == nil {
		name = u.Username
	}
	cache[uid] = name
	return name
}
