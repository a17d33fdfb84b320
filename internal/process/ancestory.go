package process

import (
	"fmt"

	"github.com/pranshuparmar/pinfo/internal/proc"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// Inspector reads a single process into a snapshot.
type Inspector func(pid int) model.Process

// Live returns an Inspector backed by the platform reader.
func Live(readEnvironment bool) Inspector {
	return func(pid int) model.Process {
		info := proc.New(pid, readEnvironment)
		info.Update()
		return info.Snapshot()
	}
}

// BuildAncestry returns the chain of processes leading to pid, root first.
// The walk stops at pid 1, at a process without a known parent, at the
// first unreadable pid, or when a pid repeats.
func BuildAncestry(pid int, inspect Inspector) ([]model.Process, error) {
	var chain []model.Process
	seen := make(map[int]bool)

	current := pid

	for current > 0 {
		if seen[current] {
			break // loop protection
		}
		seen[current] = true

		p := inspect(current)
		if !p.Valid {
			break
		}

		chain = append([]model.Process{p}, chain...)

		if p.PPID == nil || *p.PPID == 0 || p.PID == 1 {
			break
		}
		current = *p.PPID
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no process ancestry found for pid %d", pid)
	}

	return chain, nil
}
