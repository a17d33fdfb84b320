package proc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// procfsReader reads a Linux style /proc tree rooted at root.
type procfsReader struct {
	root string
}

func (r procfsReader) path(pid int, name string) string {
	return filepath.Join(r.root, strconv.Itoa(pid), name)
}

func (r procfsReader) readProcInfo(p *Info, pid int) bool {
	// The owner comes from status rather than from stat(2) on the directory,
	// which reports the original uid of setuid and su'd processes.
	status, err := os.Open(r.path(pid, "status"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	uid, ok := parseStatusUID(status)
	status.Close()
	if ok {
		p.setUID(uid)
		p.readUserName()
	}

	raw, err := os.ReadFile(r.path(pid, "stat"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	st, err := parseStat(string(raw))
	if err != nil {
		p.setError(UnknownError)
		return false
	}

	// tpgid is -1 when the process has no controlling terminal
	if st.tpgid >= 0 {
		p.setForegroundPID(st.tpgid)
	}
	p.setName(st.comm)
	p.setParentPID(st.ppid)
	p.setPID(pid)
	return true
}

func (r procfsReader) readArguments(p *Info, pid int) bool {
	raw, err := os.ReadFile(r.path(pid, "cmdline"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	for _, arg := range splitNUL(raw) {
		if arg != "" {
			p.addArgument(arg)
		}
	}
	return true
}

func (r procfsReader) readCurrentDir(p *Info, pid int) bool {
	dir, err := os.Readlink(r.path(pid, "cwd"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	p.setCurrentDir(dir)
	return true
}

func (r procfsReader) readEnvironment(p *Info, pid int) bool {
	raw, err := os.ReadFile(r.path(pid, "environ"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	for _, entry := range splitNUL(raw) {
		if name, value, ok := strings.Cut(entry, "="); ok {
			p.addEnvironmentBinding(name, value)
		}
	}
	return true
}

type statFields struct {
	comm  string
	state string
	ppid  int
	pgrp  int
	tpgid int
}

// parseStat decodes /proc/<pid>/stat. The command name is everything between
// the first '(' and the last ')', so names containing spaces or parentheses
// survive.
func parseStat(raw string) (statFields, error) {
	open := strings.IndexByte(raw, '(')
	end := strings.LastIndexByte(raw, ')')
	if open < 0 || end < open {
		return statFields{}, fmt.Errorf("malformed stat record")
	}

	// fields after the comm start at field 3 (state)
	rest := strings.Fields(raw[end+1:])
	if len(rest) < 6 {
		return statFields{}, fmt.Errorf("short stat record: %d fields after comm", len(rest))
	}

	st := statFields{comm: raw[open+1 : end], state: rest[0]}
	var err error
	if st.ppid, err = strconv.Atoi(rest[1]); err != nil {
		return statFields{}, fmt.Errorf("parse ppid: %w", err)
	}
	if st.pgrp, err = strconv.Atoi(rest[2]); err != nil {
		return statFields{}, fmt.Errorf("parse pgrp: %w", err)
	}
	if st.tpgid, err = strconv.Atoi(rest[5]); err != nil {
		return statFields{}, fmt.Errorf("parse tpgid: %w", err)
	}
	return st, nil
}

// parseStatusUID returns the real uid from the "Uid:" line of a status file.
func parseStatusUID(r io.Reader) (int, bool) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "Uid:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		uid, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, false
		}
		return uid, true
	}
	return 0, false
}

// splitNUL splits a NUL separated blob, dropping the trailing terminator.
func splitNUL(raw []byte) []string {
	raw = bytes.TrimSuffix(raw, []byte{0})
	if len(raw) == 0 {
		return nil
	}
	parts := bytes.Split(raw, []byte{0})
	out := make([]string, len(parts))
	for i, b := range parts {
		out[i] = string(b)
	}
	return out
}
