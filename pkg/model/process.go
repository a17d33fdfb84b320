package model

import "strconv"

// Process is a point-in-time copy of everything learned about a process.
// Optional fields are nil when the platform could not provide them.
type Process struct {
	PID           int     `json:"pid"`
	Valid         bool    `json:"valid"`
	PPID          *int    `json:"ppid,omitempty"`
	ForegroundPID *int    `json:"foreground_pid,omitempty"`
	UID           *int    `json:"uid,omitempty"`
	Name          *string `json:"name,omitempty"`
	CurrentDir    *string `json:"cwd,omitempty"`

	// Best effort, empty when unknown
	User    string `json:"user,omitempty"`
	HomeDir string `json:"home_dir,omitempty"`

	// Always known; empty means the process has none or they were not read
	Args []string          `json:"args"`
	Env  map[string]string `json:"env,omitempty"`

	// Most recent read failure ("", "unknown", "permission denied")
	Error string `json:"error,omitempty"`
}

// Command returns the process name or "unknown".
func (p Process) Command() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return "unknown"
}

// WorkingDir returns the current directory or "unknown".
func (p Process) WorkingDir() string {
	if p.CurrentDir != nil {
		return *p.CurrentDir
	}
	return "unknown"
}

// ParentPID returns the parent pid or 0.
func (p Process) ParentPID() int {
	if p.PPID != nil {
		return *p.PPID
	}
	return 0
}

// UserLabel returns the user name, falling back to the numeric uid.
func (p Process) UserLabel() string {
	if p.User != "" {
		return p.User
	}
	if p.UID != nil {
		return strconv.Itoa(*p.UID)
	}
	return "unknown"
}

// ProcessSummary holds basic information about a process for listing
type ProcessSummary struct {
	PID     int
	PPID    int
	User    string
	Command string
	Args    []string
}
