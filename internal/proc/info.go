// Package proc inspects a single process through whatever interface the
// operating system exposes and records which attributes could be read.
package proc

import (
	"maps"
	"slices"

	"github.com/pranshuparmar/pinfo/internal/logging"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// Field is a bit in the validity mask of an Info.
type Field uint16

const (
	FieldPID Field = 1 << iota
	FieldParentPID
	FieldForegroundPID
	FieldName
	FieldCurrentDir
	FieldUID
	FieldArguments
	FieldEnvironment
)

// ErrorKind classifies the most recent failed read.
type ErrorKind int

const (
	NoError ErrorKind = iota
	UnknownError
	PermissionsError
)

func (e ErrorKind) String() string {
	switch e {
	case NoError:
		return ""
	case PermissionsError:
		return "permission denied"
	default:
		return "unknown"
	}
}

// Info holds what is known about one process. It is not safe for
// concurrent use; Update mutates it in place.
type Info struct {
	fields    Field
	lastError ErrorKind
	readEnv   bool
	reader    reader

	pid           int
	parentPID     int
	foregroundPID int
	uid           int

	name        string
	currentDir  string
	userName    string
	userHomeDir string

	arguments   []string
	environment map[string]string
}

// New returns an Info bound to pid using the reader for the build target.
// Nothing is read until Update is called.
func New(pid int, readEnvironment bool) *Info {
	return newWithReader(pid, readEnvironment, newPlatformReader())
}

func newWithReader(pid int, readEnvironment bool, r reader) *Info {
	p := &Info{readEnv: readEnvironment, reader: r}
	p.reset(pid)
	return p
}

// reset clears the record and re-points it at pid.
func (p *Info) reset(pid int) {
	p.fields = FieldArguments | FieldEnvironment
	p.lastError = NoError
	p.pid = pid
	p.parentPID, p.foregroundPID, p.uid = 0, 0, 0
	p.name, p.currentDir, p.userName, p.userHomeDir = "", "", "", ""
	p.arguments = nil
	p.environment = map[string]string{}
}

// Update re-reads everything the platform can provide for the bound pid.
// Each read is attempted on its own; check the individual fields afterwards.
func (p *Info) Update() {
	p.arguments = nil
	p.environment = map[string]string{}

	ok := p.reader.readProcInfo(p, p.pid)
	ok = p.reader.readArguments(p, p.pid) || ok
	ok = p.reader.readCurrentDir(p, p.pid) || ok
	if p.readEnv {
		ok = p.reader.readEnvironment(p, p.pid) || ok
	}
	if !ok {
		logging.New("proc").Debug().Int("pid", p.pid).Str("error", p.lastError.String()).Msg("no process information could be read")
	}
}

// IsValid reports whether the pid itself was confirmed by a read.
func (p *Info) IsValid() bool { return p.has(FieldPID) }

func (p *Info) has(f Field) bool { return p.fields&f != 0 }

// Fields returns the validity mask.
func (p *Info) Fields() Field { return p.fields }

// Error returns the kind of the most recent failed read.
func (p *Info) Error() ErrorKind { return p.lastError }

// PID returns the bound pid. ok is false until a read confirms it.
func (p *Info) PID() (int, bool) { return p.pid, p.has(FieldPID) }

func (p *Info) ParentPID() (int, bool) { return p.parentPID, p.has(FieldParentPID) }

// ForegroundPID returns the foreground process surrogate: the terminal's
// foreground process group on Linux, the process group on the BSDs and
// Solaris, and the first process on the controlling tty on macOS.
func (p *Info) ForegroundPID() (int, bool) { return p.foregroundPID, p.has(FieldForegroundPID) }

func (p *Info) UID() (int, bool) { return p.uid, p.has(FieldUID) }

func (p *Info) Name() (string, bool) { return p.name, p.has(FieldName) }

func (p *Info) CurrentDir() (string, bool) { return p.currentDir, p.has(FieldCurrentDir) }

func (p *Info) UserName() string { return p.userName }

func (p *Info) UserHomeDir() string { return p.userHomeDir }

// Arguments returns a copy of the argument vector. An empty result means the
// process has no arguments or they could not be read.
func (p *Info) Arguments() ([]string, bool) {
	return slices.Clone(p.arguments), p.has(FieldArguments)
}

func (p *Info) Environment() (map[string]string, bool) {
	return maps.Clone(p.environment), p.has(FieldEnvironment)
}

func (p *Info) setPID(pid int) {
	p.pid = pid
	p.fields |= FieldPID
}

func (p *Info) setParentPID(pid int) {
	p.parentPID = pid
	p.fields |= FieldParentPID
}

func (p *Info) setForegroundPID(pid int) {
	p.foregroundPID = pid
	p.fields |= FieldForegroundPID
}

func (p *Info) setUID(uid int) {
	p.uid = uid
	p.fields |= FieldUID
}

func (p *Info) setName(name string) {
	p.name = name
	p.fields |= FieldName
}

func (p *Info) setCurrentDir(dir string) {
	p.currentDir = dir
	p.fields |= FieldCurrentDir
}

func (p *Info) addArgument(arg string) {
	p.arguments = append(p.arguments, arg)
}

func (p *Info) addEnvironmentBinding(name, value string) {
	p.environment[name] = value
}

func (p *Info) setError(kind ErrorKind) {
	p.lastError = kind
}

// Snapshot copies the record into a plain model value.
func (p *Info) Snapshot() model.Process {
	out := model.Process{
		PID:     p.pid,
		Valid:   p.IsValid(),
		User:    p.userName,
		HomeDir: p.userHomeDir,
		Args:    slices.Clone(p.arguments),
		Error:   p.lastError.String(),
	}
	if out.Args == nil {
		out.Args = []string{}
	}
	if len(p.environment) > 0 {
		out.Env = maps.Clone(p.environment)
	}
	if v, ok := p.ParentPID(); ok {
		out.PPID = &v
	}
	if v, ok := p.ForegroundPID(); ok {
		out.ForegroundPID = &v
	}
	if v, ok := p.UID(); ok {
		out.UID = &v
	}
	if v, ok := p.Name(); ok {
		out.Name = &v
	}
	if v, ok := p.CurrentDir(); ok {
		out.CurrentDir = &v
	}
	return out
}
