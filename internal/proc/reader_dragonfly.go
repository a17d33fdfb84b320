//go:build dragonfly

package proc

import (
	"github.com/tklauser/ps"
	"golang.org/x/sys/unix"
)

// psReader reads the DragonFly process table through tklauser/ps, which
// decodes kern.proc.pid and kern.proc.args.
type psReader struct{}

func newPlatformReader() reader {
	return psReader{}
}

func (psReader) readProcInfo(p *Info, pid int) bool {
	proc, err := ps.FindProcess(pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	p.setName(proc.Command())
	p.setPID(proc.PID())
	p.setParentPID(proc.PPID())
	p.setUID(proc.UID())
	p.readUserName()
	return true
}

func (psReader) readArguments(p *Info, pid int) bool {
	proc, err := ps.FindProcess(pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	for _, arg := range proc.ExecutableArgs() {
		p.addArgument(arg)
	}
	return true
}

func (psReader) readCurrentDir(p *Info, pid int) bool {
	buf, err := unix.SysctlRaw("kern.proc.cwd", pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	dir := unix.ByteSliceToString(buf)
	if dir == "" {
		p.setError(UnknownError)
		return false
	}
	p.setCurrentDir(dir)
	return true
}

func (psReader) readEnvironment(*Info, int) bool { return false }
