//go:build darwin

package proc

import (
	"errors"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// darwinReader reads the kernel process table. The foreground surrogate is
// the first process the kernel reports on the controlling terminal.
type darwinReader struct{}

func newPlatformReader() reader {
	return darwinReader{}
}

// noDev is the e_tdev of a process without a controlling terminal.
const noDev = -1

func (darwinReader) readProcInfo(p *Info, pid int) bool {
	kp, err := unix.SysctlKinfoProc("kern.proc.pid", pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	// a missing pid yields a zeroed record rather than an error
	if int(kp.Proc.P_pid) != pid {
		p.setError(UnknownError)
		return false
	}
	p.setPID(pid)
	p.setParentPID(int(kp.Eproc.Ppid))
	p.setUID(int(kp.Eproc.Ucred.Uid))
	p.readUserName()

	if kp.Eproc.Tdev == noDev {
		p.setName(unix.ByteSliceToString(kp.Proc.P_comm[:]))
		return true
	}

	rdev, err := ttyRdev(kp.Eproc.Tdev)
	if err != nil {
		p.setFileError(err)
		return false
	}
	procs, err := unix.SysctlKinfoProcSlice("kern.proc.tty", int(rdev))
	if err != nil {
		p.setFileError(err)
		return false
	}
	if len(procs) == 0 {
		p.setError(UnknownError)
		return false
	}
	first := procs[0].Proc
	p.setForegroundPID(int(first.P_pid))
	p.setName(unix.ByteSliceToString(first.P_comm[:]))
	return true
}

var errNoTTY = errors.New("no terminal device matches")

// ttyRdev finds the terminal node in /dev for tdev and returns the raw
// device id reported by stat.
func ttyRdev(tdev int32) (int32, error) {
	nodes, err := filepath.Glob("/dev/tty*")
	if err != nil {
		return 0, err
	}
	for _, node := range nodes {
		var st unix.Stat_t
		if err := unix.Stat(node, &st); err != nil {
			continue
		}
		if st.Mode&unix.S_IFMT == unix.S_IFCHR && st.Rdev == tdev {
			return st.Rdev, nil
		}
	}
	return 0, errNoTTY
}

func (darwinReader) readArguments(*Info, int) bool { return false }

func (darwinReader) readCurrentDir(p *Info, pid int) bool {
	dir, err := vnodeCurrentDir(pid)
	if errors.Is(err, errUnsupported) {
		return false
	}
	if err != nil {
		p.setFileError(err)
		return false
	}
	p.setCurrentDir(dir)
	return true
}

func (darwinReader) readEnvironment(*Info, int) bool { return false }
