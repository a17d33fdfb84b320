package proc

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

type timestruc struct {
	Sec  int64
	Nsec int64
}

// psinfo is the leading part of the 64-bit psinfo_t record found in
// /proc/<pid>/psinfo on Solaris and illumos. Decoding stops after pr_psargs.
type psinfo struct {
	Flag   int32
	Nlwp   int32
	Pid    int32
	Ppid   int32
	Pgid   int32
	Sid    int32
	Uid    uint32
	Euid   uint32
	Gid    uint32
	Egid   uint32
	Addr   uint64
	Size   uint64
	Rssize uint64
	Pad1   uint64
	Ttydev uint64
	Pctcpu uint16
	Pctmem uint16
	_      uint32 // alignment of pr_start
	Start  timestruc
	Time   timestruc
	Ctime  timestruc
	Fname  [16]byte
	Psargs [80]byte
}

func decodePsinfo(r io.Reader) (psinfo, error) {
	var psi psinfo
	err := binary.Read(r, binary.LittleEndian, &psi)
	return psi, err
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// psinfoReader reads the binary proc records of Solaris and illumos.
type psinfoReader struct {
	root string
}

func (r psinfoReader) path(pid int, elem ...string) string {
	return filepath.Join(append([]string{r.root, strconv.Itoa(pid)}, elem...)...)
}

func (r psinfoReader) readProcInfo(p *Info, pid int) bool {
	f, err := os.Open(r.path(pid, "psinfo"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	defer f.Close()

	psi, err := decodePsinfo(f)
	if err != nil {
		p.setError(UnknownError)
		return false
	}

	p.setParentPID(int(psi.Ppid))
	p.setForegroundPID(int(psi.Pgid))
	p.setName(cString(psi.Fname[:]))
	p.setUID(int(psi.Uid))
	p.readUserName()
	p.setPID(pid)

	// pr_psargs is a single truncated string and is kept whole
	if args := cString(psi.Psargs[:]); args != "" {
		p.addArgument(args)
	}
	return true
}

// readArguments is covered by readProcInfo.
func (psinfoReader) readArguments(*Info, int) bool { return false }

func (r psinfoReader) readCurrentDir(p *Info, pid int) bool {
	dir, err := os.Readlink(r.path(pid, "path", "cwd"))
	if err != nil {
		p.setFileError(err)
		return false
	}
	p.setCurrentDir(dir)
	return true
}

func (psinfoReader) readEnvironment(*Info, int) bool { return false }
