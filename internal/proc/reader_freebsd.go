//go:build freebsd

package proc

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/unix"
)

// kinfoProcHead is the leading part of struct kinfo_proc up to ki_comm.
type kinfoProcHead struct {
	Structsize     int32
	Layout         int32
	Args           uintptr
	Paddr          uintptr
	Addr           uintptr
	Tracep         uintptr
	Textvp         uintptr
	Fd             uintptr
	Vmspace        uintptr
	Wchan          uintptr
	Pid            int32
	Ppid           int32
	Pgid           int32
	Tpgid          int32
	Sid            int32
	Tsid           int32
	Jobc           int16
	Spare_short1   int16
	Tdev_freebsd11 uint32
	Siglist        unix.Sigset_t
	Sigmask        unix.Sigset_t
	Sigignore      unix.Sigset_t
	Sigcatch       unix.Sigset_t
	Uid            uint32
	Ruid           uint32
	Svuid          uint32
	Rgid           uint32
	Svgid          uint32
	Ngroups        int16
	Spare_short2   int16
	Groups         [16]uint32
	Size           uint64
	Rssize         int64
	Swrss          int64
	Tsize          int64
	Dsize          int64
	Ssize          int64
	Xstat          uint16
	Acflag         uint16
	Pctcpu         uint32
	Estcpu         uint32
	Slptime        uint32
	Swtime         uint32
	Cow            uint32
	Runtime        uint64
	Start          unix.Timeval
	Childtime      unix.Timeval
	Flag           int64
	Kiflag         int64
	Traceflag      int32
	Stat           int8
	Nice           int8
	Lock           int8
	Rqindex        int8
	Oncpu_old      uint8
	Lastcpu_old    uint8
	Tdname         [17]byte
	Wmesg          [9]byte
	Login          [18]byte
	Lockname       [9]byte
	Comm           [20]byte
}

const (
	sizeofKinfoProcHead = int(unsafe.Sizeof(kinfoProcHead{}))

	// struct kinfo_file is KINFO_FILE_SIZE bytes with kf_path as its last
	// PATH_MAX bytes; kern.proc.filedesc packs records to kf_structsize.
	kinfoFileSize    = 1392
	kinfoFilePathOff = kinfoFileSize - unix.PathMax
	kinfoFileFdOff   = 8
	kfFdTypeCwd      = -1
)

type sysctlReader struct{}

func newPlatformReader() reader {
	return sysctlReader{}
}

func (sysctlReader) readProcInfo(p *Info, pid int) bool {
	buf, err := unix.SysctlRaw("kern.proc.pid", pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	if len(buf) < sizeofKinfoProcHead {
		p.setError(UnknownError)
		return false
	}
	kp := (*kinfoProcHead)(unsafe.Pointer(&buf[0]))

	p.setName(unix.ByteSliceToString(kp.Comm[:]))
	p.setPID(int(kp.Pid))
	p.setParentPID(int(kp.Ppid))
	p.setForegroundPID(int(kp.Pgid))
	p.setUID(int(kp.Uid))
	p.readUserName()
	return true
}

func (sysctlReader) readArguments(p *Info, pid int) bool {
	buf, err := unix.SysctlRaw("kern.proc.args", pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	for _, arg := range splitNUL(buf) {
		p.addArgument(arg)
	}
	return true
}

func (sysctlReader) readCurrentDir(p *Info, pid int) bool {
	buf, err := unix.SysctlRaw("kern.proc.filedesc", pid)
	if err != nil {
		p.setFileError(err)
		return false
	}
	for len(buf) >= 4 {
		size := int(binary.NativeEndian.Uint32(buf))
		if size <= 0 || size > len(buf) {
			break
		}
		rec := buf[:size]
		buf = buf[size:]
		if size <= kinfoFilePathOff {
			continue
		}
		if int32(binary.NativeEndian.Uint32(rec[kinfoFileFdOff:])) == kfFdTypeCwd {
			p.setCurrentDir(unix.ByteSliceToString(rec[kinfoFilePathOff:]))
			return true
		}
	}
	p.setError(UnknownError)
	return false
}

func (sysctlReader) readEnvironment(*Info, int) bool { return false }
