//go:build darwin && cgo && !internal_pinfo_cgo_disabled

package proc

/*
#cgo CFLAGS: -mmacosx-version-min=11.0
#cgo LDFLAGS: -mmacosx-version-min=11.0
#include <libproc.h>
#include <sys/param.h>
#include <sys/proc_info.h>
#include <errno.h>
#include <string.h>

static int pinfo_proc_cwd(int pid, char *buf, size_t buf_len) {
    struct proc_vnodepathinfo vpi;
    int rv = proc_pidinfo(pid, PROC_PIDVNODEPATHINFO, 0, &vpi, sizeof(vpi));
    if (rv <= 0) {
        return errno ? errno : ESRCH;
    }
    if (rv < (int)sizeof(vpi)) {
        return EIO;
    }
    strlcpy(buf, vpi.pvi_cdir.vip_path, buf_len);
    return 0;
}
*/
import "C"

import (
	"syscall"
	"unsafe"
)

func vnodeCurrentDir(pid int) (string, error) {
	buf := make([]byte, C.MAXPATHLEN)
	if rc := C.pinfo_proc_cwd(C.int(pid), (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf))); rc != 0 {
		return "", syscall.Errno(rc)
	}
	return cString(buf), nil
}
