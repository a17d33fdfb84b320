package proc

import (
	"errors"
	"io/fs"
)

// classifyError maps a read error onto the ErrorKind taxonomy. EACCES and
// EPERM both satisfy fs.ErrPermission.
func classifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, fs.ErrPermission):
		return PermissionsError
	default:
		return UnknownError
	}
}

func (p *Info) setFileError(err error) {
	if kind := classifyError(err); kind != NoError {
		p.setError(kind)
	}
}

// errUnsupported marks a read the current build cannot perform. It is a
// capability gap and never recorded as a failure.
var errUnsupported = errors.New("not supported on this build")
