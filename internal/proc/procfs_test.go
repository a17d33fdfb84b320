package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type procFixture struct {
	pid     int
	ppid    int
	comm    string
	uid     int
	tpgid   int
	cmdline []string
	environ []string
	cwd     string // no cwd link when empty
}

func writeProc(t *testing.T, root string, f procFixture) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(f.pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	status := fmt.Sprintf("Name:\t%s\nState:\tS (sleeping)\nPPid:\t%d\nUid:\t%d\t%d\t%d\t%d\nGid:\t0\t0\t0\t0\n",
		f.comm, f.ppid, f.uid, f.uid, f.uid, f.uid)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644))

	stat := fmt.Sprintf("%d (%s) S %d %d %d 34816 %d 4194304 120 0 0 0 1 0 0 0 20 0 1 0 4242 1000 10 18446744073709551615\n",
		f.pid, f.comm, f.ppid, f.pid, f.pid, f.tpgid)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644))

	cmdline := ""
	for _, a := range f.cmdline {
		cmdline += a + "\x00"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0o644))

	environ := ""
	for _, e := range f.environ {
		environ += e + "\x00"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "environ"), []byte(environ), 0o600))

	if f.cwd != "" {
		require.NoError(t, os.Symlink(f.cwd, filepath.Join(dir, "cwd")))
	}
}

func fixtureInfo(root string, pid int, readEnv bool) *Info {
	return newWithReader(pid, readEnv, procfsReader{root: root})
}

func TestProcfsUpdate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	uid := os.Getuid()
	writeProc(t, root, procFixture{
		pid:     100,
		ppid:    1,
		comm:    "bash",
		uid:     uid,
		tpgid:   120,
		cmdline: []string{"-bash", "--login"},
		environ: []string{"HOME=/root", "OPTS=a=b", "BROKEN"},
		cwd:     "/srv/app",
	})

	info := fixtureInfo(root, 100, true)
	info.Update()

	pid, ok := info.PID()
	assert.True(t, ok)
	assert.Equal(t, 100, pid)
	assert.True(t, info.IsValid())

	ppid, ok := info.ParentPID()
	assert.True(t, ok)
	assert.Equal(t, 1, ppid)

	fg, ok := info.ForegroundPID()
	assert.True(t, ok)
	assert.Equal(t, 120, fg)

	name, ok := info.Name()
	assert.True(t, ok)
	assert.Equal(t, "bash", name)

	gotUID, ok := info.UID()
	assert.True(t, ok)
	assert.Equal(t, uid, gotUID)

	dir, ok := info.CurrentDir()
	assert.True(t, ok)
	assert.Equal(t, "/srv/app", dir)

	args, ok := info.Arguments()
	assert.True(t, ok)
	assert.Equal(t, []string{"-bash", "--login"}, args)

	env, ok := info.Environment()
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"HOME": "/root", "OPTS": "a=b"}, env)

	assert.Equal(t, NoError, info.Error())

	if u, err := user.LookupId(strconv.Itoa(uid)); err == nil {
		assert.Equal(t, u.Username, info.UserName())
		assert.Equal(t, u.HomeDir, info.UserHomeDir())
	}
}

func TestProcfsUpdateIsIdempotent(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProc(t, root, procFixture{pid: 7, ppid: 1, comm: "sleep", uid: os.Getuid(), tpgid: 7, cmdline: []string{"sleep", "30"}, environ: []string{"A=1"}})

	info := fixtureInfo(root, 7, true)
	info.Update()
	info.Update()
	info.Update()

	args, _ := info.Arguments()
	assert.Equal(t, []string{"sleep", "30"}, args)
	env, _ := info.Environment()
	assert.Len(t, env, 1)
}

func TestProcfsEnvironmentDisabled(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProc(t, root, procFixture{pid: 8, ppid: 1, comm: "sh", uid: os.Getuid(), environ: []string{"SECRET=x"}})

	info := fixtureInfo(root, 8, false)
	info.Update()

	env, ok := info.Environment()
	assert.True(t, ok)
	assert.Empty(t, env)
}

func TestProcfsNonexistentPID(t *testing.T) {
	t.Parallel()
	info := fixtureInfo(t.TempDir(), 4242, true)
	info.Update()

	assert.False(t, info.IsValid())
	assert.Equal(t, FieldArguments|FieldEnvironment, info.Fields())
	assert.Equal(t, UnknownError, info.Error())

	args, ok := info.Arguments()
	assert.True(t, ok)
	assert.Empty(t, args)
	env, ok := info.Environment()
	assert.True(t, ok)
	assert.Empty(t, env)
}

func TestProcfsStatParsing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		comm      string
		tpgid     int
		wantFG    bool
		wantFGPID int
	}{
		{name: "plain", comm: "vim", tpgid: 300, wantFG: true, wantFGPID: 300},
		{name: "spaces and parens", comm: "tmux: server (1)", tpgid: 12, wantFG: true, wantFGPID: 12},
		{name: "no controlling terminal", comm: "sshd", tpgid: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			writeProc(t, root, procFixture{pid: 55, ppid: 2, comm: tt.comm, uid: os.Getuid(), tpgid: tt.tpgid})

			info := fixtureInfo(root, 55, false)
			info.Update()

			name, ok := info.Name()
			require.True(t, ok)
			assert.Equal(t, tt.comm, name)

			ppid, _ := info.ParentPID()
			assert.Equal(t, 2, ppid)

			fg, ok := info.ForegroundPID()
			assert.Equal(t, tt.wantFG, ok)
			if tt.wantFG {
				assert.Equal(t, tt.wantFGPID, fg)
			}
		})
	}
}

func TestParseStatErrors(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{
		"",
		"12 bash S 1",
		"12 (bash S 1 2 3 4 5",
		"12 (bash) S 1",
		"12 (bash) S x 1 1 0 1",
	} {
		_, err := parseStat(raw)
		assert.Error(t, err, "parseStat(%q)", raw)
	}
}

func TestParseStatusUID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "Name:\tx\nUid:\t1000\t1001\t1002\t1003\n", want: 1000, wantOK: true},
		{in: "Uid: 0 0 0 0", want: 0, wantOK: true},
		{in: "Name:\tx\n", wantOK: false},
		{in: "Uid:\n", wantOK: false},
		{in: "Uid:\tabc\n", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := parseStatusUID(strings.NewReader(tt.in))
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestProcfsMissingStat(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeProc(t, root, procFixture{pid: 9, ppid: 1, comm: "x", uid: os.Getuid()})
	require.NoError(t, os.Remove(filepath.Join(root, "9", "stat")))

	info := fixtureInfo(root, 9, false)
	info.Update()

	assert.False(t, info.IsValid())
	_, ok := info.UID()
	assert.True(t, ok, "uid comes from status and should survive a missing stat")
	_, ok = info.Name()
	assert.False(t, ok)
	assert.Equal(t, UnknownError, info.Error())
}

func TestProcfsPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file modes do not restrict root")
	}
	t.Parallel()
	root := t.TempDir()
	writeProc(t, root, procFixture{pid: 10, ppid: 1, comm: "x", uid: os.Getuid(), cwd: "/"})
	require.NoError(t, os.Chmod(filepath.Join(root, "10", "environ"), 0))

	info := fixtureInfo(root, 10, true)
	info.Update()

	assert.True(t, info.IsValid())
	assert.Equal(t, PermissionsError, info.Error())
}

func TestClassifyError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{err: nil, want: NoError},
		{err: fs.ErrPermission, want: PermissionsError},
		{err: &fs.PathError{Op: "open", Path: "/proc/1/environ", Err: syscall.EACCES}, want: PermissionsError},
		{err: fmt.Errorf("sysctl: %w", syscall.EPERM), want: PermissionsError},
		{err: &fs.PathError{Op: "open", Path: "/proc/1/stat", Err: syscall.ENOENT}, want: UnknownError},
		{err: errors.New("short read"), want: UnknownError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyError(tt.err), "%v", tt.err)
	}
}

func TestNullReader(t *testing.T) {
	t.Parallel()
	info := newWithReader(1, true, nullReader{})
	info.Update()

	assert.False(t, info.IsValid())
	assert.Equal(t, NoError, info.Error())
	args, ok := info.Arguments()
	assert.True(t, ok)
	assert.Empty(t, args)
}
