//go:build linux

package proc

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxReaderSelf(t *testing.T) {
	t.Parallel()
	pid := os.Getpid()
	info := New(pid, true)
	info.Update()

	got, ok := info.PID()
	require.True(t, ok)
	assert.Equal(t, pid, got)

	name, ok := info.Name()
	assert.True(t, ok)
	assert.NotEmpty(t, name)

	ppid, ok := info.ParentPID()
	assert.True(t, ok)
	assert.Equal(t, os.Getppid(), ppid)

	wd, err := os.Getwd()
	require.NoError(t, err)
	dir, ok := info.CurrentDir()
	assert.True(t, ok)
	assert.Equal(t, wd, dir)

	args, _ := info.Arguments()
	assert.Equal(t, os.Args, args)

	env, _ := info.Environment()
	if path, set := os.LookupEnv("PATH"); set {
		assert.Equal(t, path, env["PATH"])
	}
}

func TestLinuxForegroundProcessGroup(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	cmd := exec.Command(sleep, "30")
	ptmx, err := pty.Start(cmd)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		_ = ptmx.Close()
	})

	child := cmd.Process.Pid
	info := New(child, false)

	// wait for the exec to replace the forked test binary
	require.Eventually(t, func() bool {
		info.Update()
		name, ok := info.Name()
		return ok && name == "sleep"
	}, 5*time.Second, 20*time.Millisecond)

	ppid, _ := info.ParentPID()
	assert.Equal(t, os.Getpid(), ppid)

	// pty.Start makes the child a session leader owning the terminal, so it
	// is also the terminal's foreground process group
	fg, ok := info.ForegroundPID()
	assert.True(t, ok)
	assert.Equal(t, child, fg)

	args, _ := info.Arguments()
	assert.Equal(t, []string{sleep, "30"}, args)
}
