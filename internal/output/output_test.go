package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/pinfo/pkg/model"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func sampleResult() model.Result {
	ssh := model.Process{
		PID:        4242,
		Valid:      true,
		PPID:       intPtr(4100),
		UID:        intPtr(1000),
		Name:       strPtr("ssh"),
		CurrentDir: strPtr("/home/alice/src/pinfo"),
		User:       "alice",
		HomeDir:    "/home/alice",
		Args:       []string{"ssh", "-p", "2222", "alice@example.com", "ls"},
		Env:        map[string]string{"TERM": "xterm", "EVIL": "\x1b]0;pwned\x07"},
	}
	return model.Result{
		Target:  model.Target{Type: model.TargetPID, Value: "4242"},
		Process: ssh,
		Ancestry: []model.Process{
			{PID: 1, Valid: true, Name: strPtr("init")},
			{PID: 4100, Valid: true, Name: strPtr("zsh")},
			ssh,
		},
		Title:  "ssh: ~/src/pinfo",
		Remote: &model.RemoteSession{User: "alice", Host: "example.com", Port: "2222", Command: "ls"},
	}
}

func TestRenderStandard(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	RenderStandard(&buf, sampleResult(), false)
	out := buf.String()

	for _, want := range []string{
		"Title       : ssh: ~/src/pinfo",
		"Process     : ssh (pid 4242)",
		"Parent      : 4100",
		"Foreground  : unknown",
		"User        : alice (uid 1000)",
		"Directory   : /home/alice/src/pinfo",
		"Command     : ssh -p 2222 alice@example.com ls",
		"init (pid 1) → zsh (pid 4100) → ssh (pid 4242)",
		"Remote      : alice@example.com",
		"Port        : 2222",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\033[")
	assert.NotContains(t, out, "Warning")
}

func TestRenderStandardColorAndWarning(t *testing.T) {
	t.Parallel()
	r := sampleResult()
	r.Process.Error = "permission denied"

	var buf bytes.Buffer
	RenderStandard(&buf, r, true)
	assert.Contains(t, buf.String(), string(colorGreen))
	assert.Contains(t, buf.String(), "permission denied")
}

func TestRenderShort(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	RenderShort(&buf, sampleResult(), false)
	assert.Equal(t, "ssh: ~/src/pinfo\n", buf.String())

	buf.Reset()
	r := sampleResult()
	r.Title = ""
	RenderShort(&buf, r, false)
	assert.Equal(t, "ssh\n", buf.String())
}

func TestRenderEnvOnly(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	RenderEnvOnly(&buf, sampleResult().Process, false)
	out := buf.String()

	assert.Contains(t, out, "Environment :")
	assert.Less(t, strings.Index(out, "EVIL="), strings.Index(out, "TERM="), "keys are sorted")
	assert.Contains(t, out, `EVIL=\x1b]0;pwned\x07`)
	assert.NotContains(t, out, "\x1b")

	buf.Reset()
	RenderEnvOnly(&buf, model.Process{PID: 1}, false)
	assert.Contains(t, buf.String(), "No environment variables found.")
}

func TestPrintTree(t *testing.T) {
	t.Parallel()
	r := sampleResult()
	var children []model.ProcessSummary
	for pid := 5000; pid < 5012; pid++ {
		children = append(children, model.ProcessSummary{PID: pid, PPID: 4242, Command: "child"})
	}

	var buf bytes.Buffer
	PrintTree(&buf, r.Ancestry, children, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 3+childLimit+1)
	assert.Equal(t, "init (pid 1)", lines[0])
	assert.Equal(t, "  └─ zsh (pid 4100)", lines[1])
	assert.Equal(t, "    └─ ssh (pid 4242) /home/alice/src/pinfo", lines[2])
	assert.Equal(t, "      ├─ child (pid 5000)", lines[3])
	assert.Equal(t, "      └─ ... and 2 more", lines[len(lines)-1])
}

func TestChildrenOf(t *testing.T) {
	t.Parallel()
	all := []model.ProcessSummary{
		{PID: 1, PPID: 0},
		{PID: 2, PPID: 1},
		{PID: 3, PPID: 2},
		{PID: 4, PPID: 1},
	}
	got := ChildrenOf(1, all)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].PID)
	assert.Equal(t, 4, got[1].PID)
}

func TestRenderRemote(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	RenderRemote(&buf, *sampleResult().Remote, "alice@example", false)
	out := buf.String()
	assert.Contains(t, out, "Title       : alice@example")
	assert.Contains(t, out, "Remote cmd  : ls")

	buf.Reset()
	RenderRemote(&buf, model.RemoteSession{}, "", false)
	assert.Contains(t, buf.String(), "Not an ssh client")
}

func TestRenderList(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	procs := []model.Process{
		sampleResult().Process,
		{PID: 7, Args: []string{"evil\nname"}},
	}
	require.NoError(t, RenderList(&buf, procs))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "PID"))
	assert.Contains(t, lines[1], "alice")
	assert.Contains(t, lines[2], `evil\x0aname`)
}

func TestToJSON(t *testing.T) {
	t.Parallel()
	out, err := ToJSON(sampleResult())
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b")

	var back map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	proc := back["process"].(map[string]any)
	assert.Equal(t, float64(4242), proc["pid"])
	assert.Equal(t, "ssh", proc["name"])
	assert.NotContains(t, proc, "foreground_pid")
}
