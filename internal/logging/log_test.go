package logging

import (
	"bytes"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/pinfo/internal/config"
)

func TestParseLevel(t *testing.T) {
	for name, tc := range map[string]struct {
		in   string
		want log.Level
	}{
		"trace":   {in: "trace", want: log.TraceLevel},
		"debug":   {in: "debug", want: log.DebugLevel},
		"upper":   {in: "WARN", want: log.WarnLevel},
		"warning": {in: "warning", want: log.WarnLevel},
		"error":   {in: "error", want: log.ErrorLevel},
		"unknown": {in: "chatty", want: log.InfoLevel},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.in))
		})
	}
}

func TestNewWriter(t *testing.T) {
	var out, errOut bytes.Buffer

	w, err := newWriter(config.LoggingConfig{Format: "json", Writer: "stdout"}, &out, &errOut)
	require.NoError(t, err)
	iow, ok := w.(*log.IOWriter)
	require.True(t, ok)
	assert.Same(t, &out, iow.Writer)

	w, err = newWriter(config.LoggingConfig{Format: "auto"}, &out, &errOut)
	require.NoError(t, err)
	cw, ok := w.(*log.ConsoleWriter)
	require.True(t, ok)
	assert.Same(t, &errOut, cw.Writer)

	_, err = newWriter(config.LoggingConfig{Format: "xml"}, &out, &errOut)
	assert.Error(t, err)
	_, err = newWriter(config.LoggingConfig{Writer: "syslog"}, &out, &errOut)
	assert.Error(t, err)
}

func TestNewTagsComponent(t *testing.T) {
	saved := log.DefaultLogger
	t.Cleanup(func() { log.DefaultLogger = saved })

	var buf bytes.Buffer
	log.DefaultLogger = log.Logger{Level: log.InfoLevel, Writer: &log.IOWriter{Writer: &buf}}

	logger := New("proc")
	logger.Warn().Int("pid", 42).Msg("read failed")
	logger.Debug().Msg("dropped")

	assert.Contains(t, buf.String(), `"component":"proc"`)
	assert.Contains(t, buf.String(), `"pid":42`)
	assert.NotContains(t, buf.String(), "dropped")
}
