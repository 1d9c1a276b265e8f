package logger

import (
	"bytes"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitialize_ReadsLevelFromEnvironment(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	cases := []struct {
		env  string
		want log.Level
	}{
		{"trace", log.TraceLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"", log.ErrorLevel},
		{"bogus", log.ErrorLevel},
	}
	for _, c := range cases {
		t.Setenv(EnvLogLevel, c.env)
		Initialize()
		assert.Equal(t, c.want, log.GetLevel(), "env=%q", c.env)
	}
}

func TestMessages_AreLevelGated(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	defer log.SetLevel(log.GetLevel())

	SetConsoleLogger(log.WarnLevel)
	DebugMessage("hidden %d", 1)
	assert.Empty(t, buf.String())

	WarnMessage("first line\nsecond %s", "line")
	out := buf.String()
	assert.Contains(t, out, "first line")
	assert.Contains(t, out, "second line")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("level=warning")))
}

func TestPreFormatArgs_PrettyPrintsComposites(t *testing.T) {
	args := preFormatArgs([]interface{}{1, "s", map[string]int{"a": 1}})
	assert.Equal(t, 1, args[0])
	assert.Equal(t, "s", args[1])
	assert.NotEqual(t, map[string]int{"a": 1}, args[2])
}
