package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

// TestParseLevel verifies level names map to apex levels.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{name: "empty", level: "", expected: log.ErrorLevel},
		{name: "trace", level: "trace", expected: log.DebugLevel},
		{name: "debug", level: "debug", expected: log.DebugLevel},
		{name: "info", level: "info", expected: log.InfoLevel},
		{name: "warning", level: "warning", expected: log.WarnLevel},
		{name: "fatal", level: "fatal", expected: log.FatalLevel},
		{name: "unknown", level: "loud", expected: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

// TestHandlerWritesLevelAndFields verifies the one-line format.
func TestHandlerWritesLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(&buf, "debug")

	WithField("profile", "dev").Infof("loaded %d sections", 3)
	WithError(errors.New("boom")).Error("lookup failed")

	out := buf.String()
	assert.Contains(t, out, " I loaded 3 sections profile=dev")
	assert.Contains(t, out, " E lookup failed error=boom")
}

// TestTraceOnlyWhenEnabled verifies Tracef is silent below trace.
func TestTraceOnlyWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(&buf, "debug")
	Tracef("hidden")
	assert.Empty(t, buf.String())

	InitLoggerWithWriter(&buf, "trace")
	Tracef("shown %s", "now")
	assert.Contains(t, buf.String(), " T shown now")
}
