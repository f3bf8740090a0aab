package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetTestOutput(&buf)
	defer UnsetTestOutput()

	InitLogger("info")
	Debug("hidden")
	Info("visible", Fields{"key": "value"})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "key=value")
}

func TestLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	SetTestOutput(&buf)
	defer UnsetTestOutput()

	InitLogger("debug")
	Debugf("debugging %s", "now")

	assert.Contains(t, buf.String(), "debugging now")
}

func TestLoggerUnknownLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	SetTestOutput(&buf)
	defer UnsetTestOutput()

	InitLogger("chatty")
	Info("still works")
	Warnf("warned %d times", 1)
	Errorf("failed: %v", "reason")

	out := buf.String()
	assert.Contains(t, out, "still works")
	assert.Contains(t, out, "warned 1 times")
	assert.Contains(t, out, "failed: reason")
}

func TestMergeFields(t *testing.T) {
	attrs := mergeFields(Fields{"a": 1}, Fields{"b": 2})
	assert.Len(t, attrs, 4)

	joined := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if s, ok := a.(string); ok {
			joined = append(joined, s)
		}
	}
	assert.Contains(t, strings.Join(joined, ","), "a")
}
