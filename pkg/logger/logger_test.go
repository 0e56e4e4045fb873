package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, "warn")

	log.Debugf("debug %d", 1)
	log.Infof("info %d", 2)
	log.Warnf("warn %d", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "warn 3", rec["msg"])
}

func TestErrorfAttachesError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, "")

	log.Errorf(errors.New("boom"), "failed to load %s", "catalog")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "failed to load catalog", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, "debug").With("session_id", "abc")

	log.Debugf("hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc", rec["session_id"])
}
