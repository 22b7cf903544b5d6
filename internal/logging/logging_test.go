package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-logfmt/logfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogfmt(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn", Format: FormatLogfmt})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("Syntax theme unavailable, falling back", "step", "explicit", "error", errors.New("not found"))

	d := logfmt.NewDecoder(&buf)
	require.True(t, d.ScanRecord())
	fields := map[string]string{}
	for d.ScanKeyval() {
		fields[string(d.Key())] = string(d.Value())
	}
	require.NoError(t, d.Err())
	assert.Equal(t, "warn", fields["level"])
	assert.Equal(t, "Syntax theme unavailable, falling back", fields["msg"])
	assert.Equal(t, "explicit", fields["step"])
	assert.Equal(t, "not found", fields["error"])
	assert.False(t, d.ScanRecord())
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: FormatJSON})
	require.NoError(t, err)
	logger.Debug("No light syntax variant", "theme", "nord")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "debug", got["level"])
	assert.Equal(t, "nord", got["theme"])
}

func TestNewRejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	rec, logger := NewRecorder()
	logger.Debug("No light syntax variant", "theme", "nord")
	logger.Warn("Syntax theme unavailable, falling back", "step", "inherited")

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, Record{
		Level:      "debug",
		Message:    "No light syntax variant",
		Attributes: map[string]string{"theme": "nord"},
	}, records[0])
	assert.Equal(t, "warn", records[1].Level)
	assert.Equal(t, "inherited", records[1].Attributes["step"])
}

func TestRecorderRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	rec := &Recorder{}
	_, err := rec.Write([]byte("time=yesterday msg=x\n"))
	assert.Error(t, err)
	assert.Empty(t, rec.Records())
}
