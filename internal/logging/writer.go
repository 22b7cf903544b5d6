package logging

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-logfmt/logfmt"
)

// Record is one decoded log line.
type Record struct {
	Timestamp  time.Time         `json:"time,omitzero" toml:"time,omitempty"`
	Level      string            `json:"level" toml:"level"`
	Message    string            `json:"msg" toml:"msg"`
	Attributes map[string]string `json:"attrs,omitempty" toml:"attrs,omitempty"`
}

// Recorder is a writer that decodes logfmt output into records. Pair it
// with a logger built with FormatLogfmt.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder returns a recorder and a debug-level logger writing into it.
func NewRecorder() (*Recorder, *slog.Logger) {
	rec := &Recorder{}
	logger, _ := New(rec, Options{Level: "debug", Format: FormatLogfmt})
	return rec, logger
}

func (r *Recorder) Write(p []byte) (int, error) {
	d := logfmt.NewDecoder(bytes.NewReader(p))
	var decoded []Record
	for d.ScanRecord() {
		msg := Record{}

		for d.ScanKeyval() {
			switch string(d.Key()) {
			case "time":
				parsed, err := time.Parse(time.RFC3339, string(d.Value()))
				if err != nil {
					return 0, fmt.Errorf("parsing time: %w", err)
				}
				msg.Timestamp = parsed
			case "level":
				msg.Level = strings.ToLower(string(d.Value()))
			case "msg":
				msg.Message = string(d.Value())
			default:
				if msg.Attributes == nil {
					msg.Attributes = make(map[string]string)
				}
				msg.Attributes[string(d.Key())] = string(d.Value())
			}
		}
		decoded = append(decoded, msg)
	}
	if d.Err() != nil {
		return 0, d.Err()
	}

	r.mu.Lock()
	r.records = append(r.records, decoded...)
	r.mu.Unlock()
	return len(p), nil
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}
