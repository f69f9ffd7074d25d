package ingestion

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/poiesic/recapit/core"
)

// Event types emitted during a summarization run.
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// Event is one entry in the progress stream of a summarization run.
// Progress events carry a message and a percentage; the terminal complete
// event carries the result payload, and the terminal error event carries the
// failure message.
type Event struct {
	Type     string         `json:"type"`
	Message  string         `json:"message,omitempty"`
	Progress int            `json:"progress"`
	Result   *ResultPayload `json:"result,omitempty"`
	Warning  string         `json:"warning,omitempty"`
}

// ResultPayload is the result data attached to a complete event.
type ResultPayload struct {
	ID         core.ID `json:"id"`
	SourceID   string  `json:"source_id"`
	Title      string  `json:"title,omitempty"`
	Summary    string  `json:"summary"`
	Transcript string  `json:"transcript,omitempty"`
	Language   string  `json:"language"`
	Model      string  `json:"model,omitempty"`
	Cached     bool    `json:"cached,omitempty"`
}

// Emitter receives progress events during a run. Emit must never fail the
// run: implementations swallow their own errors.
type Emitter interface {
	Emit(event Event)
}

// NopEmitter discards all events.
type NopEmitter struct{}

// Emit discards the event.
func (NopEmitter) Emit(Event) {}

// StreamEmitter writes events to a writer as newline-delimited JSON, flushing
// after every event so consumers see progress before the next blocking stage
// starts. It is single-producer: a run emits its events sequentially.
//
// After the first write failure the emitter goes silent; the run keeps going
// without it.
type StreamEmitter struct {
	w      io.Writer
	enc    *json.Encoder
	logger *slog.Logger
	failed bool
}

var _ Emitter = (*StreamEmitter)(nil)

// NewStreamEmitter creates an emitter writing NDJSON to w.
func NewStreamEmitter(w io.Writer) *StreamEmitter {
	return &StreamEmitter{
		w:      w,
		enc:    json.NewEncoder(w),
		logger: slog.Default().With("component", "progress-emitter"),
	}
}

type flusher interface {
	Flush()
}

type errFlusher interface {
	Flush() error
}

// Emit writes one event followed by a newline and flushes the writer.
func (e *StreamEmitter) Emit(event Event) {
	if e.failed {
		return
	}

	if err := e.enc.Encode(event); err != nil {
		e.failed = true
		e.logger.Warn("progress stream closed, continuing without events", "err", err)
		return
	}

	switch f := e.w.(type) {
	case flusher:
		f.Flush()
	case errFlusher:
		if err := f.Flush(); err != nil {
			e.failed = true
			e.logger.Warn("progress stream closed, continuing without events", "err", err)
		}
	}
}

// Failed reports whether the stream has seen a write failure.
func (e *StreamEmitter) Failed() bool {
	return e.failed
}
