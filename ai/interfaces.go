package ai

import (
	"context"
	"time"
)

// Generator produces text completions from prompts.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText generates a cleaned text completion for the prompt.
	// Returns a *GenerationError if the model output is unusable after
	// cleaning.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// FileStore stages media files on the remote file service and manages their
// lifecycle. Implementations must be thread-safe for concurrent use.
type FileStore interface {
	// Upload stages data on the remote service and returns its handle.
	// The handle's Name is the durable identifier for status polling and
	// deletion; its URI is what generation calls reference. The two are
	// distinct identifier spaces and must never be interchanged.
	Upload(ctx context.Context, data []byte, displayName, mimeType string) (*FileHandle, error)

	// WaitUntilActive polls the file state at a fixed interval until it
	// becomes ACTIVE, the service reports FAILED, or maxWait elapses.
	WaitUntilActive(ctx context.Context, name string, interval, maxWait time.Duration) error

	// Delete removes the staged file. Callers treat a failure here as a
	// logged warning, never as a run failure.
	Delete(ctx context.Context, name string) error
}

// VideoAnalyzer produces a transcript and summary from a staged media file.
// Implementations must be thread-safe for concurrent use.
type VideoAnalyzer interface {
	// AnalyzeVideo runs a single generation call against the staged file
	// and parses the labeled sections out of the response. Parsing never
	// fails: if the expected sections are absent, both fields of the
	// returned VideoAnalysis carry the full raw response.
	AnalyzeVideo(ctx context.Context, handle *FileHandle, language string) (*VideoAnalysis, error)
}

// AIProvider aggregates the generative services for convenient initialization
// and lifecycle management.
type AIProvider interface {
	// Generator returns the text generation service.
	Generator() Generator

	// Files returns the remote file staging service.
	Files() FileStore

	// VideoAnalyzer returns the video analysis service.
	VideoAnalyzer() VideoAnalyzer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
