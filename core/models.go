package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ResultKey derives the ID under which a summarization result is cached.
// Results are unique per (source, language) pair, so the same source
// summarized in two languages produces two distinct records.
func ResultKey(sourceID, language string) ID {
	return IDFromContent(sourceID + "|" + language)
}

// Result is a completed summarization run for one media source in one language.
type Result struct {
	Id              ID
	SourceID        string // stable identifier of the source media
	Title           string
	SourceLocation  string // where the source lives (object key or original URL)
	Summary         string
	Transcript      string
	Language        string
	Model           string // model that produced the summary
	DurationSeconds int64  // source media duration, 0 when unknown
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FileState is the lifecycle state reported by the remote file service.
type FileState string

const (
	FileStateProcessing FileState = "PROCESSING"
	FileStateActive     FileState = "ACTIVE"
	FileStateFailed     FileState = "FAILED"
)
