package server

import (
	"time"

	"github.com/poiesic/recapit/core"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type VideoSummaryRequest struct {
	// Key is the object store key of the source media.
	Key      string `json:"key"`
	FileName string `json:"fileName,omitempty"`
	Language string `json:"language,omitempty"`
}

type TranscriptSummaryRequest struct {
	// SourceID identifies the remote media whose captions get summarized.
	SourceID string `json:"sourceId"`
	Language string `json:"language,omitempty"`

	// Transcript, when set, is summarized directly instead of fetching
	// captions for SourceID.
	Transcript string `json:"transcript,omitempty"`
}

type ResultResponse struct {
	ID              core.ID `json:"id"`
	SourceID        string  `json:"source_id"`
	Title           string  `json:"title,omitempty"`
	SourceLocation  string  `json:"source_location,omitempty"`
	Summary         string  `json:"summary"`
	Transcript      string  `json:"transcript,omitempty"`
	Language        string  `json:"language"`
	Model           string  `json:"model,omitempty"`
	DurationSeconds int64   `json:"duration_seconds,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func ResultToResponse(r *core.Result) ResultResponse {
	return ResultResponse{
		ID:              r.Id,
		SourceID:        r.SourceID,
		Title:           r.Title,
		SourceLocation:  r.SourceLocation,
		Summary:         r.Summary,
		Transcript:      r.Transcript,
		Language:        r.Language,
		Model:           r.Model,
		DurationSeconds: r.DurationSeconds,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}
