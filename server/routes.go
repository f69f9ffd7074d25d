package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/recapit/ingestion"
	"github.com/poiesic/recapit/storage"
)

func NewRouter(cfg routeConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.logger))
	r.Use(LoggingMiddleware(cfg.logger))

	r.Get("/healthz", healthHandler(cfg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/summaries/video", videoSummaryHandler(cfg))
		r.Post("/summaries/transcript", transcriptSummaryHandler(cfg))
		r.Get("/summaries/{sourceID}", getSummaryHandler(cfg))
	})

	return r
}

type routeConfig struct {
	pipeline  *ingestion.Pipeline
	results   storage.ResultRepository
	pool      *ants.Pool
	logger    *slog.Logger
	startTime time.Time
}

func healthHandler(cfg routeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: Version,
			UptimeS: int64(time.Since(cfg.startTime).Seconds()),
		})
	}
}

func videoSummaryHandler(cfg routeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VideoSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.Key == "" {
			WriteError(w, http.StatusBadRequest, "key is required", "BAD_REQUEST")
			return
		}

		runStreaming(w, cfg, func(em ingestion.Emitter) {
			_, err := cfg.pipeline.ProcessVideo(r.Context(), ingestion.VideoRequest{
				Key:      req.Key,
				Title:    req.FileName,
				Language: req.Language,
			}, em)
			if err != nil {
				cfg.logger.Error("video summarization failed", "key", req.Key, "error", err)
			}
		})
	}
}

func transcriptSummaryHandler(cfg routeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TranscriptSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.SourceID == "" {
			WriteError(w, http.StatusBadRequest, "sourceId is required", "BAD_REQUEST")
			return
		}

		runStreaming(w, cfg, func(em ingestion.Emitter) {
			var err error
			if strings.TrimSpace(req.Transcript) != "" {
				_, err = cfg.pipeline.ProcessTranscript(r.Context(), ingestion.TranscriptRequest{
					SourceID:   req.SourceID,
					Transcript: req.Transcript,
					Language:   req.Language,
				}, em)
			} else {
				_, err = cfg.pipeline.ProcessRemote(r.Context(), req.SourceID, req.Language, em)
			}
			if err != nil {
				cfg.logger.Error("transcript summarization failed", "source_id", req.SourceID, "error", err)
			}
		})
	}
}

func getSummaryHandler(cfg routeConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sourceID := chi.URLParam(r, "sourceID")
		if sourceID == "" {
			WriteError(w, http.StatusBadRequest, "source id required", "BAD_REQUEST")
			return
		}
		language := r.URL.Query().Get("language")
		if language == "" {
			language = "en"
		}

		result, err := cfg.results.GetResult(r.Context(), sourceID, language)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "summary not found", "NOT_FOUND")
				return
			}
			WriteError(w, http.StatusInternalServerError, "failed to load summary", "INTERNAL_ERROR")
			return
		}

		WriteJSON(w, http.StatusOK, ResultToResponse(result))
	}
}

// runStreaming executes a pipeline run on the bounded worker pool, streaming
// its progress events to the response as NDJSON. A full pool is reported as
// 503 before any body bytes are written.
func runStreaming(w http.ResponseWriter, cfg routeConfig, run func(em ingestion.Emitter)) {
	done := make(chan struct{})
	w.Header().Set("Content-Type", "application/x-ndjson")

	err := cfg.pool.Submit(func() {
		defer close(done)
		run(ingestion.NewStreamEmitter(w))
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			WriteError(w, http.StatusServiceUnavailable, "too many concurrent summarization runs", "OVERLOADED")
			return
		}
		WriteError(w, http.StatusInternalServerError, "failed to schedule run", "INTERNAL_ERROR")
		return
	}

	<-done
}
