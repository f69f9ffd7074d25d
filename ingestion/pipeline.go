// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/chunk"
	"github.com/poiesic/recapit/core"
	"github.com/poiesic/recapit/objectstore"
	"github.com/poiesic/recapit/storage"
	"github.com/poiesic/recapit/transcript"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultPollMaxWait  = 5 * time.Minute

	// cleanupTimeout bounds the remote file delete that runs after a run
	// finishes, including when the run's own context is already canceled.
	cleanupTimeout = 30 * time.Second

	defaultLanguage = "en"
)

// Pipeline runs summarization end to end: it resolves the source, drives the
// generative services, persists the result, and reports progress.
type Pipeline struct {
	results     storage.ResultRepository
	provider    ai.AIProvider
	store       objectstore.Downloader
	transcripts transcript.Source

	chunkSize    int
	overlapChars int
	pollInterval time.Duration
	pollMaxWait  time.Duration
	modelName    string

	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets the logger for pipeline operations.
// If logger is nil, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "ingestion")
		return nil
	}
}

// WithObjectStore sets the object store used to download source media.
// Required for ProcessVideo.
func WithObjectStore(store objectstore.Downloader) Option {
	return func(p *Pipeline) error {
		p.store = store
		return nil
	}
}

// WithTranscriptSource sets the caption provider used by ProcessRemote.
func WithTranscriptSource(src transcript.Source) Option {
	return func(p *Pipeline) error {
		p.transcripts = src
		return nil
	}
}

// WithChunking overrides the transcript chunking parameters.
func WithChunking(chunkSize, overlapChars int) Option {
	return func(p *Pipeline) error {
		if chunkSize <= 0 {
			return fmt.Errorf("chunk size must be positive, got %d", chunkSize)
		}
		if overlapChars < 0 {
			return fmt.Errorf("overlap must be non-negative, got %d", overlapChars)
		}
		p.chunkSize = chunkSize
		p.overlapChars = overlapChars
		return nil
	}
}

// WithPolling overrides how remote file processing is polled.
func WithPolling(interval, maxWait time.Duration) Option {
	return func(p *Pipeline) error {
		if interval <= 0 || maxWait <= 0 {
			return fmt.Errorf("polling durations must be positive, got interval=%s maxWait=%s", interval, maxWait)
		}
		p.pollInterval = interval
		p.pollMaxWait = maxWait
		return nil
	}
}

// WithModelName records which model name is stamped on persisted results.
func WithModelName(name string) Option {
	return func(p *Pipeline) error {
		p.modelName = name
		return nil
	}
}

// NewPipeline creates a summarization pipeline. The result repository and AI
// provider are required; the object store and transcript source are only
// needed for the run types that use them.
func NewPipeline(results storage.ResultRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if results == nil {
		return nil, ErrResultRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		results:      results,
		provider:     provider,
		chunkSize:    chunk.DefaultChunkSize,
		overlapChars: chunk.DefaultOverlapChars,
		pollInterval: defaultPollInterval,
		pollMaxWait:  defaultPollMaxWait,
		logger:       slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// VideoRequest describes one video summarization run.
type VideoRequest struct {
	// Key is the object store key of the source media.
	Key string

	// SourceID is the stable identifier the result is cached under.
	// Defaults to Key.
	SourceID string

	Title    string
	Language string

	// MIMEType overrides the content type reported by the object store.
	MIMEType string

	DurationSeconds int64
}

// TranscriptRequest describes one transcript summarization run.
type TranscriptRequest struct {
	// SourceID is the stable identifier the result is cached under.
	SourceID string

	Title          string
	SourceLocation string
	Transcript     string
	Language       string

	DurationSeconds int64
}

// ProcessVideo summarizes a video stored in the object store. It downloads
// the media, stages it on the remote file service, waits for processing,
// runs one analysis call producing transcript and summary, persists the
// result, and deletes the staged file no matter how the run ends.
//
// Results are cached per (source, language): a second run for the same pair
// returns the stored result without touching the object store or the AI
// services.
func (p *Pipeline) ProcessVideo(ctx context.Context, req VideoRequest, em Emitter) (*core.Result, error) {
	if p.store == nil {
		return nil, ErrObjectStoreRequired
	}
	if em == nil {
		em = NopEmitter{}
	}
	if req.SourceID == "" {
		req.SourceID = req.Key
	}
	language := normalizeLanguage(req.Language)

	if cached := p.lookupCached(ctx, req.SourceID, language); cached != nil {
		p.complete(em, cached, true, "")
		return cached, nil
	}

	p.progress(em, "downloading source media", 10)
	data, contentType, err := p.store.Download(ctx, req.Key)
	if err != nil {
		return nil, p.fail(em, err, 10)
	}

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = contentType
	}
	displayName := req.Title
	if displayName == "" {
		displayName = req.Key
	}

	p.progress(em, "uploading media to file service", 30)
	handle, err := p.provider.Files().Upload(ctx, data, displayName, mimeType)
	if err != nil {
		return nil, p.fail(em, err, 30)
	}
	defer p.cleanupFile(handle.Name)

	p.progress(em, "waiting for remote processing", 50)
	if err := p.provider.Files().WaitUntilActive(ctx, handle.Name, p.pollInterval, p.pollMaxWait); err != nil {
		return nil, p.fail(em, err, 50)
	}

	p.progress(em, "generating transcript and summary", 70)
	analysis, err := p.provider.VideoAnalyzer().AnalyzeVideo(ctx, handle, language)
	if err != nil {
		return nil, p.fail(em, err, 70)
	}

	p.progress(em, "finalizing output", 85)
	result := &core.Result{
		SourceID:        req.SourceID,
		Title:           req.Title,
		SourceLocation:  req.Key,
		Summary:         analysis.Summary,
		Transcript:      analysis.Transcript,
		Language:        language,
		Model:           p.modelName,
		DurationSeconds: req.DurationSeconds,
	}

	p.progress(em, "persisting result", 90)
	stored, warning := p.persist(ctx, result)

	p.complete(em, stored, false, warning)
	return stored, nil
}

// ProcessTranscript summarizes transcript text directly. Transcripts longer
// than the chunk size are split into overlapping chunks, summarized chunk by
// chunk, and the partial summaries merged with one combine call.
func (p *Pipeline) ProcessTranscript(ctx context.Context, req TranscriptRequest, em Emitter) (*core.Result, error) {
	if em == nil {
		em = NopEmitter{}
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, ErrEmptyTranscript
	}
	language := normalizeLanguage(req.Language)

	if cached := p.lookupCached(ctx, req.SourceID, language); cached != nil {
		p.complete(em, cached, true, "")
		return cached, nil
	}

	p.progress(em, "transcript received", 20)

	var summary string
	if len(req.Transcript) > p.chunkSize {
		var err error
		summary, err = p.summarizeChunked(ctx, req.Transcript, language, em)
		if err != nil {
			return nil, p.fail(em, err, 60)
		}
	} else {
		p.progress(em, "summarizing transcript", 60)
		var err error
		summary, err = p.provider.Generator().GenerateText(ctx, ai.SummaryPrompt(language, req.Transcript))
		if err != nil {
			return nil, p.fail(em, err, 60)
		}
	}

	result := &core.Result{
		SourceID:        req.SourceID,
		Title:           req.Title,
		SourceLocation:  req.SourceLocation,
		Summary:         summary,
		Transcript:      req.Transcript,
		Language:        language,
		Model:           p.modelName,
		DurationSeconds: req.DurationSeconds,
	}

	p.progress(em, "persisting result", 85)
	stored, warning := p.persist(ctx, result)

	p.complete(em, stored, false, warning)
	return stored, nil
}

// ProcessRemote summarizes a source whose transcript is fetched from the
// caption provider, falling back through the standard language chain when
// the requested language has no captions. Metadata lookup is best-effort.
func (p *Pipeline) ProcessRemote(ctx context.Context, sourceID, language string, em Emitter) (*core.Result, error) {
	if p.transcripts == nil {
		return nil, ErrTranscriptSourceRequired
	}
	if em == nil {
		em = NopEmitter{}
	}
	language = normalizeLanguage(language)

	if cached := p.lookupCached(ctx, sourceID, language); cached != nil {
		p.complete(em, cached, true, "")
		return cached, nil
	}

	p.progress(em, "fetching transcript", 5)
	captions, err := transcript.FetchWithFallback(ctx, p.transcripts, sourceID, language)
	if err != nil {
		return nil, p.fail(em, err, 5)
	}

	req := TranscriptRequest{
		SourceID:   sourceID,
		Transcript: captions.Text,
		Language:   language,
	}
	if meta, err := p.transcripts.Metadata(ctx, sourceID); err != nil {
		p.logger.Warn("metadata lookup failed, continuing without", "source_id", sourceID, "err", err)
	} else {
		req.Title = meta.Title
		req.SourceLocation = meta.SourceURL
		req.DurationSeconds = meta.DurationSeconds
	}

	return p.ProcessTranscript(ctx, req, em)
}

// summarizeChunked splits the transcript, summarizes each chunk, and merges
// the partial summaries with one combine call.
func (p *Pipeline) summarizeChunked(ctx context.Context, text, language string, em Emitter) (string, error) {
	chunks := chunk.Split(text, p.chunkSize, p.overlapChars)
	p.logger.Debug("transcript chunked", "chunks", len(chunks), "chars", len(text))

	partials := make([]string, 0, len(chunks))
	for i, c := range chunks {
		p.progress(em,
			fmt.Sprintf("summarizing section %d of %d", i+1, len(chunks)),
			60+25*i/len(chunks))

		partial, err := p.provider.Generator().GenerateText(ctx, ai.SummaryPrompt(language, c))
		if err != nil {
			return "", fmt.Errorf("summarizing section %d of %d: %w", i+1, len(chunks), err)
		}
		partials = append(partials, partial)
	}

	if len(partials) == 1 {
		return partials[0], nil
	}

	p.progress(em, "combining section summaries", 85)
	return p.provider.Generator().GenerateText(ctx, ai.CombinePrompt(language, partials))
}

// lookupCached returns the stored result for the pair, or nil on a miss.
// A failing lookup is logged and treated as a miss: an unavailable cache
// must not fail the run.
func (p *Pipeline) lookupCached(ctx context.Context, sourceID, language string) *core.Result {
	cached, err := p.results.GetResult(ctx, sourceID, language)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("cache lookup failed, proceeding without cache",
				"source_id", sourceID, "language", language, "err", err)
		}
		return nil
	}
	p.logger.Info("cache hit", "source_id", sourceID, "language", language)
	return cached
}

// persist stores the result. A duplicate key means another run for the same
// pair won the race; the stored result is returned instead. Any other
// storage failure downgrades to a warning so the caller still gets the
// generated result.
func (p *Pipeline) persist(ctx context.Context, result *core.Result) (*core.Result, string) {
	result.Id = core.ResultKey(result.SourceID, result.Language)

	stored, err := p.results.SaveResult(ctx, result)
	if err == nil {
		return stored, ""
	}

	if errors.Is(err, storage.ErrDuplicateKey) {
		if existing, gerr := p.results.GetResult(ctx, result.SourceID, result.Language); gerr == nil {
			p.logger.Info("concurrent run already persisted this pair",
				"source_id", result.SourceID, "language", result.Language)
			return existing, ""
		}
	}

	perr := &PersistenceError{Err: err}
	p.logger.Warn("result not persisted", "source_id", result.SourceID, "err", err)
	return result, perr.Error()
}

// cleanupFile deletes a staged remote file. It runs with its own deadline so
// cleanup still happens when the run's context is already canceled, and a
// failure is only logged.
func (p *Pipeline) cleanupFile(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := p.provider.Files().Delete(ctx, name); err != nil {
		p.logger.Warn("failed to delete staged file", "name", name, "err", err)
		return
	}
	p.logger.Debug("staged file deleted", "name", name)
}

func (p *Pipeline) progress(em Emitter, message string, percent int) {
	em.Emit(Event{Type: EventProgress, Message: message, Progress: percent})
}

func (p *Pipeline) fail(em Emitter, err error, percent int) error {
	em.Emit(Event{Type: EventError, Message: err.Error(), Progress: percent})
	return err
}

func (p *Pipeline) complete(em Emitter, result *core.Result, cached bool, warning string) {
	em.Emit(Event{
		Type:     EventComplete,
		Progress: 100,
		Warning:  warning,
		Result: &ResultPayload{
			ID:         result.Id,
			SourceID:   result.SourceID,
			Title:      result.Title,
			Summary:    result.Summary,
			Transcript: result.Transcript,
			Language:   result.Language,
			Model:      result.Model,
			Cached:     cached,
		},
	})
}

func normalizeLanguage(language string) string {
	language = strings.TrimSpace(language)
	if language == "" {
		return defaultLanguage
	}
	return language
}
