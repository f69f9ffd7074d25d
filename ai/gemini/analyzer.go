package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/poiesic/recapit/ai"
)

// Analyzer implements ai.VideoAnalyzer with a single generation call that
// references a staged file.
type Analyzer struct {
	host        string
	apiKey      string
	model       string
	temperature float64
	httpc       *http.Client
	cleaner     *ai.OutputCleaner
	logger      *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(config *ai.Config, httpc *http.Client) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 5 * time.Minute}
	}

	return &Analyzer{
		host:        config.Host,
		apiKey:      config.APIKey,
		model:       config.Model,
		temperature: config.Temperature,
		httpc:       httpc,
		cleaner:     ai.NewOutputCleaner(),
		logger:      slog.Default().With("component", "gemini-analyzer"),
	}, nil
}

// NewAnalyzer creates a video analyzer using the provided configuration.
//
// Returns ai.VideoAnalyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.VideoAnalyzer, error) {
	return newAnalyzer(config, nil)
}

// Wire types for the generateContent call.
type generateRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	FileData *fileData `json:"file_data,omitempty"`
	Text     string    `json:"text,omitempty"`
}

type fileData struct {
	FileURI  string `json:"file_uri"`
	MIMEType string `json:"mime_type"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AnalyzeVideo asks the model for a transcript and summary of the staged
// file in one call. The file is referenced by URI; the durable name plays
// no role here.
func (a *Analyzer) AnalyzeVideo(ctx context.Context, handle *ai.FileHandle, language string) (*ai.VideoAnalysis, error) {
	if handle == nil {
		return nil, &ai.GenerationError{Model: a.model, Reason: "nil file handle"}
	}

	prompt := ai.VideoAnalysisPrompt(language)
	reqBody := generateRequest{
		Contents: []requestContent{{
			Parts: []requestPart{
				{FileData: &fileData{FileURI: handle.URI, MIMEType: handle.MIMEType}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &generationConfig{Temperature: a.temperature},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ai.GenerationError{Model: a.model, Reason: "encoding request", Err: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.host, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ai.GenerationError{Model: a.model, Reason: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, &ai.GenerationError{Model: a.model, Reason: "model call failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ai.GenerationError{
			Model:  a.model,
			Reason: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, readErrorBody(resp.Body)),
		}
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&out); err != nil {
		return nil, &ai.GenerationError{Model: a.model, Reason: "decoding response", Err: err}
	}
	if len(out.Candidates) == 0 {
		return nil, &ai.GenerationError{Model: a.model, Reason: "no candidates returned"}
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	raw := sb.String()

	analysis, structured := parseSections(raw)
	if structured {
		analysis.Summary = a.cleaner.Clean(analysis.Summary)
		if err := ai.CheckLength(analysis.Summary, a.model); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("video analyzed",
		"uri", handle.URI,
		"transcript_len", len(analysis.Transcript),
		"summary_len", len(analysis.Summary))
	return analysis, nil
}

// parseSections splits the raw response into its labeled sections and
// reports whether both headings were found in order. If not, the whole
// response is returned in both fields as-is; the caller must not clean or
// length-check that fallback.
func parseSections(raw string) (*ai.VideoAnalysis, bool) {
	trimmed := strings.TrimSpace(raw)

	ti := strings.Index(trimmed, "## Transcript")
	si := strings.Index(trimmed, "## Summary")
	if ti < 0 || si < 0 || si < ti {
		return &ai.VideoAnalysis{Transcript: trimmed, Summary: trimmed}, false
	}

	transcript := strings.TrimSpace(trimmed[ti+len("## Transcript") : si])
	summary := strings.TrimSpace(trimmed[si+len("## Summary"):])
	return &ai.VideoAnalysis{Transcript: transcript, Summary: summary}, true
}
