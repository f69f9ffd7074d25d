package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPSource implements Source against a JSON captions API.
//
// Expected endpoints:
//
//	GET {base}/v1/captions/{sourceID}?lang={language}
//	GET {base}/v1/media/{sourceID}
type HTTPSource struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  *slog.Logger
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a caption API client. apiKey may be empty for
// providers that don't require authentication.
func NewHTTPSource(baseURL, apiKey string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default().With("component", "transcript-source"),
	}
}

// Fetch retrieves captions for a source in the given language.
func (s *HTTPSource) Fetch(ctx context.Context, sourceID, language string) (*Captions, error) {
	endpoint := fmt.Sprintf("%s/v1/captions/%s", s.baseURL, url.PathEscape(sourceID))
	if language != "" {
		endpoint += "?lang=" + url.QueryEscape(language)
	}

	var payload struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	s.logger.Debug("captions fetched",
		"source_id", sourceID,
		"requested", language,
		"served", payload.Language,
		"chars", len(payload.Text))
	return &Captions{Text: payload.Text, Language: payload.Language}, nil
}

// Metadata retrieves descriptive information about a source.
func (s *HTTPSource) Metadata(ctx context.Context, sourceID string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/v1/media/%s", s.baseURL, url.PathEscape(sourceID))

	var payload struct {
		Title           string `json:"title"`
		URL             string `json:"url"`
		DurationSeconds int64  `json:"duration_seconds"`
	}
	if err := s.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	return &Metadata{
		Title:           payload.Title,
		SourceURL:       payload.URL,
		DurationSeconds: payload.DurationSeconds,
	}, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("caption API: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(out)
}
