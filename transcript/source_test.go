package transcript

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scripted Source: each language maps to a transcript or an
// error, and requests are recorded in order.
type fakeSource struct {
	texts     map[string]string
	errs      map[string]error
	requested []string
}

func (f *fakeSource) Fetch(ctx context.Context, sourceID, language string) (*Captions, error) {
	f.requested = append(f.requested, language)
	if err, ok := f.errs[language]; ok {
		return nil, err
	}
	return &Captions{Text: f.texts[language], Language: language}, nil
}

func (f *fakeSource) Metadata(ctx context.Context, sourceID string) (*Metadata, error) {
	return &Metadata{Title: "t"}, nil
}

func TestFetchWithFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("requested language wins", func(t *testing.T) {
		src := &fakeSource{texts: map[string]string{"de": "hallo welt"}}

		captions, err := FetchWithFallback(ctx, src, "vid-1", "de")
		require.NoError(t, err)
		assert.Equal(t, "hallo welt", captions.Text)
		assert.Equal(t, []string{"de"}, src.requested)
	})

	t.Run("falls through the chain in order", func(t *testing.T) {
		src := &fakeSource{
			errs:  map[string]error{"de": errors.New("no german captions")},
			texts: map[string]string{"en-US": "hello world"},
		}
		// "de" errors, "en" is empty, "en-US" succeeds.

		captions, err := FetchWithFallback(ctx, src, "vid-1", "de")
		require.NoError(t, err)
		assert.Equal(t, "hello world", captions.Text)
		assert.Equal(t, []string{"de", "en", "en-US"}, src.requested)
	})

	t.Run("requested duplicate of fallback is not retried", func(t *testing.T) {
		src := &fakeSource{texts: map[string]string{"": "auto picked"}}

		captions, err := FetchWithFallback(ctx, src, "vid-1", "en")
		require.NoError(t, err)
		assert.Equal(t, "auto picked", captions.Text)
		assert.Equal(t, []string{"en", "en-US", "en-GB", ""}, src.requested)
	})

	t.Run("all candidates fail returns last error", func(t *testing.T) {
		lastErr := errors.New("source has no captions at all")
		src := &fakeSource{
			errs: map[string]error{
				"de":    errors.New("no de"),
				"en":    errors.New("no en"),
				"en-US": errors.New("no en-US"),
				"en-GB": errors.New("no en-GB"),
				"":      lastErr,
			},
		}

		_, err := FetchWithFallback(ctx, src, "vid-1", "de")
		assert.ErrorIs(t, err, lastErr)
	})

	t.Run("whitespace-only transcript counts as empty", func(t *testing.T) {
		src := &fakeSource{texts: map[string]string{
			"en": "   \n\t ",
			"":   "real words",
		}}

		captions, err := FetchWithFallback(ctx, src, "vid-1", "en")
		require.NoError(t, err)
		assert.Equal(t, "real words", captions.Text)
	})
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/v1/captions/vid-1":
			assert.Equal(t, "en", r.URL.Query().Get("lang"))
			w.Write([]byte(`{"text":"hello from captions","language":"en"}`))
		case "/v1/media/vid-1":
			w.Write([]byte(`{"title":"A Title","url":"https://media.example/vid-1","duration_seconds":321}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "test-key")

	captions, err := src.Fetch(context.Background(), "vid-1", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello from captions", captions.Text)
	assert.Equal(t, "en", captions.Language)

	meta, err := src.Metadata(context.Background(), "vid-1")
	require.NoError(t, err)
	assert.Equal(t, "A Title", meta.Title)
	assert.Equal(t, int64(321), meta.DurationSeconds)

	t.Run("http error surfaces status", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "missing", "en")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}
