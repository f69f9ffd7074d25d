package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamEmitter(t *testing.T) {
	t.Run("writes one JSON object per line", func(t *testing.T) {
		var buf bytes.Buffer
		em := NewStreamEmitter(&buf)

		em.Emit(Event{Type: EventProgress, Message: "downloading source media", Progress: 10})
		em.Emit(Event{Type: EventComplete, Progress: 100, Result: &ResultPayload{
			SourceID: "vid-1",
			Summary:  "🎯 done",
			Language: "en",
		}})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)

		var first Event
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, EventProgress, first.Type)
		assert.Equal(t, 10, first.Progress)
		assert.Nil(t, first.Result)

		var second Event
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, EventComplete, second.Type)
		require.NotNil(t, second.Result)
		assert.Equal(t, "vid-1", second.Result.SourceID)
	})

	t.Run("goes silent after the first write failure", func(t *testing.T) {
		w := &failingWriter{failAfter: 1}
		em := NewStreamEmitter(w)

		em.Emit(Event{Type: EventProgress, Progress: 10})
		em.Emit(Event{Type: EventProgress, Progress: 30}) // fails
		em.Emit(Event{Type: EventProgress, Progress: 50}) // must not write

		assert.True(t, em.Failed())
		assert.Equal(t, 2, w.writes, "no writes should be attempted after a failure")
	})
}

// failingWriter succeeds failAfter times, then errors on every write.
type failingWriter struct {
	failAfter int
	writes    int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.failAfter {
		return 0, errors.New("client went away")
	}
	return len(p), nil
}
