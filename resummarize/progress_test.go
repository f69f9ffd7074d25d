package resummarize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at the configured interval", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 10, 5)
		tracker.Start()

		tracker.Update(3)
		assert.Empty(t, out.String(), "below the interval, nothing reported")

		tracker.Update(5)
		assert.Contains(t, out.String(), "Resummarized 5/10 (50.0%)")
	})

	t.Run("finish snaps to the total and ends the line", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 4, 100)
		tracker.Start()

		tracker.Update(2)
		tracker.Finish()

		assert.Contains(t, out.String(), "Resummarized 4/4 (100.0%)")
		assert.True(t, strings.HasSuffix(out.String(), "\n"))
	})

	t.Run("current is capped at the total", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 3, 1)
		tracker.Start()

		tracker.Update(7)
		assert.Contains(t, out.String(), "Resummarized 3/3 (100.0%)")
	})

	t.Run("updates before start are ignored", func(t *testing.T) {
		var out bytes.Buffer
		tracker := NewProgressTracker(&out, 10, 1)

		tracker.Update(5)
		tracker.Finish()

		assert.Empty(t, out.String())
		require.Zero(t, tracker.Elapsed())
	})
}
