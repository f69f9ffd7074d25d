package recapit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/recapit/ai"
	"github.com/poiesic/recapit/objectstore"
)

func testAIConfig() *ai.Config {
	return ai.NewConfig(ai.WithAPIKey("test-key"))
}

func TestNewService(t *testing.T) {
	ctx := context.Background()

	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		svc, err := NewService(ctx, tmpDir, WithAIConfig(testAIConfig()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		// Verify components are initialized
		assert.NotNil(t, svc.Results())
		assert.NotNil(t, svc.Provider())
		assert.NotNil(t, svc.backend)
		assert.NotNil(t, svc.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		svc, err := NewService(ctx, tmpFile, WithAIConfig(testAIConfig()))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("error with incomplete AI config", func(t *testing.T) {
		svc, err := NewService(ctx, t.TempDir()) // default config has no API key
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestService_Close(t *testing.T) {
	svc, err := NewService(context.Background(), t.TempDir(), WithAIConfig(testAIConfig()))
	require.NoError(t, err)
	require.NotNil(t, svc)

	err = svc.Close()
	assert.NoError(t, err)
}

func TestService_NewPipeline(t *testing.T) {
	ctx := context.Background()

	t.Run("pipeline without optional providers", func(t *testing.T) {
		svc, err := NewService(ctx, t.TempDir(), WithAIConfig(testAIConfig()))
		require.NoError(t, err)
		defer svc.Close()

		pipeline, err := svc.NewPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
	})

	t.Run("pipeline with object store and captions", func(t *testing.T) {
		svc, err := NewService(ctx, t.TempDir(),
			WithAIConfig(testAIConfig()),
			WithObjectStoreConfig(objectstore.Config{
				Bucket:   "media",
				Region:   "us-east-1",
				Endpoint: "http://localhost:9000",
			}),
			WithCaptionSource("http://localhost:8080", ""))
		require.NoError(t, err)
		defer svc.Close()

		pipeline, err := svc.NewPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
	})
}
