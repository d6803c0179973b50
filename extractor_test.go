package threadweave

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtractor(t *testing.T) {
	t.Run("create new extractor", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		extractor, err := NewExtractor(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, extractor)
		defer extractor.Close()

		// Verify components are initialized
		assert.NotNil(t, extractor.CheckpointRepository())
		assert.NotNil(t, extractor.ArticleRepository())
		assert.NotNil(t, extractor.backend)
		assert.NotNil(t, extractor.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create an extractor at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		extractor, err := NewExtractor(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, extractor)
	})
}

func TestExtractor_Close(t *testing.T) {
	extractor, err := NewExtractor(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, extractor)

	err = extractor.Close()
	assert.NoError(t, err)
}

func TestExtractor_FactoryMethods(t *testing.T) {
	extractor, err := NewExtractor(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, extractor)
	defer extractor.Close()

	t.Run("can create engine", func(t *testing.T) {
		assert.NotNil(t, extractor.NewEngine())
	})

	t.Run("can create orchestrator", func(t *testing.T) {
		assert.NotNil(t, extractor.NewOrchestrator(nil, nil))
	})
}
