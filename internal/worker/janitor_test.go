package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muhammadjayadi/larastore-management/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUpload(t *testing.T, root, rel string, age time.Duration) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("bytes"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestSweepFolderRemovesOldOrphans(t *testing.T) {
	uploads, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	root := uploads.Root()

	writeUpload(t, root, "category_images/orphan.png", 48*time.Hour)
	writeUpload(t, root, "category_images/kept.png", 48*time.Hour)
	writeUpload(t, root, "category_images/fresh.png", time.Minute)

	referenced := map[string]bool{"category_images/kept.png": true}
	removed := sweepFolder(uploads, storage.FolderCategoryImages, referenced)

	assert.Equal(t, 1, removed)
	assert.False(t, uploads.Exists("category_images/orphan.png"))
	assert.True(t, uploads.Exists("category_images/kept.png"), "referenced files survive")
	assert.True(t, uploads.Exists("category_images/fresh.png"), "young files survive")
}

func TestSweepFolderMissingDirIsHarmless(t *testing.T) {
	uploads, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, sweepFolder(uploads, storage.FolderAvatars, nil))
}
