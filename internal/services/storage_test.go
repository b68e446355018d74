package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	name, path, err := storage.SaveText("my resume.md", []byte("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "resume_"))
	assert.True(t, strings.HasSuffix(name, ".md"))
	assert.Equal(t, storage.GetFilePath(name), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	require.NoError(t, storage.DeleteFile(name))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStorageRejectsUnsupportedExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	_, _, err := storage.SaveText("resume.pdf", []byte("%PDF"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestStorageGetFilePathStaysInUploadDir(t *testing.T) {
	storage := NewStorageService("/srv/uploads")
	assert.Equal(t, "/srv/uploads/passwd", storage.GetFilePath("../../etc/passwd"))
}
