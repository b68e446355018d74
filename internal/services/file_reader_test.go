package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	reader := NewFileReader()

	for _, name := range []string{"resume.txt", "resume.md", "resume.text"} {
		path := writeFile(t, dir, name, []byte("Go engineer"))
		got, err := reader.ReadText(path)
		require.NoError(t, err, name)
		assert.Equal(t, "Go engineer", got)
	}
}

func TestReadTextErrors(t *testing.T) {
	dir := t.TempDir()
	reader := NewFileReader()

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "absent.txt"), want: ErrFileNotFound},
		{name: "directory", path: dir, want: ErrNotAFile},
		{name: "pdf", path: writeFile(t, dir, "resume.pdf", []byte("%PDF")), want: ErrUnsupportedFormat},
		{name: "uppercase extension", path: writeFile(t, dir, "resume.TXT", []byte("text")), want: ErrUnsupportedFormat},
		{name: "latin1", path: writeFile(t, dir, "latin1.txt", []byte{0x52, 0xe9, 0x73, 0x75, 0x6d, 0xe9}), want: ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.ReadText(tt.path)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateTextContent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		minWords int
		wantOK   bool
		wantMsg  string
	}{
		{name: "empty", text: "", minWords: 50, wantMsg: "Text content is empty"},
		{name: "whitespace", text: " \n\t ", minWords: 50, wantMsg: "Text content is empty"},
		{name: "ten words", text: words(10), minWords: 50, wantMsg: "Text content too short (10 words, minimum 50 required)"},
		{name: "exactly minimum", text: words(50), minWords: 50, wantOK: true},
		{name: "irregular spacing", text: "a\n\nb\tc   d", minWords: 4, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidateTextContent(tt.text, tt.minWords)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}
