package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrNotAFile          = errors.New("path is not a file")
	ErrUnsupportedFormat = errors.New("file must be a text file (.txt, .md, .text)")
	ErrInvalidEncoding   = errors.New("file must be valid UTF-8 text")
)

// SupportedTextExtensions are matched case-sensitively.
var SupportedTextExtensions = []string{".txt", ".md", ".text"}

type FileReader interface {
	ReadText(path string) (string, error)
}

type textFileReader struct{}

func NewFileReader() FileReader {
	return &textFileReader{}
}

func (r *textFileReader) ReadText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	if !IsSupportedTextFile(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, path)
	}

	return string(content), nil
}

func IsSupportedTextFile(name string) bool {
	return slices.Contains(SupportedTextExtensions, filepath.Ext(name))
}

// ValidateTextContent checks that text carries at least minWords whitespace separated words.
// The returned message is empty when the text is acceptable.
func ValidateTextContent(text string, minWords int) (bool, string) {
	if strings.TrimSpace(text) == "" {
		return false, "Text content is empty"
	}

	wordCount := len(strings.Fields(text))
	if wordCount < minWords {
		return false, fmt.Sprintf("Text content too short (%d words, minimum %d required)", wordCount, minWords)
	}

	return true, ""
}
