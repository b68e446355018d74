package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type StorageService interface {
	SaveText(originalName string, content []byte) (string, string, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveText stores an uploaded resume under a unique name that keeps the original extension.
func (s *storageService) SaveText(originalName string, content []byte) (string, string, error) {
	if !IsSupportedTextFile(originalName) {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, originalName)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), filepath.Ext(originalName))
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, content, 0600); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

func (s *storageService) DeleteFile(filename string) error {
	if err := os.Remove(s.GetFilePath(filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
