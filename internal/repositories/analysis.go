package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrHistoryDisabled  = errors.New("analysis history is disabled")
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type AnalysisRepository interface {
	Create(record *models.AnalysisRecord) error
	FindByID(id uuid.UUID) (*models.AnalysisRecord, error)
	FindRecent(limit int) ([]models.AnalysisRecord, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &record, nil
}

func (r *analysisRepository) FindRecent(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	if err := r.db.Order("created_at DESC").Limit(ClampLimit(limit)).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find analyses: %w", err)
	}
	return records, nil
}

// ClampLimit bounds a caller supplied page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

// disabledRepository is used when no database is configured.
type disabledRepository struct{}

func NewDisabledAnalysisRepository() AnalysisRepository {
	return disabledRepository{}
}

func (disabledRepository) Create(*models.AnalysisRecord) error {
	return ErrHistoryDisabled
}

func (disabledRepository) FindByID(uuid.UUID) (*models.AnalysisRecord, error) {
	return nil, ErrHistoryDisabled
}

func (disabledRepository) FindRecent(int) ([]models.AnalysisRecord, error) {
	return nil, ErrHistoryDisabled
}
