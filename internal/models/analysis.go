package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisSource string

const (
	SourceText AnalysisSource = "text"
	SourceFile AnalysisSource = "file"
)

// AnalysisRecord is the stored outcome of one analysis request.
type AnalysisRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Source          AnalysisSource `gorm:"type:text;not null" json:"source"`
	Success         bool           `gorm:"not null" json:"success"`
	InputType       InputType      `gorm:"type:text" json:"input_type,omitempty"`
	MatchScore      float64        `gorm:"type:decimal(3,2)" json:"match_score"`
	MatchedKeywords []string       `gorm:"serializer:json" json:"matched_keywords"`
	MissingKeywords []string       `gorm:"serializer:json" json:"missing_keywords"`
	Recommendations []string       `gorm:"serializer:json" json:"recommendations"`
	FinalSummary    string         `gorm:"type:text" json:"final_summary"`
	Errors          []string       `gorm:"serializer:json" json:"errors"`
	ErrorCount      int            `gorm:"not null;default:0" json:"error_count"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analyses"
}

func NewAnalysisRecord(source AnalysisSource, state WorkflowState, resp AnalysisResponse) *AnalysisRecord {
	return &AnalysisRecord{
		ID:              uuid.New(),
		Source:          source,
		Success:         resp.Success,
		InputType:       state.InputType,
		MatchScore:      resp.MatchScore,
		MatchedKeywords: resp.MatchedKeywords,
		MissingKeywords: resp.MissingKeywords,
		Recommendations: resp.Recommendations,
		FinalSummary:    resp.FinalSummary,
		Errors:          resp.Errors,
		ErrorCount:      len(resp.Errors),
		CreatedAt:       time.Now(),
	}
}
