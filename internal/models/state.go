package models

import "slices"

type InputType string

const (
	InputTypeJobDescription InputType = "job_description"
	InputTypeRoleKeywords   InputType = "role_keywords"
)

// ParseInputType maps the value reported by the validator to a known input type.
// Anything unrecognised falls back to InputTypeJobDescription.
func ParseInputType(value string) InputType {
	switch InputType(value) {
	case InputTypeRoleKeywords:
		return InputTypeRoleKeywords
	default:
		return InputTypeJobDescription
	}
}

// WorkflowState is the value threaded through the analysis pipeline. Each stage
// receives a copy and returns the updated state.
//
// List fields written by a stage are never nil once that stage has run, so a nil
// list means the stage never executed.
type WorkflowState struct {
	// Inputs
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	FilePath       string `json:"file_path,omitempty"`

	// Validation
	IsValid          *bool     `json:"is_valid,omitempty"`
	ValidationIssues []string  `json:"validation_issues,omitempty"`
	InputType        InputType `json:"input_type,omitempty"`
	ExtractionPlan   string    `json:"extraction_plan,omitempty"`

	// Extraction
	ResumeKeywords  []string `json:"resume_keywords,omitempty"`
	TargetKeywords  []string `json:"target_keywords,omitempty"`
	ExtractionNotes string   `json:"extraction_notes,omitempty"`

	// Scoring
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	MissingKeywords []string `json:"missing_keywords,omitempty"`
	MatchScore      float64  `json:"match_score"`
	ConfidenceNotes string   `json:"confidence_notes,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	// Final output
	FinalSummary string         `json:"final_summary,omitempty"`
	JSONOutput   map[string]any `json:"json_output,omitempty"`

	// Control
	CurrentStep string   `json:"current_step,omitempty"`
	Errors      []string `json:"errors"`
}

func NewWorkflowState(resumeText, jobDescription, filePath string) WorkflowState {
	return WorkflowState{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		FilePath:       filePath,
		Errors:         []string{},
	}
}

// Valid reports whether validation ran and accepted the input.
func (s WorkflowState) Valid() bool {
	return s.IsValid != nil && *s.IsValid
}

// WithValidity returns a copy of the state with IsValid set.
func (s WorkflowState) WithValidity(valid bool) WorkflowState {
	s.IsValid = &valid
	return s
}

// WithError returns a copy of the state with msgs appended to the error log.
// The backing array is cloned so earlier copies of the state keep their log.
func (s WorkflowState) WithError(msgs ...string) WorkflowState {
	if len(msgs) == 0 {
		return s
	}
	errs := slices.Clone(s.Errors)
	if errs == nil {
		errs = make([]string, 0, len(msgs))
	}
	s.Errors = append(errs, msgs...)
	return s
}

// AnalysisSummary is a compact view of a finished run, used for logging and history.
type AnalysisSummary struct {
	IsValid      bool    `json:"is_valid"`
	MatchScore   float64 `json:"match_score"`
	MatchedCount int     `json:"matched_count"`
	MissingCount int     `json:"missing_count"`
	HasErrors    bool    `json:"has_errors"`
}

func (s WorkflowState) Summary() AnalysisSummary {
	return AnalysisSummary{
		IsValid:      s.Valid(),
		MatchScore:   s.MatchScore,
		MatchedCount: len(s.MatchedKeywords),
		MissingCount: len(s.MissingKeywords),
		HasErrors:    len(s.Errors) > 0,
	}
}
