package models

type AnalysisRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

type AnalysisResponse struct {
	Success          bool     `json:"success"`
	MatchScore       float64  `json:"match_score"`
	MatchedKeywords  []string `json:"matched_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	ResumeKeywords   []string `json:"resume_keywords"`
	TargetKeywords   []string `json:"target_keywords"`
	Recommendations  []string `json:"recommendations"`
	ConfidenceNotes  string   `json:"confidence_notes"`
	FinalSummary     string   `json:"final_summary"`
	ValidationIssues []string `json:"validation_issues"`
	Errors           []string `json:"errors"`
}

// NewAnalysisResponse builds the API payload from a finished workflow state.
// Rejected input produces success=false with every analysis field zeroed.
func NewAnalysisResponse(state WorkflowState) AnalysisResponse {
	if !state.Valid() {
		return AnalysisResponse{
			Success:          false,
			MatchedKeywords:  []string{},
			MissingKeywords:  []string{},
			ResumeKeywords:   []string{},
			TargetKeywords:   []string{},
			Recommendations:  []string{},
			ValidationIssues: orEmpty(state.ValidationIssues),
			Errors:           orEmpty(state.Errors),
		}
	}

	return AnalysisResponse{
		Success:          true,
		MatchScore:       state.MatchScore,
		MatchedKeywords:  orEmpty(state.MatchedKeywords),
		MissingKeywords:  orEmpty(state.MissingKeywords),
		ResumeKeywords:   orEmpty(state.ResumeKeywords),
		TargetKeywords:   orEmpty(state.TargetKeywords),
		Recommendations:  orEmpty(state.Recommendations),
		ConfidenceNotes:  state.ConfidenceNotes,
		FinalSummary:     state.FinalSummary,
		ValidationIssues: orEmpty(state.ValidationIssues),
		Errors:           orEmpty(state.Errors),
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
