package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalysisResponseInvalidState(t *testing.T) {
	s := NewWorkflowState("short", "", "").WithValidity(false)
	s.ValidationIssues = []string{"Text content too short (1 words, minimum 50 required)"}
	s = s.WithError(s.ValidationIssues...)
	s.MatchScore = 0.9

	resp := NewAnalysisResponse(s)

	assert.False(t, resp.Success)
	assert.Equal(t, 0.0, resp.MatchScore)
	assert.Equal(t, s.ValidationIssues, resp.ValidationIssues)
	assert.Equal(t, s.Errors, resp.Errors)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"match_score": 0,
		"matched_keywords": [],
		"missing_keywords": [],
		"resume_keywords": [],
		"target_keywords": [],
		"recommendations": [],
		"confidence_notes": "",
		"final_summary": "",
		"validation_issues": ["Text content too short (1 words, minimum 50 required)"],
		"errors": ["Text content too short (1 words, minimum 50 required)"]
	}`, string(raw))
}

func TestNewAnalysisResponseValidState(t *testing.T) {
	s := NewWorkflowState("resume", "jd", "").WithValidity(true)
	s.ResumeKeywords = []string{"Go"}
	s.TargetKeywords = []string{"Go"}
	s.MatchedKeywords = []string{"Go"}
	s.MatchScore = 1
	s.FinalSummary = "Great match."

	resp := NewAnalysisResponse(s)

	assert.True(t, resp.Success)
	assert.Equal(t, 1.0, resp.MatchScore)
	assert.Equal(t, []string{"Go"}, resp.MatchedKeywords)
	assert.Equal(t, []string{}, resp.MissingKeywords, "lists never serialize as null")
	assert.Equal(t, []string{}, resp.ValidationIssues)
	assert.Equal(t, "Great match.", resp.FinalSummary)
}

func TestNewAnalysisRecord(t *testing.T) {
	s := NewWorkflowState("resume", "jd", "").WithValidity(true).WithError("Analysis and scoring error: timeout")
	s.InputType = InputTypeRoleKeywords
	resp := NewAnalysisResponse(s)

	record := NewAnalysisRecord(SourceFile, s, resp)

	assert.NotEqual(t, [16]byte{}, [16]byte(record.ID))
	assert.Equal(t, SourceFile, record.Source)
	assert.Equal(t, InputTypeRoleKeywords, record.InputType)
	assert.Equal(t, 1, record.ErrorCount)
	assert.Equal(t, "analyses", record.TableName())
}
