package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	StageValidate  = "validate_input"
	StageExtract   = "extract_keywords"
	StageScore     = "analyze_and_score"
	StageSummarize = "format_output"
)

// Stage is one step of the analysis pipeline.
//
// Run returns the updated state. A non-nil error marks the stage as failed and
// the controller passes the returned state to Degrade, which resets the stage
// outputs to safe defaults and records one error entry.
type Stage interface {
	Name() string
	Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error)
	Degrade(state models.WorkflowState, err error) models.WorkflowState
}

// decodeStructured maps a model JSON object onto out. Loose typing is tolerated
// ("0.8" for a float, a lone string for a list).
func decodeStructured(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}

// uniqueKeywords trims entries, drops blanks and keeps the first occurrence of each keyword.
// The result is never nil.
func uniqueKeywords(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func clampScore(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
