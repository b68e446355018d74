package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type countingAnalyzer struct {
	running  atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	finished atomic.Int32
}

func (c *countingAnalyzer) Run(_ context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	n := c.running.Add(1)
	for {
		peak := c.peak.Load()
		if n <= peak || c.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(c.delay)
	c.running.Add(-1)
	c.finished.Add(1)
	state.CurrentStep = "done:" + state.ResumeText
	return state, nil
}

func TestWorkerSubmitReturnsOwnResult(t *testing.T) {
	analyzer := &countingAnalyzer{delay: 5 * time.Millisecond}
	w := NewWorker(analyzer, 2, zap.NewNop())
	w.Start(context.Background())
	defer w.Stop()

	var wg sync.WaitGroup
	results := make([]models.WorkflowState, 6)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			final, err := w.Submit(context.Background(), models.NewWorkflowState(string(rune('a'+i)), "", ""))
			assert.NoError(t, err)
			results[i] = final
		}(i)
	}
	wg.Wait()

	for i, final := range results {
		assert.Equal(t, "done:"+string(rune('a'+i)), final.CurrentStep)
	}
	assert.Equal(t, int32(6), analyzer.finished.Load())
	assert.LessOrEqual(t, analyzer.peak.Load(), int32(2))
}

func TestWorkerRejectsAfterStop(t *testing.T) {
	w := NewWorker(&countingAnalyzer{}, 1, zap.NewNop())
	w.Start(context.Background())
	w.Stop()
	w.Stop()

	_, err := w.Submit(context.Background(), models.NewWorkflowState("x", "", ""))
	require.ErrorIs(t, err, ErrWorkerStopped)
}

func TestWorkerSubmitHonoursCallerContext(t *testing.T) {
	w := NewWorker(&countingAnalyzer{}, 1, zap.NewNop())
	// Not started: nothing will pick the job up.
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := w.Submit(ctx, models.NewWorkflowState("x", "", ""))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
