package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrWorkerStopped = errors.New("worker pool stopped")

// Worker runs pipeline invocations on a fixed pool of goroutines.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	// Submit blocks until the run for state has finished.
	Submit(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error)
}

type job struct {
	ctx    context.Context
	state  models.WorkflowState
	result chan jobResult
}

type jobResult struct {
	state models.WorkflowState
	err   error
}

type worker struct {
	analyzer    AnalyzerService
	jobQueue    chan job
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	log         *zap.Logger
}

func NewWorker(analyzer AnalyzerService, concurrency int, log *zap.Logger) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		analyzer:    analyzer,
		jobQueue:    make(chan job),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		log:         log.Named("worker"),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
	w.log.Info("worker pool started", zap.Int("concurrency", w.concurrency))
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("worker pool stopped")
	})
}

// Submit implements Worker.
func (w *worker) Submit(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	select {
	case <-w.stopChan:
		return state, ErrWorkerStopped
	default:
	}

	j := job{ctx: ctx, state: state, result: make(chan jobResult, 1)}

	select {
	case w.jobQueue <- j:
	case <-w.stopChan:
		return state, ErrWorkerStopped
	case <-ctx.Done():
		return state, ctx.Err()
	}

	select {
	case res := <-j.result:
		return res.state, res.err
	case <-ctx.Done():
		return state, ctx.Err()
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case j := <-w.jobQueue:
			workerBusy.Inc()
			w.log.Debug("processing analysis", zap.Int("worker", workerID))
			final, err := w.analyzer.Run(j.ctx, j.state)
			workerBusy.Dec()
			j.result <- jobResult{state: final, err: err}
		}
	}
}
