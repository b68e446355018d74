package services

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeCompleted = "completed"
	outcomeHalted    = "halted"
	outcomeFault     = "fault"
)

var (
	analysisRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyzer_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"outcome"},
	)
	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_analyzer_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)
	stageFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_analyzer_stage_failures_total",
			Help: "Total number of stages that degraded to defaults",
		},
		[]string{"stage"},
	)
	workerBusy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_analyzer_worker_busy",
			Help: "Number of pipeline runs currently executing on the worker pool",
		},
	)
)

func init() {
	prometheus.MustRegister(analysisRunsTotal)
	prometheus.MustRegister(stageDuration)
	prometheus.MustRegister(stageFailuresTotal)
	prometheus.MustRegister(workerBusy)
}
