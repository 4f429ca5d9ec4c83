package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

const namespace = "jsdocmd"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	stageResults  *prom.CounterVec
	runOutcome    *prom.CounterVec
	documents     *prom.CounterVec
	sections      prom.Counter
	retries       prom.Counter
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a new
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Generation runs by final status",
		}, []string{"result"}),
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Rendered documents by whether the file changed",
		}, []string{"changed"}),
		sections: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sections_rendered_total",
			Help:      "Module sections rendered",
		}),
		retries: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "extract_retries_total",
			Help:      "Doc extractor retries after transient failures",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.runOutcome, pr.documents, pr.sections, pr.retries)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(result ResultLabel) {
	p.runOutcome.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncDocument(changed bool) {
	label := "false"
	if changed {
		label = "true"
	}
	p.documents.WithLabelValues(label).Inc()
}

func (p *PrometheusRecorder) AddSections(n int) {
	p.sections.Add(float64(n))
}

func (p *PrometheusRecorder) IncExtractRetry() {
	p.retries.Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// atomically replacing path.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return ferrors.FileSystemError("write metrics textfile").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
