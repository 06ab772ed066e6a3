package summarizer

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SummaryMetricsRecorder records summary outcomes. Tests swap in a fake.
type SummaryMetricsRecorder interface {
	// RecordLength records a summary's length in runes.
	RecordLength(length int)
	// RecordLimitExceeded counts a summary longer than the character limit.
	RecordLimitExceeded()
	// RecordCompliance sets whether the latest summary was within the limit.
	RecordCompliance(withinLimit bool)
	// RecordDuration records one provider call.
	RecordDuration(duration time.Duration)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder on the default
// Prometheus registry.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// registerOrExisting registers c, or returns the collector already
// registered under the same descriptor.
func registerOrExisting[T prometheus.Collector](c T) T {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

// NewPrometheusSummaryMetrics returns the process-wide recorder.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: registerOrExisting(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "newswave_summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{100, 300, 500, 700, 900, 1100, 1500, 2000},
			})),
			exceededCounter: registerOrExisting(prometheus.NewCounter(prometheus.CounterOpts{
				Name: "newswave_summary_limit_exceeded_total",
				Help: "Total number of summaries exceeding the configured character limit",
			})),
			complianceGauge: registerOrExisting(prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "newswave_summary_limit_compliance",
				Help: "1 if the latest summary was within the character limit, else 0",
			})),
			durationHistogram: registerOrExisting(prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "newswave_summarization_duration_seconds",
				Help:    "Time taken to generate a summary via an AI API",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			})),
		}
	})
	return prometheusMetricsInstance
}

func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

func (p *PrometheusSummaryMetrics) RecordLimitExceeded() {
	p.exceededCounter.Inc()
}

func (p *PrometheusSummaryMetrics) RecordCompliance(withinLimit bool) {
	if withinLimit {
		p.complianceGauge.Set(1)
		return
	}
	p.complianceGauge.Set(0)
}

func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
