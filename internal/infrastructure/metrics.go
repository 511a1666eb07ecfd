package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics. Sources are labelled by domain name (qa, productivity,
// csat, refunds, chargebacks, business) and fetch outcomes by ok/empty.
var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opsdash",
		Subsystem: "fetch",
		Name:      "requests_total",
		Help:      "Sheet fetches by source and outcome.",
	}, []string{"source", "outcome"})

	RecordsParsed = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "opsdash",
		Subsystem: "pipeline",
		Name:      "records",
		Help:      "Records in the current snapshot by source.",
	}, []string{"source"})

	ReloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "opsdash",
		Subsystem: "pipeline",
		Name:      "reload_duration_seconds",
		Help:      "Wall time of a full fetch-and-parse reload.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObserveFetch records one fetch outcome.
func ObserveFetch(source string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "empty"
	}
	FetchTotal.WithLabelValues(source, outcome).Inc()
}
