package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tstats",
		Name:      "dataset_available",
		Help:      "1 when the dataset was loaded at startup, 0 when its domain is unavailable.",
	}, []string{"dataset"})

	datasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tstats",
		Name:      "dataset_rows",
		Help:      "Rows kept after loading a dataset.",
	}, []string{"dataset"})

	dataAnomalies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tstats",
		Name:      "data_anomalies_total",
		Help:      "Data-quality anomalies absorbed while loading datasets.",
	}, []string{"dataset", "kind"})

	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tstats",
		Name:      "queries_total",
		Help:      "Aggregation queries by domain, level and outcome.",
	}, []string{"domain", "level", "status"})
)

func DatasetLoaded(dataset string, rows int) {
	datasetAvailable.WithLabelValues(dataset).Set(1)
	datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

func DatasetFailed(dataset string) {
	datasetAvailable.WithLabelValues(dataset).Set(0)
	datasetRows.WithLabelValues(dataset).Set(0)
}

func Anomalies(dataset, kind string, n int) {
	if n > 0 {
		dataAnomalies.WithLabelValues(dataset, kind).Add(float64(n))
	}
}

func Query(domain, level, status string) {
	queries.WithLabelValues(domain, level, status).Inc()
}
