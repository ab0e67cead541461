package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	batchesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideagen",
			Name:      "batches_generated_total",
			Help:      "Total idea batches generated, by language",
		},
		[]string{"lang"},
	)

	ideasGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideagen",
			Name:      "ideas_generated_total",
			Help:      "Total individual ideas generated, by language",
		},
		[]string{"lang"},
	)

	filterFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ideagen",
			Name:      "language_filter_fallbacks_total",
			Help:      "Generations where the language filter matched nothing and fell back to the unfiltered corpus",
		},
	)

	extractionPages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideagen",
			Name:      "extraction_pages_total",
			Help:      "PDF pages processed, by source (native, ocr)",
		},
		[]string{"source"},
	)

	extractionJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideagen",
			Name:      "extraction_jobs_total",
			Help:      "Extraction jobs finished, by result (success, error)",
		},
		[]string{"result"},
	)

	ocrRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideagen",
			Name:      "ocr_requests_total",
			Help:      "OCR provider requests by provider, model and result",
		},
		[]string{"provider", "model", "result"},
	)

	ocrLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ideagen",
			Name:      "ocr_request_duration_seconds",
			Help:      "Duration of OCR provider requests by provider and model",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(batchesGenerated, ideasGenerated, filterFallbacks,
		extractionPages, extractionJobs, ocrRequests, ocrLatency)
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func IncBatch(lang string, ideas int) {
	batchesGenerated.WithLabelValues(lang).Inc()
	ideasGenerated.WithLabelValues(lang).Add(float64(ideas))
}

func IncFilterFallback() { filterFallbacks.Inc() }

func IncExtractionPage(source string) { extractionPages.WithLabelValues(source).Inc() }

func IncExtractionJob(result string) { extractionJobs.WithLabelValues(result).Inc() }

func ObserveOCR(provider, model, result string, dur time.Duration) {
	ocrRequests.WithLabelValues(provider, model, result).Inc()
	ocrLatency.WithLabelValues(provider, model).Observe(dur.Seconds())
}
