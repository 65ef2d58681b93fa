package uploadhttp

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sir_venger/upload_lite/internal/models"
)

const metricsNamespace = "upload"

type metrics struct {
	requests *prometheus.CounterVec
	files    prometheus.Counter
	bytes    prometheus.Counter
	duration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Upload requests by response status",
		}, []string{"status"}),
		files: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_total",
			Help:      "Files written to the upload directory",
		}),
		bytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bytes_total",
			Help:      "Bytes written to the upload directory",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Upload request duration",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// observe учитывает и неуспешные запросы: записанные до ошибки файлы остаются на диске.
func (m *metrics) observe(status int, res models.UploadResult, took time.Duration) {
	m.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	m.files.Add(float64(len(res.Files)))
	m.bytes.Add(float64(res.Bytes()))
	m.duration.Observe(took.Seconds())
}
