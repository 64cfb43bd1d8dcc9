package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector junta los contadores Prometheus del servicio.
// Los handlers lo alimentan; /metrics lo expone para scrape.
type Collector struct {
	requestsCreated prometheus.Counter
	applications    prometheus.Counter
	accepts         *prometheus.CounterVec
	ratings         prometheus.Counter
	httpStatus      *prometheus.CounterVec
	httpLatency     prometheus.Histogram
}

// NewCollector registra los contadores en el registry dado.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dogwalks_walk_requests_created_total",
			Help: "Solicitudes de paseo creadas.",
		}),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dogwalks_applications_submitted_total",
			Help: "Postulaciones de paseadores registradas.",
		}),
		accepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dogwalks_accepts_total",
			Help: "Intentos de aceptación por resultado (won|conflict).",
		}, []string{"outcome"}),
		ratings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dogwalks_ratings_recorded_total",
			Help: "Calificaciones registradas.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dogwalks_http_status_total",
			Help: "Respuestas HTTP por status code.",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dogwalks_http_latency_seconds",
			Help:    "Latencia de requests HTTP en segundos.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.requestsCreated,
		c.applications,
		c.accepts,
		c.ratings,
		c.httpStatus,
		c.httpLatency,
	)

	return c
}

func (c *Collector) RecordRequestCreated() { c.requestsCreated.Inc() }
func (c *Collector) RecordApplication()    { c.applications.Inc() }
func (c *Collector) RecordRating()         { c.ratings.Inc() }

func (c *Collector) RecordAcceptWon()      { c.accepts.WithLabelValues("won").Inc() }
func (c *Collector) RecordAcceptConflict() { c.accepts.WithLabelValues("conflict").Inc() }

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordHTTPLatency(d time.Duration) {
	c.httpLatency.Observe(d.Seconds())
}

// Handler devuelve el endpoint de scrape para el registry dado.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
