// Package metrics exposes the Prometheus collectors shared by the
// orchestrator and the preview server. Collectors register once at package
// init; Handler serves them for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScenesBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kmlscene_scenes_built_total",
		Help: "Total number of scenes assembled from KML documents",
	})
	RenderPassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kmlscene_render_passes_total",
		Help: "Total number of render passes run over scenes",
	})
	RenderablesConstructedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kmlscene_renderables_constructed_total",
		Help: "Total number of renderables constructed by geometry adapters",
	})
	BalloonsRenderedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kmlscene_balloons_rendered_total",
		Help: "Total number of feature balloons expanded",
	})
	RendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kmlscene_renders_total",
		Help: "Total renderer invocations by renderer name",
	}, []string{"renderer"})
	RenderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kmlscene_render_duration_ms",
		Help:    "Generate pipeline duration in milliseconds by renderer name",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"renderer"})
)

func init() {
	prometheus.MustRegister(ScenesBuiltTotal)
	prometheus.MustRegister(RenderPassesTotal)
	prometheus.MustRegister(RenderablesConstructedTotal)
	prometheus.MustRegister(BalloonsRenderedTotal)
	prometheus.MustRegister(RendersTotal)
	prometheus.MustRegister(RenderDurationMs)
}

// Handler returns the scrape endpoint for the registered collectors.
func Handler() http.Handler { return promhttp.Handler() }
