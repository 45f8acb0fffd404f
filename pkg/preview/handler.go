package preview

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-kmlscene/internal/metrics"
	"github.com/goliatone/go-kmlscene/pkg/balloon"
	"github.com/goliatone/go-kmlscene/pkg/orchestrator"
)

// Handler owns the preview routes. Every render goes through the
// orchestrator so route output matches what library callers get.
type Handler struct {
	logger    *log.Logger
	generator *orchestrator.Orchestrator
	base      orchestrator.Request
	balloons  *balloon.Expander
}

// NewHandler builds a Handler serving the document described by the base
// request. The base request's Renderer field is ignored; each route picks
// its own renderer.
func NewHandler(l *log.Logger, generator *orchestrator.Orchestrator, base orchestrator.Request) *Handler {
	return &Handler{
		logger:    l,
		generator: generator,
		base:      base,
		balloons:  balloon.New(),
	}
}

// NewLogWriter wraps the writer/request pair with the handler's logger.
func (h *Handler) NewLogWriter(w http.ResponseWriter, r *http.Request) *LogWriter {
	return NewLogWriter(h.logger, w, r)
}

// HandleSceneJSON serves the scene JSON dump.
func (h *Handler) HandleSceneJSON() http.HandlerFunc {
	return h.handleRender("scenejson")
}

// HandleGeoJSON serves the GeoJSON export.
func (h *Handler) HandleGeoJSON() http.HandlerFunc {
	return h.handleRender("geojson")
}

// HandleReport serves the HTML report page.
func (h *Handler) HandleReport() http.HandlerFunc {
	return h.handleRender("htmlreport")
}

func (h *Handler) handleRender(rendererName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		renderer, err := h.generator.Renderer(rendererName)
		if err != nil {
			writer.WriteError(http.StatusInternalServerError, err)
			return
		}

		output, err := h.generator.Generate(r.Context(), h.requestFor(r, rendererName))
		if err != nil {
			writer.WriteError(http.StatusInternalServerError, err)
			return
		}

		writer.Write(Response{
			Status:      http.StatusOK,
			ContentType: renderer.ContentType(),
			Body:        output,
		})
	}
}

// HandleBalloon expands the description balloon for one feature.
func (h *Handler) HandleBalloon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		featureID := chi.URLParam(r, "id")

		sc, err := h.generator.Scene(r.Context(), h.requestFor(r, ""))
		if err != nil {
			writer.WriteError(http.StatusInternalServerError, err)
			return
		}

		binding, ok := sc.FindBinding(featureID)
		if !ok {
			writer.Write(Response{
				Status:      http.StatusNotFound,
				ContentType: "application/json",
				Body:        []byte(`{"error_msg":"feature not found"}` + "\n"),
			})
			return
		}

		html := h.balloons.ExpandFeature(binding.Feature, binding.Style)
		metrics.BalloonsRenderedTotal.Inc()

		writer.Write(Response{
			Status:      http.StatusOK,
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(html),
		})
	}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth() http.HandlerFunc {
	type res struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		body, err := json.Marshal(res{Status: "ok"})
		if err != nil {
			writer.WriteError(http.StatusInternalServerError, err)
			return
		}

		writer.Write(Response{
			Status:      http.StatusOK,
			ContentType: "application/json",
			Body:        body,
		})
	}
}

// requestFor clones the base request and applies per-request query options:
// preset, title, feature (repeatable), layer (repeatable), pretty.
func (h *Handler) requestFor(r *http.Request, rendererName string) orchestrator.Request {
	req := h.base
	req.Renderer = rendererName

	query := r.URL.Query()
	if preset := strings.TrimSpace(query.Get("preset")); preset != "" {
		req.Preset = preset
	}
	if title := strings.TrimSpace(query.Get("title")); title != "" {
		req.Title = title
	}
	if features := query["feature"]; len(features) > 0 {
		req.FeatureIDs = append(append([]string(nil), req.FeatureIDs...), features...)
	}

	options := req.RenderOptions
	if layers := query["layer"]; len(layers) > 0 {
		options.Layers = append(append([]string(nil), options.Layers...), layers...)
	}
	if pretty := query.Get("pretty"); pretty == "1" || strings.EqualFold(pretty, "true") {
		options.Pretty = true
	}
	req.RenderOptions = options

	return req
}
