package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/weekplan/pkg/buildinfo"
	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
	"github.com/matzehuels/weekplan/pkg/pipeline"
)

// Handler holds the route handlers.
type Handler struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewHandler creates a new Handler.
func NewHandler(runner *pipeline.Runner, logger *log.Logger) *Handler {
	return &Handler{runner: runner, logger: logger}
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	// WeekStart is a date (YYYY-MM-DD) in the week to render.
	WeekStart string           `json:"week_start"`
	TimeZone  string           `json:"tz,omitempty"`
	Events    []calendar.Event `json:"events"`
	// Format is one of svg, png, pdf, json. Defaults to pdf.
	Format     string `json:"format,omitempty"`
	Page       int    `json:"page,omitempty"`
	FontFamily string `json:"font_family,omitempty"`
	WithOps    bool   `json:"with_ops,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// Render handles POST /v1/render. The query parameters format and page
// override the body.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	q := r.URL.Query()
	if f := q.Get("format"); f != "" {
		req.Format = f
	}
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid page %q", p))
			return
		}
		req.Page = n
	}

	opts, err := req.options()
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = h.logger

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		h.logger.Warn("render failed", "week", req.WeekStart, "err", err)
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	data := result.Artifacts[pipeline.ArtifactName(format, req.Page)]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Document-Id", result.Document.ID)
	w.Header().Set("X-Cache", cacheHeader(result.CacheInfo))
	if len(result.Document.Diagnostics) > 0 {
		w.Header().Set("X-Diagnostics", strconv.Itoa(len(result.Document.Diagnostics)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (req RenderRequest) options() (pipeline.Options, error) {
	loc := time.UTC
	if req.TimeZone != "" {
		l, err := time.LoadLocation(req.TimeZone)
		if err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unknown time zone %q", req.TimeZone)
		}
		loc = l
	}
	if req.WeekStart == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidWeek, "week_start is required")
	}
	day, err := time.ParseInLocation(time.DateOnly, req.WeekStart, loc)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidWeek, err, "invalid week_start %q", req.WeekStart)
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatPDF
	}

	opts := pipeline.Options{
		Events:     req.Events,
		WeekStart:  calendar.MondayOf(day),
		Formats:    []string{format},
		FontFamily: req.FontFamily,
		WithOps:    req.WithOps,
	}
	if pipeline.PerPage(format) {
		opts.Pages = []int{req.Page}
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func cacheHeader(info pipeline.CacheInfo) string {
	switch {
	case info.DocumentHit && info.RenderHit:
		return "hit"
	case info.DocumentHit:
		return "partial"
	}
	return "miss"
}

type errResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errResponse{Error: errors.UserMessage(err), Code: code})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidWeek, errors.ErrCodeMalformedEvent:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
