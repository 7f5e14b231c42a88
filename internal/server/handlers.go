package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nugen/evgb/internal/codec/ghep"
	"github.com/nugen/evgb/internal/metrics"
	"github.com/nugen/evgb/internal/pipeline"
	"github.com/nugen/evgb/internal/roundtrip"
	"github.com/nugen/evgb/internal/storage"
)

// MaxBodyBytes bounds the size of an event upload.
const MaxBodyBytes = 32 << 20

// Handlers implements the HTTP API.
type Handlers struct {
	store     storage.TruthStore
	processor *pipeline.Processor
	ghep      *ghep.Reconstructor
	checker   *roundtrip.Checker
	metrics   *metrics.Metrics
}

// NewHandlers returns the API over store. m may be nil.
func NewHandlers(store storage.TruthStore, processor *pipeline.Processor, rec *ghep.Reconstructor, checker *roundtrip.Checker, m *metrics.Metrics) *Handlers {
	return &Handlers{store: store, processor: processor, ghep: rec, checker: checker, metrics: m}
}

type eventsResponse struct {
	Events []*storage.EventSummary `json:"events"`
}

type roundTripResponse struct {
	ID      string            `json:"id"`
	Summary roundtrip.Summary `json:"summary"`
	Report  *roundtrip.Report `json:"report"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MetricsHandler serves the prometheus registry, or 404 without metrics.
func (h *Handlers) MetricsHandler() http.Handler {
	if h.metrics == nil {
		return http.NotFoundHandler()
	}
	return h.metrics.Handler()
}

// CreateEvents accepts one event or JSON lines of events, translates and
// stores them.
func (h *Handlers) CreateEvents(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	events, err := pipeline.DecodeEvents(body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(events) == 0 {
		writeError(w, r, &APIError{Status: http.StatusBadRequest, Type: ErrTypeInvalidRequest, Message: "no events in request body"})
		return
	}

	saved, err := h.processor.ProcessBatch(r.Context(), events)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := eventsResponse{Events: make([]*storage.EventSummary, len(saved))}
	for i, e := range saved {
		resp.Events[i] = e.Summary()
	}
	AddLogField(r.Context(), "events", strconv.Itoa(len(saved)))
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.store.ListEvents(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*storage.EventSummary{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{Events: list})
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RetrieveRecord rebuilds the generator event record of a stored event.
func (h *Handlers) RetrieveRecord(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ghep.Retrieve(e.MCTruth, e.GTruth))
}

// RoundTrip reconstructs a stored event, translates it again and reports
// where the result differs from what is stored.
func (h *Handlers) RoundTrip(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	report := h.checker.CheckStored(e.MCTruth, e.GTruth)
	if h.metrics != nil {
		for _, d := range report.Divergences {
			h.metrics.Divergences.WithLabelValues(string(d.Type)).Inc()
		}
	}
	writeJSON(w, http.StatusOK, roundTripResponse{ID: e.ID, Summary: report.Summary(), Report: report})
}

func listOptions(r *http.Request) (storage.ListOptions, error) {
	var opts storage.ListOptions
	q := r.URL.Query()

	parse := func(name string, dst *int) error {
		v := q.Get(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return &APIError{Status: http.StatusBadRequest, Type: ErrTypeInvalidRequest, Message: "invalid " + name + " parameter"}
		}
		*dst = n
		return nil
	}

	if q.Has("run") {
		var run int
		if err := parse("run", &run); err != nil {
			return opts, err
		}
		opts.Run = &run
	}
	if err := parse("limit", &opts.Limit); err != nil {
		return opts, err
	}
	return opts, parse("offset", &opts.Offset)
}
