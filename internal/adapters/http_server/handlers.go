package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tripplanner/internal/adapters/observability"
	"tripplanner/internal/app"
	"tripplanner/internal/domain"
)

type Handlers struct {
	Planner *app.PlannerService
	// Now supplies the calendar month for estimates; defaults to time.Now.
	Now func() time.Time
	// BannerPath is the local banner image. A missing file hides the banner.
	BannerPath string

	bannerOK bool
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Now == nil {
		h.Now = time.Now
	}
	h.bannerOK = h.checkBanner()

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/static/banner", h.banner)

	s.mux.Get("/", h.index)
	s.mux.Post("/plan", h.plan)
	s.mux.Post("/plan/pdf", h.planPDF)

	s.mux.Get("/v1/catalog", h.getCatalog)
	s.mux.Get("/v1/estimate", h.getEstimate)
	s.mux.Post("/v1/itineraries", h.createItinerary)
}

func (h *Handlers) checkBanner() bool {
	if h.BannerPath == "" {
		return false
	}
	st, err := os.Stat(h.BannerPath)
	if err != nil || st.IsDir() {
		log.Warn().Str("path", h.BannerPath).Err(err).Msg("banner image unavailable, page renders without it")
		return false
	}
	return true
}

func (h *Handlers) banner(w http.ResponseWriter, r *http.Request) {
	if !h.bannerOK {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.BannerPath)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeInputError answers 400 for ErrInvalidInput and 500 for anything else.
func writeInputError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeProblem(w, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	log.Error().Err(err).Msg("unexpected planner error")
	writeProblem(w, http.StatusInternalServerError, "Internal error", "")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog())
}

// getEstimate: /v1/estimate?days=5&tier=Budget&region=South+Asia[&month=7]
func (h *Handlers) getEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days, err := strconv.Atoi(q.Get("days"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid input", "days must be a whole number")
		return
	}
	month := int(h.Now().Month())
	if ms := q.Get("month"); ms != "" {
		if month, err = strconv.Atoi(ms); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid input", "month must be a whole number")
			return
		}
	}
	req := domain.TripRequest{Days: days, Tier: domain.Tier(q.Get("tier")), Region: domain.Region(q.Get("region"))}

	est, err := h.Planner.Estimate(req, month)
	if err != nil {
		writeInputError(w, err)
		return
	}
	observability.ObserveEstimate(string(est.Tier), string(est.Season))

	etag, body := calcETagAndBody(toEstimate(est))
	// identical inputs give identical estimates, so the ETag is stable
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write estimate body")
	}
}

func (h *Handlers) createItinerary(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	req.Destination = strings.TrimSpace(req.Destination)
	req.Interests = strings.TrimSpace(req.Interests)

	p, err := h.runPlan(r, req)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPlan(p))
}

// runPlan binds the current month and records plan metrics.
func (h *Handlers) runPlan(r *http.Request, req domain.TripRequest) (domain.Plan, error) {
	p, err := h.Planner.Plan(r.Context(), req, int(h.Now().Month()))
	if err != nil {
		return domain.Plan{}, err
	}
	observability.ObserveEstimate(string(p.Estimate.Tier), string(p.Estimate.Season))
	if p.Failure != nil {
		observability.ObserveItineraryFailure(string(p.Failure.Kind))
	}
	return p, nil
}

func pdfFilename(p domain.Plan) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, p.Request.Destination)
	if name == "" {
		name = "trip"
	}
	return fmt.Sprintf("itinerary-%s-%dd.pdf", strings.ToLower(name), p.Request.Days)
}
