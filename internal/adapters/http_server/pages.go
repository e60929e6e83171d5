package httpserver

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tripplanner/internal/adapters/pdf"
	"tripplanner/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"money": domain.FormatAmount,
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Tiers   []domain.Tier
	Regions []domain.Region
	MinDays int
	MaxDays int
	Form    domain.TripRequest
	Banner  bool
	Error   string
	Plan    *domain.Plan
}

func (h *Handlers) page(form domain.TripRequest) pageData {
	return pageData{
		Tiers:   domain.Tiers(),
		Regions: domain.Regions(),
		MinDays: domain.MinDays,
		MaxDays: domain.MaxDays,
		Form:    form,
		Banner:  h.bannerOK,
	}
}

func defaultForm() domain.TripRequest {
	return domain.TripRequest{Days: domain.DefaultDays, Tier: domain.TierMidRange, Region: domain.Regions()[0]}
}

func renderPage(w http.ResponseWriter, status int, data pageData) {
	// render into a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Error().Err(err).Msg("render page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("write page failed")
	}
}

// parseTripForm returns the submitted request even when it is invalid so the
// form can be shown again with the user's values.
func parseTripForm(r *http.Request) (domain.TripRequest, error) {
	if err := r.ParseForm(); err != nil {
		return defaultForm(), fmt.Errorf("%w: unreadable form: %v", domain.ErrInvalidInput, err)
	}
	req := domain.TripRequest{
		Destination: strings.TrimSpace(r.PostFormValue("destination")),
		Interests:   strings.TrimSpace(r.PostFormValue("interests")),
		Tier:        domain.Tier(r.PostFormValue("tier")),
		Region:      domain.Region(r.PostFormValue("region")),
	}
	days, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("days")))
	if err != nil {
		req.Days = domain.DefaultDays
		return req, fmt.Errorf("%w: duration must be a whole number of days", domain.ErrInvalidInput)
	}
	req.Days = days
	return req, req.Validate()
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, h.page(defaultForm()))
}

func (h *Handlers) plan(w http.ResponseWriter, r *http.Request) {
	req, err := parseTripForm(r)
	if err == nil {
		var p domain.Plan
		if p, err = h.runPlan(r, req); err == nil {
			data := h.page(req)
			data.Plan = &p
			renderPage(w, http.StatusOK, data)
			return
		}
	}

	data := h.page(req)
	if errors.Is(err, domain.ErrInvalidInput) {
		data.Error = err.Error()
		renderPage(w, http.StatusBadRequest, data)
		return
	}
	log.Error().Err(err).Msg("plan failed")
	data.Error = "Something went wrong while planning your trip."
	renderPage(w, http.StatusInternalServerError, data)
}

func (h *Handlers) planPDF(w http.ResponseWriter, r *http.Request) {
	req, err := parseTripForm(r)
	if err != nil {
		writeInputError(w, err)
		return
	}
	p, err := h.runPlan(r, req)
	if err != nil {
		writeInputError(w, err)
		return
	}
	b, err := pdf.Render(p)
	if err != nil {
		log.Error().Err(err).Str("plan_id", p.ID).Msg("pdf render failed")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "could not render PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdfFilename(p)))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Msg("write pdf failed")
	}
}
