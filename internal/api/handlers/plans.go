package handlers

import (
	"errors"
	"log"
	"net/http"
	"route-fare-planner/internal/api/dto"
	"route-fare-planner/internal/dataset"
	"route-fare-planner/internal/domain"
	"route-fare-planner/internal/report"
	"route-fare-planner/internal/services"
	"strconv"
	"strings"
)

const (
	defaultTop = 5
	maxTop     = 100
)

type PlanHandler struct {
	// Dataset file, re-read on every request so refreshed prices show up.
	DataPath string
	// Called once per successful response; may be nil.
	OnServed func()
}

// Plans returns the top ranked plans as JSON.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	top, err := parseTop(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plans, ok := h.load(w, r)
	if !ok {
		return
	}
	ranked := services.RankPlans(plans, top)

	res := dto.ListPlanResponse{Plans: make([]dto.PlanResponse, 0, len(ranked))}
	for i, p := range ranked {
		legs := make([]dto.LegResponse, 0, len(p.Legs))
		for _, l := range p.Legs {
			legs = append(legs, dto.LegResponse{
				Mode:          string(l.Mode),
				Origin:        l.Origin,
				Destination:   l.Destination,
				Cost:          l.Cost,
				DurationHours: l.Duration,
				PriceKey:      l.PriceKey,
				Notes:         l.Notes,
			})
		}

		risks := p.Risks
		if risks == nil {
			risks = []string{}
		}
		res.Plans = append(res.Plans, dto.PlanResponse{
			Rank:               i + 1,
			Strategy:           p.Strategy,
			Date:               report.PlanDate(p),
			TotalCost:          p.TotalCost(),
			TotalDurationHours: p.TotalDuration(),
			Legs:               legs,
			Risks:              risks,
		})
	}

	h.served()
	writeJSON(w, r, http.StatusOK, res)
}

// Summary returns the markdown table for all plans, or the top N when ?top is set.
func (h *PlanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	plans, ok := h.load(w, r)
	if !ok {
		return
	}

	top := len(plans)
	if r.URL.Query().Has("top") {
		n, err := parseTop(r)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		top = n
	}

	md := report.Markdown(services.RankPlansByName(plans, top))

	h.served()
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(md)); err != nil {
		log.Printf("write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func (h *PlanHandler) load(w http.ResponseWriter, r *http.Request) ([]domain.RoutePlan, bool) {
	ds, err := dataset.Load(h.DataPath)
	if err != nil {
		log.Printf("load dataset failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	plans, err := services.BuildPlans(ds)
	if err != nil {
		var fe *dataset.FieldError
		if errors.As(err, &fe) {
			log.Printf("dataset is malformed: %v", err)
			writeError(w, r, http.StatusUnprocessableEntity, fe.Error())
			return nil, false
		}
		log.Printf("build plans failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return plans, true
}

func (h *PlanHandler) served() {
	if h.OnServed != nil {
		h.OnServed()
	}
}

func parseTop(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("top"))
	if v == "" {
		return defaultTop, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > maxTop {
		return 0, errors.New("top must be an integer between 0 and 100")
	}
	return n, nil
}
