package handlers

import (
	"log"
	"net/http"
	"route-fare-planner/internal/api/dto"
	"route-fare-planner/internal/ports"
)

// FareHandler exposes the latest recorded fare per price key.
type FareHandler struct {
	History ports.FareHistory
}

func (h *FareHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeError(w, r, http.StatusNotFound, "fare history is not configured")
		return
	}

	records, err := h.History.Latest(r.Context())
	if err != nil {
		log.Printf("latest fares failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListFaresResponse{
		Fares: make([]dto.FareResponse, 0, len(records)),
	}
	for _, f := range records {
		res.Fares = append(res.Fares, dto.FareResponse{
			Key:           f.Key,
			Origin:        f.Origin,
			Destination:   f.Destination,
			DepartureDate: f.DepartureDate,
			Amount:        f.Amount,
			Currency:      f.Currency,
			RunID:         f.RunID,
			FetchedAt:     f.FetchedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
