package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"route-fare-planner/internal/platform/obs"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// writeError echoes the request id so clients can quote it when reporting failures.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	reqID, _ := r.Context().Value(obs.RequestIDKey).(string)
	writeJSON(w, r, status, errorResponse{Error: msg, RequestID: reqID})
}
