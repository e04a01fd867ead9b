package api

import (
	"net/http"
	"route-fare-planner/internal/api/handlers"
	"route-fare-planner/internal/platform/metrics"
	"route-fare-planner/internal/ports"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type RouterConfig struct {
	DataPath string
	// Optional; /fares/latest answers 404 without it.
	History ports.FareHistory
	// Optional; /metrics is not mounted without it.
	Metrics        *metrics.Collector
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	planHandler := &handlers.PlanHandler{DataPath: cfg.DataPath}
	if cfg.Metrics != nil {
		planHandler.OnServed = cfg.Metrics.PlansServed.Inc
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}
	fareHandler := &handlers.FareHandler{History: cfg.History}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/plans", planHandler.Plans).Methods(http.MethodGet)
	r.HandleFunc("/summary", planHandler.Summary).Methods(http.MethodGet)
	r.HandleFunc("/fares/latest", fareHandler.Latest).Methods(http.MethodGet)

	var h http.Handler = r
	if len(cfg.AllowedOrigins) > 0 {
		h = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
			gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		)(h)
	}
	h = gorillahandlers.RecoveryHandler(gorillahandlers.PrintRecoveryStack(true))(h)

	return loggingMiddleware(h)
}
