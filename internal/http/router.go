package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router stdlib http.ServeMux; the surface is small enough that a
// third-party router would buy nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterRoutes mounts every handler under its resource prefix.
func (r *Router) RegisterRoutes(
	areas *AreaHandler,
	blocks *BlockHandler,
	properties *PropertyHandler,
	visits *VisitHandler,
	logs *LogHandler,
	cycles *CycleHandler,
) {
	r.Handle("/api/v1/areas", areas)
	r.Handle("/api/v1/areas/", areas)
	r.Handle("/api/v1/blocks", blocks)
	r.Handle("/api/v1/blocks/", blocks)
	r.Handle("/api/v1/properties", properties)
	r.Handle("/api/v1/properties/", properties)
	r.Handle("/api/v1/visits", visits)
	r.Handle("/api/v1/visits/", visits)
	r.Handle("/api/v1/daily-logs", logs)
	r.Handle("/api/v1/daily-logs/", logs)
	r.Handle("/api/v1/weekly-logs", logs)
	r.Handle("/api/v1/weekly-logs/", logs)
	r.Handle("/api/v1/cycle/", cycles)

	r.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok("ok"))
	}))
}
