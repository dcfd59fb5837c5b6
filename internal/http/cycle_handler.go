package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"focozero-data/internal/service"
)

type CycleHandler struct {
	cycles service.CycleService
	logger *zap.Logger
}

func NewCycleHandler(cycles service.CycleService, logger *zap.Logger) *CycleHandler {
	return &CycleHandler{cycles: cycles, logger: logger}
}

func (h *CycleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/cycle/summary" && r.Method == http.MethodGet:
		h.Summary(w, r)
	case r.URL.Path == "/api/v1/cycle/reset" && r.Method == http.MethodPost:
		h.Reset(w, r)
	case r.URL.Path == "/api/v1/cycle/close" && r.Method == http.MethodPost:
		h.Close(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *CycleHandler) Summary(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cycles.Summary(r.Context(), service.CycleRequest{CallerID: callerID(r)})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *CycleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cycles.Reset(r.Context(), service.CycleRequest{CallerID: callerID(r)})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *CycleHandler) Close(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cycles.CloseCycle(r.Context(), service.CycleRequest{CallerID: callerID(r)})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
