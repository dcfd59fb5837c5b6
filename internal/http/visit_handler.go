package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"focozero-data/internal/domain"
	"focozero-data/internal/service"
)

type VisitHandler struct {
	visits service.VisitService
	logger *zap.Logger
}

func NewVisitHandler(visits service.VisitService, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{visits: visits, logger: logger}
}

func (h *VisitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/visits" && r.Method == http.MethodPost:
		h.Record(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/visits/") && r.Method == http.MethodGet:
		h.Get(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *VisitHandler) Record(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PropertyID    string               `json:"idImovel"`
		AgentID       string               `json:"idAgente"`
		Date          string               `json:"dataVisita"`
		Outcome       string               `json:"status"`
		Deposits      domain.DepositCounts `json:"depositosInspecionados"`
		DepEliminated int                  `json:"qtdDepEliminado"`
		SampleInitial int                  `json:"amostraInicial"`
		SampleFinal   int                  `json:"amostraFinal"`
		FociCount     int                  `json:"qtdFocos"`
		LarvicideQty  float64              `json:"qtdLarvicida"`
		DepTreated    int                  `json:"qtdDepTratado"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.visits.RecordVisit(r.Context(), service.RecordVisitRequest{
		PropertyID:    body.PropertyID,
		AgentID:       body.AgentID,
		Date:          body.Date,
		Outcome:       body.Outcome,
		Deposits:      body.Deposits,
		DepEliminated: body.DepEliminated,
		SampleInitial: body.SampleInitial,
		SampleFinal:   body.SampleFinal,
		FociCount:     body.FociCount,
		LarvicideQty:  body.LarvicideQty,
		DepTreated:    body.DepTreated,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(resp))
}

func (h *VisitHandler) Get(w http.ResponseWriter, r *http.Request) {
	visitID := pathTail(r.URL.Path, "/api/v1/visits/")
	resp, err := h.visits.GetVisit(r.Context(), service.GetVisitRequest{VisitID: visitID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
