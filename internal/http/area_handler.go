package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"focozero-data/internal/service"
)

type AreaHandler struct {
	areas  service.AreaService
	logger *zap.Logger
}

func NewAreaHandler(areas service.AreaService, logger *zap.Logger) *AreaHandler {
	return &AreaHandler{areas: areas, logger: logger}
}

func (h *AreaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/areas" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/areas" && r.Method == http.MethodPost:
		h.Create(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/areas/") && r.Method == http.MethodGet:
		h.Get(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/areas/") && r.Method == http.MethodPut:
		h.Update(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/areas/") && r.Method == http.MethodDelete:
		h.Delete(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.areas.ListAreas(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AreaHandler) Get(w http.ResponseWriter, r *http.Request) {
	areaID := pathTail(r.URL.Path, "/api/v1/areas/")
	resp, err := h.areas.GetArea(r.Context(), service.GetAreaRequest{AreaID: areaID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name          string `json:"name"`
		MapURL        string `json:"mapUrl"`
		ResponsibleID string `json:"idResponsavel"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.areas.CreateArea(r.Context(), service.CreateAreaRequest{
		Name:          body.Name,
		MapURL:        body.MapURL,
		ResponsibleID: body.ResponsibleID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(resp))
}

func (h *AreaHandler) Update(w http.ResponseWriter, r *http.Request) {
	areaID := pathTail(r.URL.Path, "/api/v1/areas/")
	var body struct {
		Name          string `json:"name"`
		MapURL        string `json:"mapUrl"`
		ResponsibleID string `json:"idResponsavel"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.areas.UpdateArea(r.Context(), service.UpdateAreaRequest{
		AreaID:        areaID,
		Name:          body.Name,
		MapURL:        body.MapURL,
		ResponsibleID: body.ResponsibleID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *AreaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	areaID := pathTail(r.URL.Path, "/api/v1/areas/")
	resp, err := h.areas.DeleteArea(r.Context(), service.DeleteAreaRequest{AreaID: areaID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
