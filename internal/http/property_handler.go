package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"focozero-data/internal/service"
)

type PropertyHandler struct {
	properties service.PropertyService
	logger     *zap.Logger
}

func NewPropertyHandler(properties service.PropertyService, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{properties: properties, logger: logger}
}

func (h *PropertyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/properties" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/properties" && r.Method == http.MethodPost:
		h.Create(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/properties/") && r.Method == http.MethodGet:
		h.Get(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/properties/") && r.Method == http.MethodPut:
		h.Update(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	blockID := r.URL.Query().Get("idQuarteirao")
	resp, err := h.properties.ListProperties(r.Context(), service.ListPropertiesRequest{BlockID: blockID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	propertyID := pathTail(r.URL.Path, "/api/v1/properties/")
	resp, err := h.properties.GetProperty(r.Context(), service.GetPropertyRequest{PropertyID: propertyID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		BlockID     string `json:"idQuarteirao"`
		Position    int    `json:"posicao"`
		Address     string `json:"endereco"`
		PType       string `json:"tipo"`
		Inhabitants int    `json:"qtdHabitantes"`
		Dogs        int    `json:"qtdCachorros"`
		Cats        int    `json:"qtdGatos"`
		Note        string `json:"observacao"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.properties.CreateProperty(r.Context(), service.CreatePropertyRequest{
		BlockID:     body.BlockID,
		Position:    body.Position,
		Address:     body.Address,
		PType:       body.PType,
		Inhabitants: body.Inhabitants,
		Dogs:        body.Dogs,
		Cats:        body.Cats,
		Note:        body.Note,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(resp))
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	propertyID := pathTail(r.URL.Path, "/api/v1/properties/")

	// Pointer fields: absent keys stay untouched, present keys are
	// applied, including an explicit status.
	var body struct {
		Address     *string `json:"endereco"`
		PType       *string `json:"tipo"`
		Inhabitants *int    `json:"qtdHabitantes"`
		Dogs        *int    `json:"qtdCachorros"`
		Cats        *int    `json:"qtdGatos"`
		Note        *string `json:"observacao"`
		Status      *string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.properties.UpdateProperty(r.Context(), service.UpdatePropertyRequest{
		PropertyID:  propertyID,
		Address:     body.Address,
		PType:       body.PType,
		Inhabitants: body.Inhabitants,
		Dogs:        body.Dogs,
		Cats:        body.Cats,
		Note:        body.Note,
		Status:      body.Status,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
