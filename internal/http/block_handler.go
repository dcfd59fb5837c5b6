package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"focozero-data/internal/service"
)

type BlockHandler struct {
	blocks service.BlockService
	logger *zap.Logger
}

func NewBlockHandler(blocks service.BlockService, logger *zap.Logger) *BlockHandler {
	return &BlockHandler{blocks: blocks, logger: logger}
}

func (h *BlockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/blocks" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/blocks" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/blocks/assign" && r.Method == http.MethodPost:
		h.Assign(w, r)
	case r.URL.Path == "/api/v1/blocks/worked" && r.Method == http.MethodPost:
		h.MarkWorked(w, r)
	case r.URL.Path == "/api/v1/blocks/reset-responsibles" && r.Method == http.MethodPost:
		h.ResetResponsibles(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/blocks/") && r.Method == http.MethodGet:
		h.Get(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request) {
	areaID := r.URL.Query().Get("idArea")
	resp, err := h.blocks.ListBlocks(r.Context(), service.ListBlocksRequest{AreaID: areaID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *BlockHandler) Get(w http.ResponseWriter, r *http.Request) {
	blockID := pathTail(r.URL.Path, "/api/v1/blocks/")
	resp, err := h.blocks.GetBlock(r.Context(), service.GetBlockRequest{BlockID: blockID})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *BlockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AreaID string `json:"idArea"`
		Number int    `json:"numero"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.blocks.CreateBlock(r.Context(), service.CreateBlockRequest{
		AreaID: body.AreaID,
		Number: body.Number,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(resp))
}

func (h *BlockHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID  string   `json:"idAgente"`
		BlockIDs []string `json:"idsQuarteiroes"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.blocks.AssignBlocks(r.Context(), service.AssignBlocksRequest{
		AgentID:  body.AgentID,
		BlockIDs: body.BlockIDs,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *BlockHandler) MarkWorked(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID  string   `json:"idAgente"`
		BlockIDs []string `json:"idsQuarteiroes"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.blocks.MarkWorked(r.Context(), service.MarkWorkedRequest{
		AgentID:  body.AgentID,
		BlockIDs: body.BlockIDs,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *BlockHandler) ResetResponsibles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.blocks.ResetResponsibles(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
