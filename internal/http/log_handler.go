package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"focozero-data/internal/service"
)

// LogHandler daily and weekly rollup endpoints. Rebuilds are POSTs
// because they recompute and overwrite the singleton row; reads are
// keyed by the same (agent, area, date|week) triple as query params.
type LogHandler struct {
	daily  service.DailyLogService
	weekly service.WeeklyLogService
	logger *zap.Logger
}

func NewLogHandler(daily service.DailyLogService, weekly service.WeeklyLogService, logger *zap.Logger) *LogHandler {
	return &LogHandler{daily: daily, weekly: weekly, logger: logger}
}

func (h *LogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/daily-logs/rebuild" && r.Method == http.MethodPost:
		h.RebuildDaily(w, r)
	case r.URL.Path == "/api/v1/daily-logs" && r.Method == http.MethodGet:
		h.GetDaily(w, r)
	case r.URL.Path == "/api/v1/weekly-logs/rebuild" && r.Method == http.MethodPost:
		h.RebuildWeekly(w, r)
	case r.URL.Path == "/api/v1/weekly-logs" && r.Method == http.MethodGet:
		h.GetWeekly(w, r)
	case r.URL.Path == "/api/v1/weekly-logs/export" && r.Method == http.MethodGet:
		h.ExportWeekly(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/weekly-logs/") && r.Method == http.MethodPut:
		h.UpdateWeeklyNotes(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *LogHandler) RebuildDaily(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID  string `json:"idAgente"`
		AreaID   string `json:"idArea"`
		Date     string `json:"data"`
		Activity int    `json:"atividade"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.daily.Rebuild(r.Context(), service.RebuildDailyRequest{
		AgentID:  body.AgentID,
		AreaID:   body.AreaID,
		Date:     body.Date,
		Activity: body.Activity,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *LogHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.daily.GetDailyLog(r.Context(), service.GetDailyLogRequest{
		AgentID: q.Get("idAgente"),
		AreaID:  q.Get("idArea"),
		Date:    q.Get("data"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *LogHandler) RebuildWeekly(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgentID  string `json:"idAgente"`
		AreaID   string `json:"idArea"`
		Week     int    `json:"semana"`
		Activity int    `json:"atividade"`
		Notes    string `json:"observacoes"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.weekly.Rebuild(r.Context(), service.RebuildWeeklyRequest{
		AgentID:  body.AgentID,
		AreaID:   body.AreaID,
		Week:     body.Week,
		Activity: body.Activity,
		Notes:    body.Notes,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *LogHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.weekly.GetWeeklyLog(r.Context(), service.GetWeeklyLogRequest{
		AgentID: q.Get("idAgente"),
		AreaID:  q.Get("idArea"),
		Week:    parseInt(q.Get("semana"), 0),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *LogHandler) UpdateWeeklyNotes(w http.ResponseWriter, r *http.Request) {
	weeklyLogID := pathTail(r.URL.Path, "/api/v1/weekly-logs/")
	var body struct {
		Notes    string `json:"observacoes"`
		Activity int    `json:"atividade"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	resp, err := h.weekly.UpdateNotes(r.Context(), service.UpdateWeeklyNotesRequest{
		WeeklyLogID: weeklyLogID,
		Notes:       body.Notes,
		Activity:    body.Activity,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}

func (h *LogHandler) ExportWeekly(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.weekly.GetWeeklyLog(r.Context(), service.GetWeeklyLogRequest{
		AgentID: q.Get("idAgente"),
		AreaID:  q.Get("idArea"),
		Week:    parseInt(q.Get("semana"), 0),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	data, err := GenerateWeeklyLogExport(resp.WeeklyLog)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="semanal.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
