package handler

import (
	"net/http"
	"strconv"
	"strings"

	"teacher-transfer-system/internal/model"
	"teacher-transfer-system/internal/service"
)

const defaultNotificationLimit = 20

type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, stats, nil)
}

func (h *StatsHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	limit := defaultNotificationLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	notifications, err := h.stats.Notifications(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, notifications, &model.Meta{Total: len(notifications)})
}
