package handlers

import (
	"net/http"
	"strconv"

	"quiz-backend/internal/services"
	"quiz-backend/utils/response"
)

type LeaderboardHandler struct {
	service *services.LeaderboardService
}

func NewLeaderboardHandler(service *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathUUID(w, r, "category_id")
	if !ok {
		return
	}

	limit := services.DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	entries, err := h.service.Top(r.Context(), categoryID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, entries)
}
