package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errLoadStats = "failed to load stats"

// @Summary      Weekly stats
// @Description  Sessions per day for the last 7 UTC days, per-mode counts and the overall total.
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  models.Stats
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	st, err := h.services.Summary(c.Request.Context(), userID, h.now())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadStats, "stats_summary_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Daily counts
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "days"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/sessions/daily-counts [get]
// @Security     BearerAuth
func (h *Handler) getDailyCounts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	days, err := h.services.DailyCounts(c.Request.Context(), userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadStats, "stats_daily_counts_failed", err, "user_id", userID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
