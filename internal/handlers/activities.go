package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"littlewins/internal/selector"
	"littlewins/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errDurationInvalid = "invalid 'duration'; use a positive number of minutes"
	errListActivities  = "failed to load activities"
	errNextActivity    = "failed to select activity"
)

// @Summary      Next activity
// @Description  Random activity for the mode. Without 'exclude', the activity last shown for the same mode and duration is skipped when possible.
// @Tags         activities
// @Produce      json
// @Param        mode      query  string  true   "Mode"  example(Mood Booster)
// @Param        duration  query  int     false  "Session length in minutes"  example(5)
// @Param        exclude   query  string  false  "Activity id to avoid"
// @Success      200  {object}  models.Activity
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/activities [get]
// @Security     BearerAuth
func (h *Handler) nextActivity(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	params := service.NextParams{
		Mode:      c.Query("mode"),
		ExcludeID: c.Query("exclude"),
	}
	if qs := strings.TrimSpace(c.Query("duration")); qs != "" {
		d, err := strconv.Atoi(qs)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errDurationInvalid})
			return
		}
		params.Duration = d
	}

	act, err := h.services.Next(c.Request.Context(), userID, params)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, act)
	case errors.Is(err, service.ErrModeRequired), errors.Is(err, service.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, selector.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errNextActivity, "activity_next_failed", err,
			"user_id", userID, "mode", params.Mode, "duration", params.Duration)
	}
}

// @Summary      List all activities
// @Tags         activities
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, activities"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/activities/all [get]
func (h *Handler) listActivities(c *gin.Context) {
	acts, err := h.services.Catalog(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListActivities, "activity_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(acts),
		"activities": acts,
	})
}

// @Summary      List modes
// @Tags         activities
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "modes"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/activities/modes [get]
func (h *Handler) listModes(c *gin.Context) {
	modes, err := h.services.Modes(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListActivities, "activity_modes_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modes": modes})
}
