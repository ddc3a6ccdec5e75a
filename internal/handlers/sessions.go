package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"littlewins/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response constants to avoid magic strings and typos.
const (
	errFromInvalid     = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid       = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeInvalid    = "'from' must be <= 'to'"
	errSessionID       = "invalid session id"
	errSessionNotFound = "session not found"
	errRecordSession   = "failed to record session"
	errLoadSessions    = "failed to load sessions"
	errAttachPhoto     = "failed to attach photo"
	errInvalidBodyPref = "invalid body: "

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// RecordSessionRequest is the body of POST /api/v1/sessions.
type RecordSessionRequest struct {
	Mode          string     `json:"mode" binding:"required" example:"Relax"`
	Duration      int        `json:"duration" binding:"required" example:"5"` // minutes: 3, 5, 10 or 15
	ActivityID    string     `json:"activity_id" binding:"required" example:"r1"`
	ActivityTitle string     `json:"activity_title" binding:"required" example:"Box Breathing"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at" binding:"required"`
	Photo         string     `json:"photo,omitempty"` // data:image/... URL
	SensorResult  string     `json:"sensor_result,omitempty"`
}

type photoRequest struct {
	Photo string `json:"photo" binding:"required"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// sessionError maps service errors for a single session to HTTP responses.
func (h *Handler) sessionError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrInvalidSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errSessionNotFound})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
	}
}

// @Summary      Record a completed session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      RecordSessionRequest  true  "Session"
// @Success      201   {object}  models.Session
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sessions [post]
// @Security     BearerAuth
func (h *Handler) recordSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req RecordSessionRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	sess, err := h.services.Record(c.Request.Context(), userID, service.SessionParams{
		Mode:          req.Mode,
		Duration:      req.Duration,
		ActivityID:    req.ActivityID,
		ActivityTitle: req.ActivityTitle,
		StartedAt:     req.StartedAt,
		CompletedAt:   *req.CompletedAt,
		Photo:         req.Photo,
		SensorResult:  req.SensorResult,
	})
	if err != nil {
		h.sessionError(c, errRecordSession, "session_record_failed", err, "user_id", userID, "mode", req.Mode)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func parseSessionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errSessionID})
		return 0, false
	}
	return id, true
}

// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        id   path      int  true  "Session id"
// @Success      200  {object}  models.Session
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sessions/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSession(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	sess, err := h.services.Sessions.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.sessionError(c, errLoadSessions, "session_get_failed", err, "user_id", userID, "session_id", id)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary      Attach photo
// @Description  Sets or replaces the photo of a session. The photo must be a data:image URL of at most 5 MiB.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Session id"
// @Param        body  body      photoRequest  true  "Photo"
// @Success      200   {object}  models.Session
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/sessions/{id}/photo [put]
// @Security     BearerAuth
func (h *Handler) attachPhoto(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req photoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	sess, err := h.services.AttachPhoto(c.Request.Context(), userID, id, req.Photo)
	if err != nil {
		h.sessionError(c, errAttachPhoto, "session_photo_failed", err, "user_id", userID, "session_id", id)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List sessions
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD') and mode. If 'to' is date-only, it is treated as end-of-day inclusive. Photos are omitted; see has_photo.
// @Tags         sessions
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        mode  query   string  false  "Mode"
// @Success      200   {object}  map[string]interface{}  "count, sessions"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sessions [get]
// @Security     BearerAuth
func (h *Handler) listSessions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var (
		from time.Time
		to   time.Time
		mode = strings.TrimSpace(c.Query("mode"))
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errRangeInvalid})
		return
	}

	sessions, err := h.services.History.List(c.Request.Context(), userID, service.SessionFilter{
		From: from,
		To:   to,
		Mode: mode,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSessions, "sessions_list_failed", err,
			"user_id", userID, "from", from, "to", to, "mode", mode)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
