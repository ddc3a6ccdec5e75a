package handlers

import (
	"errors"
	"net/http"

	"littlewins/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginRequest accepts either an email or a username as identity.
type loginRequest struct {
	Identity string `json:"identity"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (r loginRequest) identity() string {
	switch {
	case r.Identity != "":
		return r.Identity
	case r.Email != "":
		return r.Email
	default:
		return r.Username
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account"
// @Success      201   {object}  map[string]interface{}  "token, user"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, user, err := h.services.Register(c.Request.Context(), input.Email, input.Username, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	case errors.Is(err, service.ErrUserExists):
		h.logAndJSONError(c, http.StatusConflict, "user already exists", "auth_register_conflict", err, "username", input.Username)
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrBadPassword):
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "auth_register_rejected", err, "username", input.Username)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to register", "auth_register_failed", err, "username", input.Username)
	}
}

// @Summary      Login
// @Description  identity may be an email (case-insensitive) or a username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "token, user"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	identity := input.identity()
	if identity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identity required"})
		return
	}

	token, user, err := h.services.Login(c.Request.Context(), identity, input.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword), errors.Is(err, service.ErrMissingFields):
		if h.log != nil {
			h.log.Infow("auth_login_failed", "identity", identity, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to login", "auth_login_error", err)
	}
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	u, err := h.services.Me(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, u)
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load user", "auth_me_failed", err, "user_id", userID)
	}
}
