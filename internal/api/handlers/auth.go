package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/services"
	"github.com/fanalytics/sportsbot/pkg/utils"
)

// AuthHandler proxies email/password auth through Supabase.
type AuthHandler struct {
	auth   *services.AuthService
	logger *logrus.Logger
}

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func NewAuthHandler(auth *services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// SignUp registers a new account.
// POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	if !h.auth.Enabled() {
		utils.SendNotFound(c, "Authentication is not enabled")
		return
	}

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	session, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithError(err).Warn("Signup failed")
		utils.SendValidationError(c, "Signup failed", err.Error())
		return
	}
	utils.SendSuccess(c, session)
}

// Login exchanges credentials for a session.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.auth.Enabled() {
		utils.SendNotFound(c, "Authentication is not enabled")
		return
	}

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	session, err := h.auth.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.SendUnauthorized(c, "Invalid credentials")
		return
	}
	utils.SendSuccess(c, session)
}

// Session returns the profile behind the caller's access token.
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	if !h.auth.Enabled() {
		utils.SendNotFound(c, "Authentication is not enabled")
		return
	}

	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		utils.SendUnauthorized(c, "Bearer token required")
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), token)
	if err != nil {
		utils.SendUnauthorized(c, "Invalid session")
		return
	}
	utils.SendSuccess(c, user)
}
