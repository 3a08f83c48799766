package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minsu-content-backend/internal/auth"
	"minsu-content-backend/internal/mw"
)

// loginError is deliberately generic: wrong password and unknown account are
// indistinguishable to the caller.
const loginError = "邮箱或密码错误"

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Expires string `json:"expires"`
	Email   string `json:"email"`
}

// Login handles POST /api/admin/login. Credentials are checked against the
// stored account, never against literals.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.store.AdminByEmail(c.Request.Context(), email)
	if err != nil || !user.CheckPassword(req.Password) {
		h.logger.Info("rejected admin login", zap.String("email", email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": loginError})
		return
	}

	token, exp, err := auth.NewToken(h.auth.JWTSecret, user.ID, user.Email, h.auth.TokenTTL)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:   token,
		Expires: exp.Format(time.RFC3339),
		Email:   user.Email,
	})
}

// Logout handles POST /api/admin/logout. Tokens are stateless; the client
// discards its copy and the expiry takes care of the rest.
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Me handles GET /api/admin/me and echoes the validated session.
func (h *Handler) Me(c *gin.Context) {
	sess := mw.Session(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":   sess.Email,
		"expires": sess.ExpiresAt,
	})
}
