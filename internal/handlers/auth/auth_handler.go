package auth

import (
	"net/http"

	"autolot-service/internal/middleware"
	"autolot-service/internal/pkg/response"
	service "autolot-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.Service
}

func NewAuthHandler(authService *service.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the staff credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	tokenString, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, "email ou senha incorretos")
		return
	}

	response.Success(c, http.StatusOK, "login realizado com sucesso", gin.H{
		"token": tokenString,
		"email": req.Email,
	})
}

// GetMe returns the authenticated account.
func (h *AuthHandler) GetMe(c *gin.Context) {
	response.Success(c, http.StatusOK, "session active", gin.H{
		"email": middleware.MustGetEmail(c),
	})
}

// Logout ends the session. Tokens are stateless, so this is a client-side
// discard acknowledged server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, "logout realizado", nil)
}
