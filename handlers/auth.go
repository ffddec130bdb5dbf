package handlers

import (
	"net/http"

	"healthguard/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration, login and password rotation endpoints.
type AuthHandler struct {
	Auth auth.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an email/password pair against all account types.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RegisterDoctor creates a doctor account.
func (h *AuthHandler) RegisterDoctor(c *gin.Context) {
	logger := getLogger(c)

	var req auth.RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid doctor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	doctor, token, err := h.Auth.RegisterDoctor(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"doctor": doctor, "token": token})
}

// RegisterUser creates a generic self-registered account.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	logger := getLogger(c)

	var req auth.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, token, err := h.Auth.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// ChangePassword rotates the authenticated patient's credential.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	logger := getLogger(c)

	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid change password request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	emailSent, err := h.Auth.ChangePassword(c.Request.Context(), accountID(c), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Password changed successfully",
		"emailSent": emailSent,
	})
}
