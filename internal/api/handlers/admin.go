package handlers

import (
	"errors"
	"net/http"
	"quote-intake-service/internal/api/dto"
	"quote-intake-service/internal/services"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminLoginService interface {
	Login(password string) (string, time.Time, error)
}

type AdminHandler struct {
	Auth AdminLoginService
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "password is required")
		return
	}

	token, exp, err := h.Auth.Login(req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		internalError(c, "admin.login", err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: exp})
}
