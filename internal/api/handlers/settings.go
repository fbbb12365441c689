package handlers

import (
	"context"
	"errors"
	"net/http"
	"quote-intake-service/internal/api/dto"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/services"

	"github.com/gin-gonic/gin"
)

type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, in domain.Settings) (domain.Settings, error)
}

type SettingsHandler struct {
	Svc SettingsService
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		internalError(c, "settings.get", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var in map[string]string
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	settings, err := h.Svc.Update(c.Request.Context(), domain.Settings(in))
	if errors.Is(err, services.ErrInvalidSettings) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(c, "settings.update", err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateSettingsResponse{Success: true, Settings: settings})
}
