package handlers

import (
	"context"
	"errors"
	"net/http"
	"quote-intake-service/internal/api/dto"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/services"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type GeocodeService interface {
	Forward(ctx context.Context, query string) (*domain.Position, error)
	Reverse(ctx context.Context, pos domain.Position) (string, error)
}

// GeocodeHandler proxies address lookups so browsers never call the provider directly.
type GeocodeHandler struct {
	Svc GeocodeService
}

func (h *GeocodeHandler) Forward(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, http.StatusBadRequest, "missing required query parameter 'q'")
		return
	}

	pos, err := h.Svc.Forward(c.Request.Context(), q)
	if errors.Is(err, services.ErrEmptyQuery) {
		writeError(c, http.StatusBadRequest, "missing required query parameter 'q'")
		return
	}
	if err != nil {
		internalError(c, "geocode.forward", err)
		return
	}

	var res dto.GeocodeResponse
	if pos != nil {
		res.Lat, res.Lon = &pos.Lat, &pos.Lon
	}
	c.JSON(http.StatusOK, res)
}

func (h *GeocodeHandler) Reverse(c *gin.Context) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		writeError(c, http.StatusBadRequest, "Missing lat or lon parameters")
		return
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	pos := domain.Position{Lat: lat, Lon: lon}
	if errLat != nil || errLon != nil || !pos.Valid() {
		writeError(c, http.StatusBadRequest, "invalid lat or lon parameters")
		return
	}

	addr, err := h.Svc.Reverse(c.Request.Context(), pos)
	if err != nil {
		internalError(c, "geocode.reverse", err)
		return
	}
	c.JSON(http.StatusOK, dto.ReverseGeocodeResponse{Address: addr})
}
