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

type QuoteService interface {
	Submit(ctx context.Context, q *domain.Quote) (*domain.Quote, error)
	Get(ctx context.Context, id int64) (*domain.Quote, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Quote, error)
}

type QuoteHandler struct {
	Svc QuoteService
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	q := &domain.Quote{
		CustomerName:     strings.TrimSpace(req.CustomerName),
		CustomerEmail:    strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:    optional(req.CustomerPhone),
		ShopName:         optional(req.ShopName),
		ShopAddress:      strings.TrimSpace(req.ShopAddress),
		Shop:             domain.Position{Lat: *req.ShopLatitude, Lon: *req.ShopLongitude},
		MachineType:      optional(req.MachineType),
		IssueDescription: strings.TrimSpace(req.IssueDescription),
		PreferredDate:    optional(req.PreferredDate),
		TravelDistanceKm: req.TravelDistance,
	}

	created, err := h.Svc.Submit(c.Request.Context(), q)
	if errors.Is(err, services.ErrInvalidQuote) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(c, "quotes.create", err)
		return
	}

	res := dto.CreateQuoteResponse{
		Success:       true,
		QuoteID:       created.ID,
		EstimatedCost: created.EstimatedCost,
	}
	if created.TravelDistanceKm != nil {
		res.TravelDistance = *created.TravelDistanceKm
	}
	c.JSON(http.StatusOK, res)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	q, err := h.Svc.Get(c.Request.Context(), id)
	if errors.Is(err, services.ErrQuoteNotFound) {
		writeError(c, http.StatusNotFound, "quote not found")
		return
	}
	if err != nil {
		internalError(c, "quotes.get", err)
		return
	}
	c.JSON(http.StatusOK, toQuoteResponse(q))
}

func (h *QuoteHandler) List(c *gin.Context) {
	limit, errLimit := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, errOffset := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if errLimit != nil || errOffset != nil {
		writeError(c, http.StatusBadRequest, "limit and offset must be integers")
		return
	}

	quotes, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		internalError(c, "quotes.list", err)
		return
	}

	res := dto.ListQuotesResponse{Quotes: make([]dto.QuoteResponse, 0, len(quotes))}
	for _, q := range quotes {
		res.Quotes = append(res.Quotes, toQuoteResponse(q))
	}
	c.JSON(http.StatusOK, res)
}

func toQuoteResponse(q *domain.Quote) dto.QuoteResponse {
	return dto.QuoteResponse{
		ID:               q.ID,
		CustomerName:     q.CustomerName,
		CustomerEmail:    q.CustomerEmail,
		CustomerPhone:    q.CustomerPhone,
		ShopName:         q.ShopName,
		ShopAddress:      q.ShopAddress,
		ShopLatitude:     q.Shop.Lat,
		ShopLongitude:    q.Shop.Lon,
		MachineType:      q.MachineType,
		IssueDescription: q.IssueDescription,
		PreferredDate:    q.PreferredDate,
		TravelDistance:   q.TravelDistanceKm,
		EstimatedCost:    q.EstimatedCost,
		Status:           string(q.Status),
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
