package dto

import "time"

// CreateQuoteRequest is the body of POST /api/quotes. Optional text fields
// may be sent empty; travel_distance is advisory and recomputed server-side.
type CreateQuoteRequest struct {
	CustomerName     string   `json:"customer_name" binding:"required"`
	CustomerEmail    string   `json:"customer_email" binding:"required,email"`
	CustomerPhone    string   `json:"customer_phone"`
	ShopName         string   `json:"shop_name"`
	ShopAddress      string   `json:"shop_address" binding:"required"`
	ShopLatitude     *float64 `json:"shop_latitude" binding:"required,gte=-90,lte=90"`
	ShopLongitude    *float64 `json:"shop_longitude" binding:"required,gte=-180,lte=180"`
	MachineType      string   `json:"machine_type"`
	IssueDescription string   `json:"issue_description" binding:"required"`
	PreferredDate    string   `json:"preferred_date" binding:"omitempty,datetime=2006-01-02"`
	TravelDistance   *float64 `json:"travel_distance" binding:"omitempty,gte=0"`
}

type CreateQuoteResponse struct {
	Success        bool    `json:"success"`
	QuoteID        int64   `json:"quote_id"`
	EstimatedCost  float64 `json:"estimated_cost"`
	TravelDistance float64 `json:"travel_distance"`
}

type QuoteResponse struct {
	ID               int64     `json:"id"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CustomerPhone    *string   `json:"customer_phone"`
	ShopName         *string   `json:"shop_name"`
	ShopAddress      string    `json:"shop_address"`
	ShopLatitude     float64   `json:"shop_latitude"`
	ShopLongitude    float64   `json:"shop_longitude"`
	MachineType      *string   `json:"machine_type"`
	IssueDescription string    `json:"issue_description"`
	PreferredDate    *string   `json:"preferred_date"`
	TravelDistance   *float64  `json:"travel_distance"`
	EstimatedCost    float64   `json:"estimated_cost"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ListQuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}
