package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type QuoteStatus string

// Only the initial status is owned here; later transitions belong to back-office tooling.
const QuoteStatusPending QuoteStatus = "pending"

// PreferredDateLayout is the calendar date format accepted for PreferredDate.
const PreferredDateLayout = "2006-01-02"

var validate = validator.New()

// Quote is a customer-submitted service request.
// EstimatedCost is always computed by the server; TravelDistanceKm is advisory
// when it arrives from a client.
type Quote struct {
	ID               int64
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    *string
	ShopName         *string
	ShopAddress      string
	Shop             Position
	MachineType      *string
	IssueDescription string
	PreferredDate    *string
	TravelDistanceKm *float64
	EstimatedCost    float64
	Status           QuoteStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the fields a quote must carry before it is persisted.
func (q *Quote) Validate() error {
	var errs []error

	if strings.TrimSpace(q.CustomerName) == "" {
		errs = append(errs, errors.New("customer_name is required"))
	}
	if err := ValidateEmail(q.CustomerEmail); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(q.ShopAddress) == "" {
		errs = append(errs, errors.New("shop_address is required"))
	}
	if !q.Shop.Valid() {
		errs = append(errs, fmt.Errorf("shop location %s is out of range", q.Shop))
	}
	if strings.TrimSpace(q.IssueDescription) == "" {
		errs = append(errs, errors.New("issue_description is required"))
	}
	if q.PreferredDate != nil && *q.PreferredDate != "" {
		if _, err := time.Parse(PreferredDateLayout, *q.PreferredDate); err != nil {
			errs = append(errs, fmt.Errorf("preferred_date %q is not a YYYY-MM-DD date", *q.PreferredDate))
		}
	}
	if d := q.TravelDistanceKm; d != nil && (*d < 0 || math.IsNaN(*d)) {
		errs = append(errs, fmt.Errorf("travel_distance %v must be non-negative", *d))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validate quote: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateEmail reports whether s is a syntactically valid email address.
func ValidateEmail(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("customer_email is required")
	}
	if err := validate.Var(s, "email"); err != nil {
		return fmt.Errorf("customer_email %q is not a valid email address", s)
	}
	return nil
}
