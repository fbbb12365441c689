package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"quote-intake-service/internal/domain"
	"quote-intake-service/internal/platform/obs"
)

// Postgres-backed implementation of the QuoteRepository port.
type PostgresQuoteRepository struct{ DB *sql.DB }

func NewPostgresQuoteRepository(db *sql.DB) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{DB: db}
}

const quoteColumns = `
		id,
		customer_name,
		customer_email,
		customer_phone,
		shop_name,
		shop_address,
		shop_latitude,
		shop_longitude,
		machine_type,
		issue_description,
		to_char(preferred_date, 'YYYY-MM-DD'),
		travel_distance,
		estimated_cost,
		status,
		created_at,
		updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuote(row rowScanner) (*domain.Quote, error) {
	var (
		q                                       domain.Quote
		phone, shopName, machine, preferredDate sql.NullString
		distance                                sql.NullFloat64
		status                                  string
	)
	err := row.Scan(
		&q.ID,
		&q.CustomerName,
		&q.CustomerEmail,
		&phone,
		&shopName,
		&q.ShopAddress,
		&q.Shop.Lat,
		&q.Shop.Lon,
		&machine,
		&q.IssueDescription,
		&preferredDate,
		&distance,
		&q.EstimatedCost,
		&status,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.CustomerPhone = nullString(phone)
	q.ShopName = nullString(shopName)
	q.MachineType = nullString(machine)
	q.PreferredDate = nullString(preferredDate)
	if distance.Valid {
		d := distance.Float64
		q.TravelDistanceKm = &d
	}
	q.Status = domain.QuoteStatus(status)
	return &q, nil
}

// Insert a new quote with status pending.
func (r *PostgresQuoteRepository) CreateQuote(
	ctx context.Context,
	q *domain.Quote,
) (_ *domain.Quote, err error) {
	defer obs.Time(ctx, "repo.CreateQuote")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres quote repository: DB is nil")
	}
	if q == nil {
		return nil, errors.New("create quote: quote is nil")
	}

	query := `
	INSERT INTO quotes (
		customer_name,
		customer_email,
		customer_phone,
		shop_name,
		shop_address,
		shop_latitude,
		shop_longitude,
		machine_type,
		issue_description,
		preferred_date,
		travel_distance,
		estimated_cost,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::date, $11, $12, $13)
	RETURNING` + quoteColumns + `;
	`
	row := r.DB.QueryRowContext(ctx, query,
		q.CustomerName,
		q.CustomerEmail,
		q.CustomerPhone,
		q.ShopName,
		q.ShopAddress,
		q.Shop.Lat,
		q.Shop.Lon,
		q.MachineType,
		q.IssueDescription,
		emptyToNil(q.PreferredDate),
		q.TravelDistanceKm,
		q.EstimatedCost,
		string(domain.QuoteStatusPending),
	)

	created, err := scanQuote(row)
	if err != nil {
		return nil, fmt.Errorf("create quote: insert email=%q: %w", q.CustomerEmail, err)
	}
	return created, nil
}

// Return the quote with the given id, or nil if it does not exist.
func (r *PostgresQuoteRepository) GetQuote(ctx context.Context, id int64) (*domain.Quote, error) {
	if r.DB == nil {
		return nil, errors.New("postgres quote repository: DB is nil")
	}

	query := `SELECT` + quoteColumns + `
	FROM quotes
	WHERE id = $1;
	`
	q, err := scanQuote(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get quote id=%d: %w", id, err)
	}
	return q, nil
}

// Return quotes newest first.
func (r *PostgresQuoteRepository) ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, error) {
	if r.DB == nil {
		return nil, errors.New("postgres quote repository: DB is nil")
	}

	query := `SELECT` + quoteColumns + `
	FROM quotes
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2;
	`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list quotes: query quotes table: %w", err)
	}
	defer rows.Close()

	quotes := make([]*domain.Quote, 0, limit)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("list quotes: scan row: %w", err)
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: row iteration: %w", err)
	}

	return quotes, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
