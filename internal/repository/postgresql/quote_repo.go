package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

type pgQuoteRepository struct {
	db *sql.DB
}

func NewPgQuoteRepository(db *sql.DB) repository.QuoteRepository {
	return &pgQuoteRepository{db: db}
}

func (r *pgQuoteRepository) Create(ctx context.Context, quote *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("QuoteRepository.Create (begin tx): %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO quote_requests (id, user_id, subtotal, tax, total, status, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING created_at, updated_at`
	err = tx.QueryRowContext(ctx, query,
		quote.ID, quote.UserID, quote.Subtotal, quote.Tax, quote.Total, quote.Status,
	).Scan(&quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: referenced user does not exist", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("QuoteRepository.Create: %w", err)
	}

	itemQuery := `INSERT INTO quote_items
	           (id, quote_request_id, ad_space_id, title, price_per_day, start_date, end_date, quantity,
	            amount, approval_status)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i := range quote.Items {
		item := &quote.Items[i]
		if _, err := tx.ExecContext(ctx, itemQuery,
			item.ID, quote.ID, item.AdSpaceID, item.Title, item.PricePerDay,
			item.StartDate, item.EndDate, item.Quantity, item.Amount, item.ApprovalStatus,
		); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: ad space %d does not exist", repository.ErrNotFound, item.AdSpaceID)
			}
			return nil, fmt.Errorf("QuoteRepository.Create (inserting item): %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("QuoteRepository.Create (commit): %w", err)
	}
	quote.CreatedAt = quote.CreatedAt.In(time.UTC)
	quote.UpdatedAt = quote.UpdatedAt.In(time.UTC)
	return quote, nil
}

func (r *pgQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	quote := &domain.QuoteRequest{}
	query := `SELECT id, user_id, subtotal, tax, total, status, created_at, updated_at
	           FROM quote_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&quote.ID, &quote.UserID, &quote.Subtotal, &quote.Tax, &quote.Total, &quote.Status,
		&quote.CreatedAt, &quote.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("QuoteRepository.FindByID: %w", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	quote.Items = items
	quote.CreatedAt = quote.CreatedAt.In(time.UTC)
	quote.UpdatedAt = quote.UpdatedAt.In(time.UTC)
	return quote, nil
}

func (r *pgQuoteRepository) findItems(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteItem, error) {
	query := `SELECT id, quote_request_id, ad_space_id, title, price_per_day, start_date, end_date,
	                 quantity, amount, approval_status
	           FROM quote_items WHERE quote_request_id = $1 ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("QuoteRepository.findItems: %w", err)
	}
	defer rows.Close()

	var items []domain.QuoteItem
	for rows.Next() {
		var item domain.QuoteItem
		if err := rows.Scan(&item.ID, &item.QuoteRequestID, &item.AdSpaceID, &item.Title, &item.PricePerDay,
			&item.StartDate, &item.EndDate, &item.Quantity, &item.Amount, &item.ApprovalStatus); err != nil {
			return nil, fmt.Errorf("QuoteRepository.findItems (scanning row): %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("QuoteRepository.findItems (rows error): %w", err)
	}
	return items, nil
}

func (r *pgQuoteRepository) findRequests(ctx context.Context, query string, args ...interface{}) ([]domain.QuoteRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("QuoteRepository.findRequests: %w", err)
	}
	defer rows.Close()

	var quotes []domain.QuoteRequest
	for rows.Next() {
		var quote domain.QuoteRequest
		if err := rows.Scan(&quote.ID, &quote.UserID, &quote.Subtotal, &quote.Tax, &quote.Total, &quote.Status,
			&quote.CreatedAt, &quote.UpdatedAt); err != nil {
			return nil, fmt.Errorf("QuoteRepository.findRequests (scanning row): %w", err)
		}
		quote.CreatedAt = quote.CreatedAt.In(time.UTC)
		quote.UpdatedAt = quote.UpdatedAt.In(time.UTC)
		quotes = append(quotes, quote)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("QuoteRepository.findRequests (rows error): %w", err)
	}

	for i := range quotes {
		items, err := r.findItems(ctx, quotes[i].ID)
		if err != nil {
			return nil, err
		}
		quotes[i].Items = items
	}
	return quotes, nil
}

func (r *pgQuoteRepository) FindByUser(ctx context.Context, userID int) ([]domain.QuoteRequest, error) {
	query := `SELECT id, user_id, subtotal, tax, total, status, created_at, updated_at
	           FROM quote_requests WHERE user_id = $1 ORDER BY created_at DESC`
	return r.findRequests(ctx, query, userID)
}

func (r *pgQuoteRepository) FindAll(ctx context.Context) ([]domain.QuoteRequest, error) {
	query := `SELECT id, user_id, subtotal, tax, total, status, created_at, updated_at
	           FROM quote_requests ORDER BY created_at DESC`
	return r.findRequests(ctx, query)
}

func (r *pgQuoteRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*domain.QuoteItem, error) {
	item := &domain.QuoteItem{}
	query := `SELECT id, quote_request_id, ad_space_id, title, price_per_day, start_date, end_date,
	                 quantity, amount, approval_status
	           FROM quote_items WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID, &item.QuoteRequestID, &item.AdSpaceID, &item.Title, &item.PricePerDay,
		&item.StartDate, &item.EndDate, &item.Quantity, &item.Amount, &item.ApprovalStatus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("QuoteRepository.FindItem: %w", err)
	}
	return item, nil
}

func (r *pgQuoteRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status domain.ApprovalStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quote_items SET approval_status = $1 WHERE id = $2`, status, itemID)
	if err != nil {
		return fmt.Errorf("QuoteRepository.UpdateItemStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("QuoteRepository.UpdateItemStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgQuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuoteStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quote_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("QuoteRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("QuoteRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgQuoteRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quote_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("QuoteRepository.DeleteItem: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("QuoteRepository.DeleteItem (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
