package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

type pgBookingRepository struct {
	db *sql.DB
}

func NewPgBookingRepository(db *sql.DB) repository.BookingRepository {
	return &pgBookingRepository{db: db}
}

func (r *pgBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query := `INSERT INTO bookings
	           (user_id, ad_space_id, start_date, end_date, total_amount, status, payment_status, expires_at,
	            created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		booking.UserID, booking.AdSpaceID, booking.StartDate, booking.EndDate,
		booking.TotalAmount, booking.Status, booking.PaymentStatus, booking.ExpiresAt,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: referenced user or ad space does not exist", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("BookingRepository.Create: %w", err)
	}
	booking.CreatedAt = booking.CreatedAt.In(time.UTC)
	booking.UpdatedAt = booking.UpdatedAt.In(time.UTC)
	return booking, nil
}

const bookingColumns = `id, user_id, ad_space_id, start_date, end_date, total_amount, status, payment_status,
	                 expires_at, created_at, updated_at`

func (r *pgBookingRepository) FindByID(ctx context.Context, id int) (*domain.Booking, error) {
	booking := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID, &booking.UserID, &booking.AdSpaceID, &booking.StartDate, &booking.EndDate,
		&booking.TotalAmount, &booking.Status, &booking.PaymentStatus,
		&booking.ExpiresAt, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BookingRepository.FindByID: %w", err)
	}
	booking.CreatedAt = booking.CreatedAt.In(time.UTC)
	booking.UpdatedAt = booking.UpdatedAt.In(time.UTC)
	return booking, nil
}

func (r *pgBookingRepository) Find(ctx context.Context, filter domain.BookingFilterDTO) ([]domain.Booking, error) {
	baseQuery := `SELECT ` + bookingColumns + ` FROM bookings`

	var conditions []string
	var args []interface{}
	argID := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argID))
		args = append(args, *filter.UserID)
		argID++
	}
	if filter.AdSpaceID != nil {
		conditions = append(conditions, fmt.Sprintf("ad_space_id = $%d", argID))
		args = append(args, *filter.AdSpaceID)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("BookingRepository.Find: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.AdSpaceID, &booking.StartDate, &booking.EndDate,
			&booking.TotalAmount, &booking.Status, &booking.PaymentStatus,
			&booking.ExpiresAt, &booking.CreatedAt, &booking.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("BookingRepository.Find (scanning row): %w", err)
		}
		booking.CreatedAt = booking.CreatedAt.In(time.UTC)
		booking.UpdatedAt = booking.UpdatedAt.In(time.UTC)
		bookings = append(bookings, booking)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("BookingRepository.Find (rows error): %w", err)
	}
	return bookings, nil
}

func (r *pgBookingRepository) UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("BookingRepository.UpdateStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("BookingRepository.UpdateStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgBookingRepository) UpdatePaymentStatus(ctx context.Context, id int, status domain.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("BookingRepository.UpdatePaymentStatus: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("BookingRepository.UpdatePaymentStatus (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgBookingRepository) FindExpiredPending(ctx context.Context) ([]int, error) {
	query := `SELECT id FROM bookings
	           WHERE status = $1 AND expires_at IS NOT NULL AND expires_at < CURRENT_TIMESTAMP`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingPending)
	if err != nil {
		return nil, fmt.Errorf("BookingRepository.FindExpiredPending: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("BookingRepository.FindExpiredPending (scanning row): %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("BookingRepository.FindExpiredPending (rows error): %w", err)
	}
	return ids, nil
}
