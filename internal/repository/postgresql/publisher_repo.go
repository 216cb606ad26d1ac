package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

type pgPublisherRepository struct {
	db *sql.DB
}

func NewPgPublisherRepository(db *sql.DB) repository.PublisherRepository {
	return &pgPublisherRepository{db: db}
}

func (r *pgPublisherRepository) Create(ctx context.Context, publisher *domain.Publisher) (*domain.Publisher, error) {
	query := `INSERT INTO publishers (name, description, verification_status, created_at, updated_at)
	           VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, publisher.Name, publisher.Description, publisher.VerificationStatus).
		Scan(&publisher.ID, &publisher.CreatedAt, &publisher.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: publisher '%s' already exists", repository.ErrDuplicateEntry, publisher.Name)
		}
		return nil, fmt.Errorf("PublisherRepository.Create: %w", err)
	}
	publisher.CreatedAt = publisher.CreatedAt.In(time.UTC)
	publisher.UpdatedAt = publisher.UpdatedAt.In(time.UTC)
	return publisher, nil
}

func (r *pgPublisherRepository) FindByID(ctx context.Context, id int) (*domain.Publisher, error) {
	publisher := &domain.Publisher{}
	query := `SELECT id, name, description, verification_status, created_at, updated_at FROM publishers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&publisher.ID, &publisher.Name, &publisher.Description, &publisher.VerificationStatus,
		&publisher.CreatedAt, &publisher.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("PublisherRepository.FindByID: %w", err)
	}
	publisher.CreatedAt = publisher.CreatedAt.In(time.UTC)
	publisher.UpdatedAt = publisher.UpdatedAt.In(time.UTC)
	return publisher, nil
}

func (r *pgPublisherRepository) FindAll(ctx context.Context) ([]domain.Publisher, error) {
	query := `SELECT id, name, description, verification_status, created_at, updated_at FROM publishers ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("PublisherRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var publishers []domain.Publisher
	for rows.Next() {
		var publisher domain.Publisher
		if err := rows.Scan(&publisher.ID, &publisher.Name, &publisher.Description, &publisher.VerificationStatus,
			&publisher.CreatedAt, &publisher.UpdatedAt); err != nil {
			return nil, fmt.Errorf("PublisherRepository.FindAll (scanning row): %w", err)
		}
		publisher.CreatedAt = publisher.CreatedAt.In(time.UTC)
		publisher.UpdatedAt = publisher.UpdatedAt.In(time.UTC)
		publishers = append(publishers, publisher)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("PublisherRepository.FindAll (rows error): %w", err)
	}
	return publishers, nil
}

func (r *pgPublisherRepository) Update(ctx context.Context, publisher *domain.Publisher) (*domain.Publisher, error) {
	query := `UPDATE publishers SET name = $1, description = $2, verification_status = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		publisher.Name, publisher.Description, publisher.VerificationStatus, publisher.ID,
	).Scan(&publisher.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: publisher '%s' already exists", repository.ErrDuplicateEntry, publisher.Name)
		}
		return nil, fmt.Errorf("PublisherRepository.Update: %w", err)
	}
	publisher.UpdatedAt = publisher.UpdatedAt.In(time.UTC)
	return publisher, nil
}

func (r *pgPublisherRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("PublisherRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("PublisherRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
