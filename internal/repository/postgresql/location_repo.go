package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

type pgLocationRepository struct {
	db *sql.DB
}

func NewPgLocationRepository(db *sql.DB) repository.LocationRepository {
	return &pgLocationRepository{db: db}
}

func (r *pgLocationRepository) Create(ctx context.Context, location *domain.Location) (*domain.Location, error) {
	query := `INSERT INTO locations (city, state, country, address, latitude, longitude, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		location.City, location.State, location.Country, location.Address, location.Latitude, location.Longitude,
	).Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("LocationRepository.Create: %w", err)
	}
	location.CreatedAt = location.CreatedAt.In(time.UTC)
	location.UpdatedAt = location.UpdatedAt.In(time.UTC)
	return location, nil
}

func (r *pgLocationRepository) FindByID(ctx context.Context, id int) (*domain.Location, error) {
	location := &domain.Location{}
	query := `SELECT id, city, state, country, address, latitude, longitude, created_at, updated_at
	           FROM locations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&location.ID, &location.City, &location.State, &location.Country, &location.Address,
		&location.Latitude, &location.Longitude, &location.CreatedAt, &location.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("LocationRepository.FindByID: %w", err)
	}
	location.CreatedAt = location.CreatedAt.In(time.UTC)
	location.UpdatedAt = location.UpdatedAt.In(time.UTC)
	return location, nil
}

func (r *pgLocationRepository) FindAll(ctx context.Context) ([]domain.Location, error) {
	query := `SELECT id, city, state, country, address, latitude, longitude, created_at, updated_at
	           FROM locations ORDER BY city`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("LocationRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.City, &location.State, &location.Country, &location.Address,
			&location.Latitude, &location.Longitude, &location.CreatedAt, &location.UpdatedAt); err != nil {
			return nil, fmt.Errorf("LocationRepository.FindAll (scanning row): %w", err)
		}
		location.CreatedAt = location.CreatedAt.In(time.UTC)
		location.UpdatedAt = location.UpdatedAt.In(time.UTC)
		locations = append(locations, location)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("LocationRepository.FindAll (rows error): %w", err)
	}
	return locations, nil
}

func (r *pgLocationRepository) Update(ctx context.Context, location *domain.Location) (*domain.Location, error) {
	query := `UPDATE locations SET city = $1, state = $2, country = $3, address = $4,
	               latitude = $5, longitude = $6, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $7 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		location.City, location.State, location.Country, location.Address,
		location.Latitude, location.Longitude, location.ID,
	).Scan(&location.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("LocationRepository.Update: %w", err)
	}
	location.UpdatedAt = location.UpdatedAt.In(time.UTC)
	return location, nil
}

func (r *pgLocationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("LocationRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("LocationRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
