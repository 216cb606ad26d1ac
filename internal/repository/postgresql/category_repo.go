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

type pgCategoryRepository struct {
	db *sql.DB
}

func NewPgCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &pgCategoryRepository{db: db}
}

func (r *pgCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `INSERT INTO categories (name, icon_url, parent_category_id, created_at, updated_at)
	           VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, category.Name, category.IconURL, category.ParentCategoryID).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: category '%s' already exists", repository.ErrDuplicateEntry, category.Name)
		}
		return nil, fmt.Errorf("CategoryRepository.Create: %w", err)
	}
	category.CreatedAt = category.CreatedAt.In(time.UTC)
	category.UpdatedAt = category.UpdatedAt.In(time.UTC)
	return category, nil
}

func (r *pgCategoryRepository) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	category := &domain.Category{}
	query := `SELECT id, name, icon_url, parent_category_id, created_at, updated_at FROM categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.IconURL, &category.ParentCategoryID,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("CategoryRepository.FindByID: %w", err)
	}
	category.CreatedAt = category.CreatedAt.In(time.UTC)
	category.UpdatedAt = category.UpdatedAt.In(time.UTC)
	return category, nil
}

func (r *pgCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, icon_url, parent_category_id, created_at, updated_at FROM categories ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CategoryRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.IconURL, &category.ParentCategoryID,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("CategoryRepository.FindAll (scanning row): %w", err)
		}
		category.CreatedAt = category.CreatedAt.In(time.UTC)
		category.UpdatedAt = category.UpdatedAt.In(time.UTC)
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("CategoryRepository.FindAll (rows error): %w", err)
	}
	return categories, nil
}

// FindByName tries an exact match before falling back to a case-insensitive
// one, so "Metro" and "metro" resolve to the same category.
func (r *pgCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{}
	query := `SELECT id, name, icon_url, parent_category_id, created_at, updated_at FROM categories WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&category.ID, &category.Name, &category.IconURL, &category.ParentCategoryID,
		&category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		query = `SELECT id, name, icon_url, parent_category_id, created_at, updated_at
		          FROM categories WHERE LOWER(name) = LOWER($1) ORDER BY id LIMIT 1`
		err = r.db.QueryRowContext(ctx, query, name).Scan(
			&category.ID, &category.Name, &category.IconURL, &category.ParentCategoryID,
			&category.CreatedAt, &category.UpdatedAt,
		)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("CategoryRepository.FindByName: %w", err)
	}
	category.CreatedAt = category.CreatedAt.In(time.UTC)
	category.UpdatedAt = category.UpdatedAt.In(time.UTC)
	return category, nil
}

func (r *pgCategoryRepository) FindChildren(ctx context.Context, parentID int) ([]domain.Category, error) {
	query := `SELECT id, name, icon_url, parent_category_id, created_at, updated_at
	           FROM categories WHERE parent_category_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("CategoryRepository.FindChildren: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.IconURL, &category.ParentCategoryID,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("CategoryRepository.FindChildren (scanning row): %w", err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("CategoryRepository.FindChildren (rows error): %w", err)
	}
	return categories, nil
}

func (r *pgCategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `UPDATE categories SET name = $1, icon_url = $2, parent_category_id = $3, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, category.Name, category.IconURL, category.ParentCategoryID, category.ID).
		Scan(&category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: category '%s' already exists", repository.ErrDuplicateEntry, category.Name)
		}
		return nil, fmt.Errorf("CategoryRepository.Update: %w", err)
	}
	category.UpdatedAt = category.UpdatedAt.In(time.UTC)
	return category, nil
}

func (r *pgCategoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("CategoryRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("CategoryRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
