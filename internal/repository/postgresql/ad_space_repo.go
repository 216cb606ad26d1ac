package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gopkg.in/guregu/null.v4"

	"github.com/srivastan1999/elfsod-2-sub000/internal/domain"
	"github.com/srivastan1999/elfsod-2-sub000/internal/repository"
)

type pgAdSpaceRepository struct {
	db *sql.DB
}

func NewPgAdSpaceRepository(db *sql.DB) repository.AdSpaceRepository {
	return &pgAdSpaceRepository{db: db}
}

const adSpaceSelect = `SELECT a.id, a.title, a.description, a.category_id, a.location_id, a.publisher_id,
	       a.display_type, a.price_per_day, a.price_per_month, a.daily_impressions, a.monthly_footfall,
	       a.latitude, a.longitude, a.availability_status, a.images, a.dimensions, a.target_audience,
	       a.route, a.traffic_data, a.created_at, a.updated_at,
	       c.id, c.name, c.icon_url, c.parent_category_id,
	       l.id, l.city, l.state, l.country, l.address, l.latitude, l.longitude,
	       p.id, p.name, p.description, p.verification_status
	  FROM ad_spaces a
	  LEFT JOIN categories c ON c.id = a.category_id
	  LEFT JOIN locations l ON l.id = a.location_id
	  LEFT JOIN publishers p ON p.id = a.publisher_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdSpace(row rowScanner) (*domain.AdSpace, error) {
	space := &domain.AdSpace{}
	var imagesRaw, dimensionsRaw, routeRaw, trafficRaw []byte
	var targetAudience sql.NullString

	var catID null.Int
	var catName, catIcon sql.NullString
	var catParent null.Int

	var locID null.Int
	var locCity, locState, locCountry, locAddress sql.NullString
	var locLat, locLng sql.NullFloat64

	var pubID null.Int
	var pubName, pubDesc, pubVerification sql.NullString

	err := row.Scan(
		&space.ID, &space.Title, &space.Description, &space.CategoryID, &space.LocationID, &space.PublisherID,
		&space.DisplayType, &space.PricePerDay, &space.PricePerMonth, &space.DailyImpressions, &space.MonthlyFootfall,
		&space.Latitude, &space.Longitude, &space.AvailabilityStatus, &imagesRaw, &dimensionsRaw, &targetAudience,
		&routeRaw, &trafficRaw, &space.CreatedAt, &space.UpdatedAt,
		&catID, &catName, &catIcon, &catParent,
		&locID, &locCity, &locState, &locCountry, &locAddress, &locLat, &locLng,
		&pubID, &pubName, &pubDesc, &pubVerification,
	)
	if err != nil {
		return nil, err
	}

	space.TargetAudience = targetAudience.String
	space.Images = []string{}
	decodeJSONColumn(imagesRaw, &space.Images)
	if len(dimensionsRaw) > 0 {
		dims := &domain.Dimensions{}
		decodeJSONColumn(dimensionsRaw, dims)
		space.Dimensions = dims
	}
	if len(routeRaw) > 0 {
		route := &domain.RouteInfo{}
		decodeJSONColumn(routeRaw, route)
		space.Route = route
	}
	if len(trafficRaw) > 0 {
		traffic := &domain.TrafficData{}
		decodeJSONColumn(trafficRaw, traffic)
		space.TrafficData = traffic
	}

	if catID.Valid {
		space.Category = &domain.Category{
			ID:               int(catID.Int64),
			Name:             catName.String,
			IconURL:          catIcon.String,
			ParentCategoryID: catParent,
		}
	}
	if locID.Valid {
		space.Location = &domain.Location{
			ID:        int(locID.Int64),
			City:      locCity.String,
			State:     locState.String,
			Country:   locCountry.String,
			Address:   locAddress.String,
			Latitude:  locLat.Float64,
			Longitude: locLng.Float64,
		}
	}
	if pubID.Valid {
		space.Publisher = &domain.Publisher{
			ID:                 int(pubID.Int64),
			Name:               pubName.String,
			Description:        pubDesc.String,
			VerificationStatus: domain.VerificationStatus(pubVerification.String),
		}
	}

	space.CreatedAt = space.CreatedAt.In(time.UTC)
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgAdSpaceRepository) Create(ctx context.Context, space *domain.AdSpace) (*domain.AdSpace, error) {
	imagesVal, err := encodeJSONColumn(space.Images)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Create (encoding images): %w", err)
	}
	dimensionsVal, err := encodeJSONColumn(space.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Create (encoding dimensions): %w", err)
	}
	routeVal, err := encodeJSONColumn(space.Route)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Create (encoding route): %w", err)
	}
	trafficVal, err := encodeJSONColumn(space.TrafficData)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Create (encoding traffic_data): %w", err)
	}

	query := `INSERT INTO ad_spaces
	           (title, description, category_id, location_id, publisher_id, display_type,
	            price_per_day, price_per_month, daily_impressions, monthly_footfall,
	            latitude, longitude, availability_status, images, dimensions, target_audience,
	            route, traffic_data, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
	                   CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		space.Title, space.Description, space.CategoryID, space.LocationID, space.PublisherID, space.DisplayType,
		space.PricePerDay, space.PricePerMonth, space.DailyImpressions, space.MonthlyFootfall,
		space.Latitude, space.Longitude, space.AvailabilityStatus, imagesVal, dimensionsVal, space.TargetAudience,
		routeVal, trafficVal,
	).Scan(&space.ID, &space.CreatedAt, &space.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: ad space '%s' already exists", repository.ErrDuplicateEntry, space.Title)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, fmt.Errorf("%w: referenced category, location or publisher does not exist", repository.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("AdSpaceRepository.Create: %w", err)
	}
	space.CreatedAt = space.CreatedAt.In(time.UTC)
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgAdSpaceRepository) FindByID(ctx context.Context, id int) (*domain.AdSpace, error) {
	query := adSpaceSelect + ` WHERE a.id = $1`
	space, err := scanAdSpace(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("AdSpaceRepository.FindByID: %w", err)
	}
	return space, nil
}

func (r *pgAdSpaceRepository) Find(ctx context.Context, filter domain.AdSpaceFilterDTO) ([]domain.AdSpace, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if len(filter.CategoryIDs) > 0 {
		placeholders := make([]string, 0, len(filter.CategoryIDs))
		for _, id := range filter.CategoryIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argID))
			args = append(args, id)
			argID++
		}
		conditions = append(conditions, fmt.Sprintf("a.category_id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(filter.PublisherIDs) > 0 {
		placeholders := make([]string, 0, len(filter.PublisherIDs))
		for _, id := range filter.PublisherIDs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argID))
			args = append(args, id)
			argID++
		}
		conditions = append(conditions, fmt.Sprintf("a.publisher_id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.City != "" {
		// The joined predicate runs before LIMIT, so a narrow city never
		// shortens the page the way a post-fetch filter would.
		conditions = append(conditions, fmt.Sprintf("LOWER(l.city) = LOWER($%d)", argID))
		args = append(args, filter.City)
		argID++
	}
	if filter.DisplayType != "" {
		conditions = append(conditions, fmt.Sprintf("a.display_type = $%d", argID))
		args = append(args, filter.DisplayType)
		argID++
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("a.price_per_day >= $%d", argID))
		args = append(args, *filter.MinPrice)
		argID++
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("a.price_per_day <= $%d", argID))
		args = append(args, *filter.MaxPrice)
		argID++
	}
	if filter.MinFootfall != nil {
		conditions = append(conditions, fmt.Sprintf("a.monthly_footfall >= $%d", argID))
		args = append(args, *filter.MinFootfall)
		argID++
	}
	if filter.MaxFootfall != nil {
		conditions = append(conditions, fmt.Sprintf("a.monthly_footfall <= $%d", argID))
		args = append(args, *filter.MaxFootfall)
		argID++
	}
	if filter.SearchQuery != "" {
		pattern := "%" + filter.SearchQuery + "%"
		conditions = append(conditions, fmt.Sprintf("(a.title ILIKE $%d OR a.description ILIKE $%d)", argID, argID+1))
		args = append(args, pattern, pattern)
		argID += 2
	}
	if filter.AvailabilityStatus != "" {
		conditions = append(conditions, fmt.Sprintf("a.availability_status = $%d", argID))
		args = append(args, filter.AvailabilityStatus)
		argID++
	}

	query := adSpaceSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Find: %w", err)
	}
	defer rows.Close()

	var spaces []domain.AdSpace
	for rows.Next() {
		space, err := scanAdSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("AdSpaceRepository.Find (scanning row): %w", err)
		}
		spaces = append(spaces, *space)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Find (rows error): %w", err)
	}
	return spaces, nil
}

func (r *pgAdSpaceRepository) Update(ctx context.Context, space *domain.AdSpace) (*domain.AdSpace, error) {
	imagesVal, err := encodeJSONColumn(space.Images)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Update (encoding images): %w", err)
	}
	dimensionsVal, err := encodeJSONColumn(space.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Update (encoding dimensions): %w", err)
	}
	routeVal, err := encodeJSONColumn(space.Route)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Update (encoding route): %w", err)
	}
	trafficVal, err := encodeJSONColumn(space.TrafficData)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.Update (encoding traffic_data): %w", err)
	}

	query := `UPDATE ad_spaces
	           SET title = $1, description = $2, category_id = $3, location_id = $4, publisher_id = $5,
	               display_type = $6, price_per_day = $7, price_per_month = $8, daily_impressions = $9,
	               monthly_footfall = $10, latitude = $11, longitude = $12, availability_status = $13,
	               images = $14, dimensions = $15, target_audience = $16, route = $17, traffic_data = $18,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = $19
	           RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		space.Title, space.Description, space.CategoryID, space.LocationID, space.PublisherID,
		space.DisplayType, space.PricePerDay, space.PricePerMonth, space.DailyImpressions,
		space.MonthlyFootfall, space.Latitude, space.Longitude, space.AvailabilityStatus,
		imagesVal, dimensionsVal, space.TargetAudience, routeVal, trafficVal,
		space.ID,
	).Scan(&space.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
			return nil, fmt.Errorf("%w: referenced category, location or publisher does not exist", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("AdSpaceRepository.Update: %w", err)
	}
	space.UpdatedAt = space.UpdatedAt.In(time.UTC)
	return space, nil
}

func (r *pgAdSpaceRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ad_spaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("AdSpaceRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("AdSpaceRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgAdSpaceRepository) FindForCategorization(ctx context.Context, onlyUnmatched bool) ([]domain.AdSpace, error) {
	query := `SELECT id, title, description, category_id FROM ad_spaces`
	if onlyUnmatched {
		query += ` WHERE category_id IS NULL`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.FindForCategorization: %w", err)
	}
	defer rows.Close()

	var spaces []domain.AdSpace
	for rows.Next() {
		var space domain.AdSpace
		if err := rows.Scan(&space.ID, &space.Title, &space.Description, &space.CategoryID); err != nil {
			return nil, fmt.Errorf("AdSpaceRepository.FindForCategorization (scanning row): %w", err)
		}
		spaces = append(spaces, space)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("AdSpaceRepository.FindForCategorization (rows error): %w", err)
	}
	return spaces, nil
}

func (r *pgAdSpaceRepository) AssignCategory(ctx context.Context, id int, categoryID int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE ad_spaces SET category_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, categoryID, id)
	if err != nil {
		return fmt.Errorf("AdSpaceRepository.AssignCategory: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("AdSpaceRepository.AssignCategory (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
