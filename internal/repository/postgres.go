package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/jackc/pgx/v5"
)

// MaxGeocodingAttempts is how many times the backfill tries a firm address
// before giving up on it.
const MaxGeocodingAttempts = 5

const firmColumns = `id, name, street_address, city, state, zip_code, phone, email, website,
	latitude, longitude, rating, reviews_count, specialties, hours, is_active, created_at, updated_at`

// FetchActiveFirms returns every active firm with known coordinates, ordered by name.
func (r *Repository) FetchActiveFirms(ctx context.Context) ([]models.LawFirm, error) {
	query := `
		SELECT ` + firmColumns + `
		FROM law_firms
		WHERE is_active = true AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY name ASC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active law firms: %w", err)
	}
	defer rows.Close()

	firms, err := collectFirms(rows)
	if err != nil {
		return nil, err
	}

	r.log.DebugContext(ctx, "Active law firms loaded", "count", len(firms))
	return firms, nil
}

// FetchFirmsForGeocoding retrieves active firms whose coordinates are still unknown.
// Firms that already failed MaxGeocodingAttempts times or have no street address
// are skipped. The oldest firms come first.
func (r *Repository) FetchFirmsForGeocoding(ctx context.Context, limit int) ([]models.LawFirm, error) {
	query := `
		SELECT ` + firmColumns + `
		FROM law_firms
		WHERE
			latitude IS NULL
			AND is_active = true
			AND geocoding_attempts < $1
			AND street_address <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query law firms without coordinates: %w", err)
	}
	defer rows.Close()

	firms, err := collectFirms(rows)
	if err != nil {
		return nil, err
	}

	for _, firm := range firms {
		r.log.DebugContext(ctx, "A law firm without coordinates has been received.",
			"ID", firm.ID, "Name", firm.Name)
	}
	return firms, nil
}

// UpdateFirmCoordinates stores the coordinates of a firm and clears its geocoding error.
func (r *Repository) UpdateFirmCoordinates(ctx context.Context, firmID string, coords models.Coordinates) error {
	query := `
		UPDATE law_firms
		SET
			latitude = $1,
			longitude = $2,
			geocoding_error = NULL,
			updated_at = now()
		WHERE
			id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, firmID)
	if err != nil {
		return fmt.Errorf("failed to update law firm coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the geocoding attempt count of a firm and
// records the last error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, firmID string, errMsg string) error {
	query := `
		UPDATE law_firms
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, firmID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

func insertFirm(ctx context.Context, tx pgx.Tx, firm models.LawFirm) error {
	query := `
		INSERT INTO law_firms (
			id, name, street_address, city, state, zip_code, phone, email, website,
			latitude, longitude, rating, reviews_count, specialties, hours, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`

	var lat, lon *float64
	if firm.Coordinates != nil {
		lat, lon = &firm.Coordinates.Latitude, &firm.Coordinates.Longitude
	}

	_, err := tx.Exec(ctx, query,
		firm.ID, firm.Name, firm.StreetAddress, firm.City, firm.State, firm.ZipCode,
		firm.Phone, firm.Email, firm.Website, lat, lon, firm.Rating, firm.ReviewsCount,
		firm.Specialties, firm.Hours, firm.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert law firm: %w", err)
	}
	return nil
}

func collectFirms(rows pgx.Rows) ([]models.LawFirm, error) {
	firms := []models.LawFirm{}
	for rows.Next() {
		firm, err := scanFirm(rows)
		if err != nil {
			return nil, err
		}
		firms = append(firms, firm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}
	return firms, nil
}

func scanFirm(row pgx.Row) (models.LawFirm, error) {
	var (
		firm     models.LawFirm
		lat, lon *float64
	)

	err := row.Scan(
		&firm.ID, &firm.Name, &firm.StreetAddress, &firm.City, &firm.State, &firm.ZipCode,
		&firm.Phone, &firm.Email, &firm.Website, &lat, &lon, &firm.Rating, &firm.ReviewsCount,
		&firm.Specialties, &firm.Hours, &firm.IsActive, &firm.CreatedAt, &firm.UpdatedAt,
	)
	if err != nil {
		return models.LawFirm{}, fmt.Errorf("failed to scan law firm: %w", err)
	}

	if lat != nil && lon != nil {
		firm.Coordinates = &models.Coordinates{Latitude: *lat, Longitude: *lon}
	}
	return firm, nil
}
