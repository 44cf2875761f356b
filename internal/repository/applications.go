package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, firm_name, contact_person_name, contact_person_title,
	street_address, city, state, zip_code, phone, email, website,
	years_in_business, number_of_attorneys, specialties, services_offered,
	average_closing_time, business_hours, weekend_availability, emergency_services,
	additional_info, terms_accepted, marketing_consent,
	status, admin_notes, reviewed_by, reviewed_at, created_at, updated_at`

// SubmitApplication stores a new pending application and returns it with its timestamps.
func (r *Repository) SubmitApplication(ctx context.Context, app models.Application) (models.Application, error) {
	query := `
		INSERT INTO law_firm_applications (
			id, firm_name, contact_person_name, contact_person_title,
			street_address, city, state, zip_code, phone, email, website,
			years_in_business, number_of_attorneys, specialties, services_offered,
			average_closing_time, business_hours, weekend_availability, emergency_services,
			additional_info, terms_accepted, marketing_consent, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23
		)
		RETURNING created_at, updated_at;
	`

	err := r.db.QueryRow(ctx, query,
		app.ID, app.FirmName, app.ContactPersonName, app.ContactPersonTitle,
		app.StreetAddress, app.City, app.State, app.ZipCode, app.Phone, app.Email, app.Website,
		app.YearsInBusiness, app.NumberOfAttorneys, app.Specialties, app.ServicesOffered,
		app.AverageClosingTime, app.BusinessHours, app.WeekendAvailability, app.EmergencyServices,
		app.AdditionalInfo, app.TermsAccepted, app.MarketingConsent, string(models.StatusPending),
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to insert application: %w", err)
	}

	app.Status = models.StatusPending
	r.log.InfoContext(ctx, "Law firm application submitted", "ID", app.ID, "firm", app.FirmName)
	return app, nil
}

// ListApplications returns applications newest first. An empty status lists all of them.
func (r *Repository) ListApplications(
	ctx context.Context,
	status models.ApplicationStatus,
) ([]models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM law_firm_applications
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC;
	`

	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		app, errScan := scanApplication(rows)
		if errScan != nil {
			return nil, errScan
		}
		apps = append(apps, app)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return apps, nil
}

// GetApplication returns the application with id or ErrNotFound.
func (r *Repository) GetApplication(ctx context.Context, id string) (models.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM law_firm_applications
		WHERE id = $1;
	`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Application{}, ErrNotFound
	}
	return app, err
}

// DenyApplication marks a pending application denied. It returns ErrNotFound
// for unknown ids and ErrNotPending for applications already reviewed.
func (r *Repository) DenyApplication(
	ctx context.Context,
	id string,
	review models.Review,
) (models.Application, error) {
	return r.review(ctx, id, review, func(pgx.Tx) (string, error) {
		return "", nil
	}, models.StatusDenied)
}

// ApproveApplication creates firm and marks the pending application approved
// inside one transaction.
func (r *Repository) ApproveApplication(
	ctx context.Context,
	id string,
	firm models.LawFirm,
	review models.Review,
) (models.Application, error) {
	return r.review(ctx, id, review, func(tx pgx.Tx) (string, error) {
		if err := insertFirm(ctx, tx, firm); err != nil {
			return "", err
		}
		return firm.ID, nil
	}, models.StatusApproved)
}

func (r *Repository) review(
	ctx context.Context,
	id string,
	review models.Review,
	apply func(tx pgx.Tx) (string, error),
	status models.ApplicationStatus,
) (models.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	app, err := reviewTx(ctx, tx, id, review, apply, status)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.WarnContext(ctx, "Failed to roll back review", "ID", id, "error", rbErr)
		}
		return models.Application{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Application{}, fmt.Errorf("failed to commit review: %w", err)
	}

	r.log.InfoContext(ctx, "Law firm application reviewed", "ID", id, "status", status, "by", review.ReviewedBy)
	return app, nil
}

func reviewTx(
	ctx context.Context,
	tx pgx.Tx,
	id string,
	review models.Review,
	apply func(tx pgx.Tx) (string, error),
	status models.ApplicationStatus,
) (models.Application, error) {
	var current string
	err := tx.QueryRow(ctx, `SELECT status FROM law_firm_applications WHERE id = $1 FOR UPDATE;`, id).
		Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Application{}, ErrNotFound
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to lock application: %w", err)
	}
	if models.ApplicationStatus(current) != models.StatusPending {
		return models.Application{}, ErrNotPending
	}

	firmID, err := apply(tx)
	if err != nil {
		return models.Application{}, err
	}

	query := `
		UPDATE law_firm_applications
		SET
			status = $1,
			admin_notes = $2,
			reviewed_by = $3,
			reviewed_at = now(),
			firm_id = NULLIF($4, '')::uuid,
			updated_at = now()
		WHERE id = $5
		RETURNING ` + applicationColumns + `;
	`

	app, err := scanApplication(tx.QueryRow(ctx, query, string(status), review.Notes, review.ReviewedBy, firmID, id))
	if err != nil {
		return models.Application{}, err
	}
	return app, nil
}

func scanApplication(row pgx.Row) (models.Application, error) {
	var (
		app    models.Application
		status string
	)

	err := row.Scan(
		&app.ID, &app.FirmName, &app.ContactPersonName, &app.ContactPersonTitle,
		&app.StreetAddress, &app.City, &app.State, &app.ZipCode, &app.Phone, &app.Email, &app.Website,
		&app.YearsInBusiness, &app.NumberOfAttorneys, &app.Specialties, &app.ServicesOffered,
		&app.AverageClosingTime, &app.BusinessHours, &app.WeekendAvailability, &app.EmergencyServices,
		&app.AdditionalInfo, &app.TermsAccepted, &app.MarketingConsent,
		&status, &app.AdminNotes, &app.ReviewedBy, &app.ReviewedAt, &app.CreatedAt, &app.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Application{}, err
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to scan application: %w", err)
	}

	app.Status = models.ApplicationStatus(status)
	return app, nil
}
