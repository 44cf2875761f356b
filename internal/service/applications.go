package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidApplication  = errors.New("invalid application")
	ErrAlreadyReviewed     = errors.New("application was already reviewed")
)

// Refresher reloads derived state after the firm table changed.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ApplicationService handles law firm signups and their admin review.
type ApplicationService struct {
	repo      repository.Interface
	locator   *AddressLocator
	validate  *validator.Validate
	refresher Refresher
	log       *slog.Logger
}

// NewApplicationService creates an ApplicationService. refresher may be nil.
func NewApplicationService(
	repo repository.Interface,
	locator *AddressLocator,
	validate *validator.Validate,
	refresher Refresher,
	log *slog.Logger,
) *ApplicationService {
	return &ApplicationService{repo: repo, locator: locator, validate: validate, refresher: refresher, log: log}
}

// Submit validates app and stores it as a new pending application.
func (as *ApplicationService) Submit(ctx context.Context, app models.Application) (models.Application, error) {
	if err := as.validate.StructCtx(ctx, app); err != nil {
		return models.Application{}, fmt.Errorf("%w: %w", ErrInvalidApplication, err)
	}

	app.ID = uuid.NewString()
	app.Status = models.StatusPending
	app.AdminNotes, app.ReviewedBy, app.ReviewedAt = "", "", nil

	saved, err := as.repo.SubmitApplication(ctx, app)
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to submit application: %w", err)
	}
	return saved, nil
}

// List returns applications newest first, optionally filtered by status.
func (as *ApplicationService) List(
	ctx context.Context,
	status models.ApplicationStatus,
) ([]models.Application, error) {
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusDenied:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidApplication, status)
	}

	apps, err := as.repo.ListApplications(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Get returns one application.
func (as *ApplicationService) Get(ctx context.Context, id string) (models.Application, error) {
	app, err := as.repo.GetApplication(ctx, id)
	if err != nil {
		return models.Application{}, mapRepoError(err)
	}
	return app, nil
}

// Deny rejects a pending application.
func (as *ApplicationService) Deny(
	ctx context.Context,
	id string,
	review models.Review,
) (models.Application, error) {
	app, err := as.repo.DenyApplication(ctx, id, review)
	if err != nil {
		return models.Application{}, mapRepoError(err)
	}
	return app, nil
}

// Approve geocodes the application address, creates the law firm and marks
// the application approved. A firm whose address cannot be geocoded is still
// created; the coordinate backfill retries it later.
func (as *ApplicationService) Approve(
	ctx context.Context,
	id string,
	review models.Review,
) (models.Application, models.LawFirm, error) {
	app, err := as.repo.GetApplication(ctx, id)
	if err != nil {
		return models.Application{}, models.LawFirm{}, mapRepoError(err)
	}
	if app.Status != models.StatusPending {
		return models.Application{}, models.LawFirm{}, ErrAlreadyReviewed
	}

	firm := models.LawFirm{
		ID:            uuid.NewString(),
		Name:          app.FirmName,
		StreetAddress: app.StreetAddress,
		City:          app.City,
		State:         app.State,
		ZipCode:       app.ZipCode,
		Phone:         app.Phone,
		Email:         app.Email,
		Website:       app.Website,
		Specialties:   app.Specialties,
		Hours:         app.BusinessHours,
		IsActive:      true,
	}

	coords, err := as.locator.Locate(ctx, applicationAddress(app))
	if err != nil {
		as.log.WarnContext(ctx, "Could not geocode application address, firm left for backfill",
			"application", id, "error", err)
	} else {
		firm.Coordinates = &coords
	}

	approved, err := as.repo.ApproveApplication(ctx, id, firm, review)
	if err != nil {
		return models.Application{}, models.LawFirm{}, mapRepoError(err)
	}

	if as.refresher != nil {
		if err = as.refresher.Refresh(ctx); err != nil {
			as.log.WarnContext(ctx, "Directory refresh after approval failed", "error", err)
		}
	}

	return approved, firm, nil
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, repository.ErrNotPending):
		return ErrAlreadyReviewed
	default:
		return err
	}
}
