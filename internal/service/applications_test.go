package service_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/locator/internal/geocoding"
	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/UnknownOlympus/locator/internal/repository"
	"github.com/UnknownOlympus/locator/internal/service"
	"github.com/UnknownOlympus/locator/test/mocks"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const applicationID = "2f7c9a51-6f3e-4c8e-9a5b-0c1d2e3f4a5b"

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(_ context.Context) error {
	r.calls++
	return r.err
}

func validApplication() models.Application {
	return models.Application{
		FirmName:           "Queen City Closings",
		ContactPersonName:  "Dana Reyes",
		ContactPersonTitle: "Managing Partner",
		StreetAddress:      "200 S College St",
		City:               "Charlotte",
		State:              "NC",
		ZipCode:            "28202",
		Phone:              "704-555-0199",
		Email:              "dana@example.com",
		Specialties:        []string{"Residential"},
		BusinessHours:      "Mon-Fri 8-6",
		TermsAccepted:      true,
	}
}

type fixture struct {
	repo      *mocks.Repository
	provider  *mocks.Provider
	refresher *countingRefresher
	svc       *service.ApplicationService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := mocks.NewRepository(t)
	provider := mocks.NewProvider(t)
	refresher := &countingRefresher{}
	locator := service.NewAddressLocator(provider, "us", slog.Default())
	svc := service.NewApplicationService(
		repo, locator, validator.New(validator.WithRequiredStructEnabled()), refresher, slog.Default(),
	)
	return fixture{repo: repo, provider: provider, refresher: refresher, svc: svc}
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := t.Context()

	t.Run("valid application is stored pending", func(t *testing.T) {
		f := newFixture(t)
		app := validApplication()
		app.Status = models.StatusApproved
		app.AdminNotes = "sneaky"

		f.repo.On("SubmitApplication", ctx, mock.MatchedBy(func(a models.Application) bool {
			return a.ID != "" && a.Status == models.StatusPending && a.AdminNotes == "" && a.FirmName == app.FirmName
		})).Return(func(_ context.Context, a models.Application) (models.Application, error) {
			return a, nil
		}).Once()

		saved, err := f.svc.Submit(ctx, app)

		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, models.StatusPending, saved.Status)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		f := newFixture(t)
		app := validApplication()
		app.FirmName = ""
		app.Email = "not-an-email"

		_, err := f.svc.Submit(ctx, app)

		require.ErrorIs(t, err, service.ErrInvalidApplication)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		f := newFixture(t)
		app := validApplication()
		app.TermsAccepted = false

		_, err := f.svc.Submit(ctx, app)

		require.ErrorIs(t, err, service.ErrInvalidApplication)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.On("SubmitApplication", ctx, mock.Anything).Return(models.Application{}, assert.AnError).Once()

		_, err := f.svc.Submit(ctx, validApplication())

		require.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, service.ErrInvalidApplication)
	})
}

func TestApplicationService_List(t *testing.T) {
	ctx := t.Context()

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.List(ctx, "archived")

		require.ErrorIs(t, err, service.ErrInvalidApplication)
	})

	t.Run("passes status through", func(t *testing.T) {
		f := newFixture(t)
		apps := []models.Application{{ID: applicationID, Status: models.StatusDenied}}

		f.repo.On("ListApplications", ctx, models.StatusDenied).Return(apps, nil).Once()

		got, err := f.svc.List(ctx, models.StatusDenied)

		require.NoError(t, err)
		assert.Equal(t, apps, got)
	})
}

func TestApplicationService_Deny(t *testing.T) {
	ctx := t.Context()
	review := models.Review{Notes: "Incomplete", ReviewedBy: "admin"}

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"not found", repository.ErrNotFound, service.ErrApplicationNotFound},
		{"already reviewed", repository.ErrNotPending, service.ErrAlreadyReviewed},
		{"other error", assert.AnError, assert.AnError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.On("DenyApplication", ctx, applicationID, review).Return(models.Application{}, tt.repoErr).Once()

			_, err := f.svc.Deny(ctx, applicationID, review)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("DenyApplication", ctx, applicationID, review).
			Return(models.Application{ID: applicationID, Status: models.StatusDenied}, nil).Once()

		app, err := f.svc.Deny(ctx, applicationID, review)

		require.NoError(t, err)
		assert.Equal(t, models.StatusDenied, app.Status)
	})
}

func TestApplicationService_Approve(t *testing.T) {
	ctx := t.Context()
	review := models.Review{ReviewedBy: "admin"}
	pending := validApplication()
	pending.ID = applicationID
	pending.Status = models.StatusPending
	fullAddress := geocoding.SearchRequest{Query: "200 S College St, Charlotte, NC 28202", Limit: 1}

	t.Run("geocodes and creates firm", func(t *testing.T) {
		f := newFixture(t)

		f.repo.On("GetApplication", ctx, applicationID).Return(pending, nil).Once()
		f.provider.On("Search", ctx, fullAddress).Return([]models.GeocodeResult{{
			Coordinates: models.Coordinates{Latitude: 35.2259, Longitude: -80.8462},
			Address:     models.Address{CountryCode: "us"},
		}}, nil).Once()
		f.repo.On("ApproveApplication", ctx, applicationID, mock.MatchedBy(func(firm models.LawFirm) bool {
			return firm.ID != "" && firm.Name == pending.FirmName && firm.IsActive &&
				firm.Coordinates != nil && firm.Coordinates.Latitude == 35.2259 &&
				firm.Hours == pending.BusinessHours && firm.Rating == 0
		}), review).Return(models.Application{ID: applicationID, Status: models.StatusApproved}, nil).Once()

		app, firm, err := f.svc.Approve(ctx, applicationID, review)

		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, app.Status)
		require.NotNil(t, firm.Coordinates)
		assert.Equal(t, 1, f.refresher.calls)
	})

	t.Run("geocoding failure still creates firm", func(t *testing.T) {
		f := newFixture(t)
		f.refresher.err = assert.AnError

		f.repo.On("GetApplication", ctx, applicationID).Return(pending, nil).Once()
		f.provider.On("Search", ctx, fullAddress).Return(nil, assert.AnError).Once()
		f.repo.On("ApproveApplication", ctx, applicationID, mock.MatchedBy(func(firm models.LawFirm) bool {
			return firm.Coordinates == nil
		}), review).Return(models.Application{ID: applicationID, Status: models.StatusApproved}, nil).Once()

		_, firm, err := f.svc.Approve(ctx, applicationID, review)

		require.NoError(t, err)
		assert.Nil(t, firm.Coordinates)
	})

	t.Run("unknown application", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetApplication", ctx, applicationID).Return(models.Application{}, repository.ErrNotFound).Once()

		_, _, err := f.svc.Approve(ctx, applicationID, review)

		require.ErrorIs(t, err, service.ErrApplicationNotFound)
	})

	t.Run("already reviewed skips geocoding", func(t *testing.T) {
		f := newFixture(t)
		denied := pending
		denied.Status = models.StatusDenied
		f.repo.On("GetApplication", ctx, applicationID).Return(denied, nil).Once()

		_, _, err := f.svc.Approve(ctx, applicationID, review)

		require.ErrorIs(t, err, service.ErrAlreadyReviewed)
		assert.Zero(t, f.refresher.calls)
	})

	t.Run("concurrent review loses", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("GetApplication", ctx, applicationID).Return(pending, nil).Once()
		f.provider.On("Search", ctx, mock.Anything).Return([]models.GeocodeResult{}, nil).Times(4)
		f.repo.On("ApproveApplication", ctx, applicationID, mock.Anything, review).
			Return(models.Application{}, repository.ErrNotPending).Once()

		_, _, err := f.svc.Approve(ctx, applicationID, review)

		require.ErrorIs(t, err, service.ErrAlreadyReviewed)
	})
}
