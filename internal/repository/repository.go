package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/locator/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotPending is returned when an application was already reviewed.
	ErrNotPending = errors.New("application is not pending")
)

// Database is the subset of pgxpool.Pool the repository needs.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

type Repository struct {
	db  Database
	log *slog.Logger
}

// FirmSource reads the active firm directory.
type FirmSource interface {
	FetchActiveFirms(ctx context.Context) ([]models.LawFirm, error)
}

type Interface interface {
	FirmSource
	FetchFirmsForGeocoding(ctx context.Context, limit int) ([]models.LawFirm, error)
	UpdateFirmCoordinates(ctx context.Context, firmID string, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, firmID string, errMsg string) error

	SubmitApplication(ctx context.Context, app models.Application) (models.Application, error)
	ListApplications(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error)
	GetApplication(ctx context.Context, id string) (models.Application, error)
	DenyApplication(ctx context.Context, id string, review models.Review) (models.Application, error)
	ApproveApplication(ctx context.Context, id string, firm models.LawFirm, review models.Review) (models.Application, error)

	Ping(ctx context.Context) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
