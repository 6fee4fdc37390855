// Package repository holds the gorm-backed data access for pitches, bookings,
// pricing seasons and customers. Every method takes a context and returns
// ErrNotFound, ErrDuplicate or ErrReferenced for the conditions callers branch on;
// anything else is a wrapped driver error.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campsite-backend/models"
	"campsite-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrReferenced = errors.New("record is referenced by other rows")
)

type PitchFilter struct {
	Type     *models.PitchType
	Status   *models.PitchStatus
	SectorID *uint
}

type PitchRepository interface {
	List(ctx context.Context, filter PitchFilter) ([]models.Pitch, error)
	GetByID(ctx context.Context, id uint) (*models.Pitch, error)
	FindByNumber(ctx context.Context, number string, suffixes ...string) ([]models.Pitch, error)
	Create(ctx context.Context, pitch *models.Pitch) error
	Update(ctx context.Context, pitch *models.Pitch) error
	UpdateSuffix(ctx context.Context, id uint, suffix string) error
	Delete(ctx context.Context, id uint) error

	// CountActiveBookings counts confirmed or checked-in bookings of the pitch
	// that end after since.
	CountActiveBookings(ctx context.Context, pitchID uint, since time.Time) (int64, error)
	CountBookings(ctx context.Context, pitchID uint) (int64, error)
	MoveBookings(ctx context.Context, fromPitchID, toPitchID uint) error

	ListSectors(ctx context.Context) ([]models.Sector, error)
	CreateSector(ctx context.Context, sector *models.Sector) error
	DeleteSector(ctx context.Context, id uint) error

	// Transaction runs fn against a repository bound to a single database transaction.
	Transaction(ctx context.Context, fn func(tx PitchRepository) error) error
}

type BookingFilter struct {
	Range      *utils.DateRange
	Status     *models.BookingStatus
	PitchID    *uint
	CustomerID *uint
}

type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	GetByID(ctx context.Context, id uint) (*models.Booking, error)

	// FindOverlapping returns non-cancelled bookings intersecting r, ordered by check-in.
	// pitchID narrows the search to one pitch; excludeID skips one booking (used when moving it).
	FindOverlapping(ctx context.Context, r utils.DateRange, pitchID *uint, excludeID *uint) ([]models.Booking, error)
	CountMovements(ctx context.Context, day time.Time) (arrivals int64, departures int64, err error)

	Create(ctx context.Context, booking *models.Booking) error
	Save(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uint) error
}

type SeasonRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.PricingSeason, error)

	// ListActiveBetween returns active seasons whose inclusive range intersects [from, to].
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]models.PricingSeason, error)
	CountActive(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.PricingSeason, error)
	Create(ctx context.Context, season *models.PricingSeason) error
	Save(ctx context.Context, season *models.PricingSeason) error
	Delete(ctx context.Context, id uint) error
}

type CustomerRepository interface {
	List(ctx context.Context, query string) ([]models.Customer, error)
	GetByID(ctx context.Context, id uint, withBookings bool) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Save(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
	CountBookings(ctx context.Context, customerID uint) (int64, error)
}

// translate maps driver errors onto the package sentinels.
func translate(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKey(err):
		return fmt.Errorf("%s: %w", action, ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", action, ErrReferenced)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1451 || merr.Number == 1452
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
