package ports

import (
	"context"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

type TourRepository interface {
	CreateTour(ctx context.Context, tour *domain.Tour) error
	GetByID(ctx context.Context, tourID int64) (*domain.Tour, error)
	ListTours(ctx context.Context) ([]domain.Tour, error)
	// DeleteTour removes the tour together with all of its bookings.
	DeleteTour(ctx context.Context, tourID int64) error
}

type BookingRepository interface {
	// CreateBooking stores the booking and marks its seats taken. It fails
	// with a domain.ConflictError when a seat is already taken or the tour
	// has no room left.
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	ListByTour(ctx context.Context, tourID int64) ([]domain.Booking, error)
	TakenSeats(ctx context.Context, tourID int64) ([]int, error)
	Search(ctx context.Context, query string) ([]domain.Booking, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// BookingCache keeps per-tour booking lists under a version that
// Invalidate bumps. GetTourBookings reports the current version even on a
// miss; a list stored with an older version is never returned.
type BookingCache interface {
	GetTourBookings(ctx context.Context, tourID int64) (records []domain.BookingRecord, version int64, ok bool, err error)
	SetTourBookings(ctx context.Context, tourID int64, version int64, records []domain.BookingRecord) error
	Invalidate(ctx context.Context, tourID int64) error
}
