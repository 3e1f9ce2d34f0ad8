package ports

import (
	"context"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

// BookingAPI is the server contract the client controllers talk to.
// Application failures come back as *domain.RejectedError; any other error
// is a transport or decoding failure.
type BookingAPI interface {
	Book(ctx context.Context, req domain.BookingRequest) (string, error)
	CreateTour(ctx context.Context, in domain.TourInput) (int64, error)
	DeleteTour(ctx context.Context, tourID int64) error
	TourBookings(ctx context.Context, tourID int64) ([]domain.BookingRecord, error)
}
