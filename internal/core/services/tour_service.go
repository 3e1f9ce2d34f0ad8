package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/ports"
)

type TourService struct {
	tourRepo    ports.TourRepository
	bookingRepo ports.BookingRepository
	cache       ports.BookingCache
	log         *slog.Logger
}

func NewTourService(tourRepo ports.TourRepository, bookingRepo ports.BookingRepository, cache ports.BookingCache, log *slog.Logger) *TourService {
	return &TourService{
		tourRepo:    tourRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		log:         log,
	}
}

func (s *TourService) CreateTour(ctx context.Context, in domain.TourInput) (*domain.Tour, error) {
	if strings.TrimSpace(in.Destination) == "" {
		return nil, domain.ValidationError{Field: "destination", Msg: "请填写目的地"}
	}
	if in.Date == "" || in.Time == "" {
		return nil, domain.ValidationError{Field: "date", Msg: "请填写出发日期和时间"}
	}

	tour := in.Tour()
	tour.Destination = strings.TrimSpace(tour.Destination)

	if err := s.tourRepo.CreateTour(ctx, &tour); err != nil {
		return nil, domain.InternalError{Msg: "internal server error: failed to create tour", Err: err}
	}

	s.log.Info("tour created", "tour_id", tour.ID, "destination", tour.Destination, "date", tour.Date, "time", tour.Time)

	return &tour, nil
}

func (s *TourService) DeleteTour(ctx context.Context, tourID int64) error {
	if err := s.tourRepo.DeleteTour(ctx, tourID); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.InternalError{Msg: "internal server error: failed to delete tour", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, tourID); err != nil {
			s.log.Warn("booking cache invalidation failed", "tour_id", tourID, "error", err)
		}
	}

	s.log.Info("tour deleted", "tour_id", tourID)

	return nil
}

func (s *TourService) ListTours(ctx context.Context) ([]domain.TourSummary, error) {
	tours, err := s.tourRepo.ListTours(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "internal server error: failed to list tours", Err: err}
	}

	out := make([]domain.TourSummary, 0, len(tours))
	for i := range tours {
		out = append(out, domain.TourSummary{Tour: tours[i], Available: tours[i].Available()})
	}

	return out, nil
}

func (s *TourService) GetTour(ctx context.Context, tourID int64) (*domain.TourDetail, error) {
	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return nil, err
	}

	taken, err := s.bookingRepo.TakenSeats(ctx, tourID)
	if err != nil {
		return nil, domain.InternalError{Msg: "internal server error: failed to load seats", Err: err}
	}
	taken = domain.SortedSeats(taken)

	return &domain.TourDetail{
		Tour:       *tour,
		Available:  tour.Available(),
		TakenSeats: taken,
		Seats:      domain.SeatMap(tour.MaxSeats, taken),
	}, nil
}
