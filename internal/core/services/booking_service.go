package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/ports"
)

const maxCodeAttempts = 5

type BookResponse struct {
	BookingCode string               `json:"booking_code"`
	Booking     domain.BookingRecord `json:"data"`
}

type BookingService struct {
	tourRepo    ports.TourRepository
	bookingRepo ports.BookingRepository
	cache       ports.BookingCache
	log         *slog.Logger
	now         func() time.Time
}

// NewBookingService wires the booking use cases. cache may be nil.
func NewBookingService(tourRepo ports.TourRepository, bookingRepo ports.BookingRepository, cache ports.BookingCache, log *slog.Logger) *BookingService {
	return &BookingService{
		tourRepo:    tourRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

func (s *BookingService) Book(ctx context.Context, req domain.BookingRequest) (*BookResponse, error) {
	if len(req.SeatNumbers) == 0 {
		return nil, domain.ValidationError{Field: "seat_numbers", Msg: "请至少选择一个座位"}
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ValidationError{Field: "name", Msg: "请填写姓名"}
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, domain.ValidationError{Field: "phone", Msg: "请填写手机号"}
	}

	tour, err := s.tourRepo.GetByID(ctx, req.TourID)
	if err != nil {
		return nil, err
	}

	if err := validateSeats(req.SeatNumbers, tour.MaxSeats); err != nil {
		return nil, err
	}

	if available := tour.Available(); len(req.SeatNumbers) > available {
		return nil, domain.ConflictError{Resource: "tour", Msg: fmt.Sprintf("剩余车位不足，仅剩%d个", available)}
	}

	taken, err := s.bookingRepo.TakenSeats(ctx, tour.ID)
	if err != nil {
		return nil, domain.InternalError{Msg: "internal server error: failed to load seats", Err: err}
	}

	if overlaps(req.SeatNumbers, taken) {
		return nil, domain.ConflictError{Resource: "seat", Msg: "座位已被占用"}
	}

	code, err := s.newCode(ctx)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		Code:        code,
		TourID:      tour.ID,
		Name:        name,
		Phone:       phone,
		SeatNumbers: append([]int(nil), req.SeatNumbers...),
		CreatedAt:   s.now(),
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		if domain.IsConflict(err) || domain.IsNotFound(err) {
			return nil, err
		}
		return nil, domain.InternalError{Msg: "internal server error: failed to create booking", Err: err}
	}

	s.invalidate(ctx, tour.ID)

	s.log.Info("booking created", "code", code, "tour_id", tour.ID, "seats", domain.JoinSeats(booking.SeatNumbers, ","))

	return &BookResponse{
		BookingCode: code,
		Booking:     booking.Record(),
	}, nil
}

// ListTourBookings serves from the cache when it can. On a miss the list is
// stored under the version read before loading, so a write that invalidates
// in between leaves the filled entry unreachable.
func (s *BookingService) ListTourBookings(ctx context.Context, tourID int64) ([]domain.BookingRecord, error) {
	var (
		version  int64
		canCache bool
	)
	if s.cache != nil {
		records, v, ok, err := s.cache.GetTourBookings(ctx, tourID)
		switch {
		case err != nil:
			s.log.Warn("booking cache read failed", "tour_id", tourID, "error", err)
		case ok:
			return records, nil
		default:
			version, canCache = v, true
		}
	}

	if _, err := s.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByTour(ctx, tourID)
	if err != nil {
		return nil, domain.InternalError{Msg: "internal server error: failed to list bookings", Err: err}
	}

	records := toRecords(bookings)

	if canCache {
		if err := s.cache.SetTourBookings(ctx, tourID, version, records); err != nil {
			s.log.Warn("booking cache write failed", "tour_id", tourID, "error", err)
		}
	}

	return records, nil
}

func (s *BookingService) SearchBookings(ctx context.Context, query string) ([]domain.BookingRecord, error) {
	bookings, err := s.bookingRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, domain.InternalError{Msg: "internal server error: failed to search bookings", Err: err}
	}

	return toRecords(bookings), nil
}

func (s *BookingService) newCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := domain.NewBookingCode()

		exists, err := s.bookingRepo.CodeExists(ctx, code)
		if err != nil {
			return "", domain.InternalError{Msg: "internal server error: failed to check booking code", Err: err}
		}
		if !exists {
			return code, nil
		}
	}

	return "", domain.InternalError{Msg: "internal server error: could not allocate booking code"}
}

func (s *BookingService) invalidate(ctx context.Context, tourID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tourID); err != nil {
		s.log.Warn("booking cache invalidation failed", "tour_id", tourID, "error", err)
	}
}

func validateSeats(seats []int, maxSeats int) error {
	seen := make(map[int]bool, len(seats))
	for _, n := range seats {
		if n < 1 || n > maxSeats || seen[n] {
			return domain.ValidationError{Field: "seat_numbers", Msg: "座位号无效"}
		}
		seen[n] = true
	}
	return nil
}

func overlaps(requested, taken []int) bool {
	set := make(map[int]bool, len(taken))
	for _, n := range taken {
		set[n] = true
	}
	for _, n := range requested {
		if set[n] {
			return true
		}
	}
	return false
}

func toRecords(bookings []domain.Booking) []domain.BookingRecord {
	records := make([]domain.BookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, b.Record())
	}
	return records
}
