package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

// Store keeps tours and bookings in process memory. It satisfies both
// ports.TourRepository and ports.BookingRepository.
type Store struct {
	mu       sync.RWMutex
	tours    []domain.Tour
	bookings []domain.Booking
	nextID   int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// SeedDemo adds the sample departure shown on a fresh install.
func (s *Store) SeedDemo(now time.Time) {
	tour := domain.Tour{
		Date:         now.AddDate(0, 0, 1).Format("2006-01-02"),
		Time:         "08:00",
		Destination:  "上海南站",
		VehicleModel: "大巴",
		MaxSeats:     6,
	}
	_ = s.CreateTour(context.Background(), &tour)
}

func (s *Store) CreateTour(ctx context.Context, tour *domain.Tour) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tour.ID = s.nextID
	tour.Booked = 0
	s.nextID++
	s.tours = append(s.tours, *tour)

	return nil
}

func (s *Store) GetByID(ctx context.Context, tourID int64) (*domain.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.tourIndex(tourID)
	if i < 0 {
		return nil, tourNotFound()
	}

	tour := s.tours[i]
	return &tour, nil
}

func (s *Store) ListTours(ctx context.Context) ([]domain.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Tour(nil), s.tours...), nil
}

func (s *Store) DeleteTour(ctx context.Context, tourID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tourIndex(tourID)
	if i < 0 {
		return tourNotFound()
	}
	s.tours = append(s.tours[:i], s.tours[i+1:]...)

	kept := s.bookings[:0]
	for _, b := range s.bookings {
		if b.TourID != tourID {
			kept = append(kept, b)
		}
	}
	s.bookings = kept

	return nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tourIndex(booking.TourID)
	if i < 0 {
		return tourNotFound()
	}

	tour := &s.tours[i]
	if available := tour.Available(); len(booking.SeatNumbers) > available {
		return domain.ConflictError{Resource: "tour", Msg: fmt.Sprintf("剩余车位不足，仅剩%d个", available)}
	}

	taken := s.takenLocked(booking.TourID)
	for _, n := range booking.SeatNumbers {
		if taken[n] {
			return domain.ConflictError{Resource: "seat", Msg: "座位已被占用"}
		}
	}

	stored := *booking
	stored.SeatNumbers = append([]int(nil), booking.SeatNumbers...)
	s.bookings = append(s.bookings, stored)
	tour.Booked += len(booking.SeatNumbers)

	return nil
}

func (s *Store) ListByTour(ctx context.Context, tourID int64) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.TourID == tourID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) TakenSeats(ctx context.Context, tourID int64) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var seats []int
	for _, b := range s.bookings {
		if b.TourID == tourID {
			seats = append(seats, b.SeatNumbers...)
		}
	}
	return seats, nil
}

func (s *Store) Search(ctx context.Context, query string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Matches(query) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) tourIndex(tourID int64) int {
	for i := range s.tours {
		if s.tours[i].ID == tourID {
			return i
		}
	}
	return -1
}

func (s *Store) takenLocked(tourID int64) map[int]bool {
	taken := map[int]bool{}
	for _, b := range s.bookings {
		if b.TourID == tourID {
			for _, n := range b.SeatNumbers {
				taken[n] = true
			}
		}
	}
	return taken
}

func tourNotFound() error {
	return domain.NotFoundError{Resource: "tour", Msg: "班次不存在"}
}
