package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	BookingCodePrefix   = "BK"
	bookingCodeLength   = 6
	bookingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CreatedAtLayout is the wire format of booking timestamps.
	CreatedAtLayout = "2006-01-02 15:04:05"
)

type Booking struct {
	ID          uuid.UUID
	Code        string
	TourID      int64
	Name        string
	Phone       string
	SeatNumbers []int
	CreatedAt   time.Time
}

// Record converts a stored booking into its wire form.
func (b Booking) Record() BookingRecord {
	return BookingRecord{
		Code:        b.Code,
		Name:        b.Name,
		Phone:       b.Phone,
		SeatNumbers: NewSeatList(b.SeatNumbers...),
		TourID:      b.TourID,
		CreatedAt:   b.CreatedAt.Format(CreatedAtLayout),
	}
}

// Matches reports whether q occurs in the code, name or phone, ignoring case.
func (b Booking) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.Contains(strings.ToLower(b.Code), q) ||
		strings.Contains(b.Phone, q) ||
		strings.Contains(strings.ToLower(b.Name), q)
}

type BookingRequest struct {
	TourID      int64  `json:"tour_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	SeatNumbers []int  `json:"seat_numbers"`
}

type BookingRecord struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	SeatNumbers SeatList `json:"seat_numbers"`
	TourID      int64    `json:"tour_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// NewBookingCode derives a "BK" + 6 character code from a random uuid.
func NewBookingCode() string {
	id := uuid.New()

	var sb strings.Builder
	sb.Grow(len(BookingCodePrefix) + bookingCodeLength)
	sb.WriteString(BookingCodePrefix)
	for i := 0; i < bookingCodeLength; i++ {
		sb.WriteByte(bookingCodeAlphabet[int(id[i])%len(bookingCodeAlphabet)])
	}

	return sb.String()
}
