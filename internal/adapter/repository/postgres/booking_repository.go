package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/srgjo27/tour_booking/internal/core/domain"
)

const uniqueViolation = "23505"

const bookingSelect = `
	SELECT b.id, b.code, b.tour_id, b.name, b.phone, b.created_at,
		COALESCE(array_agg(s.seat_number ORDER BY s.seat_number) FILTER (WHERE s.seat_number IS NOT NULL), '{}')
	FROM bookings b
	LEFT JOIN booking_seats s ON s.booking_id = b.id
	`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	var maxSeats, booked int
	err = tx.QueryRowContext(ctx, `SELECT max_seats, booked FROM tours WHERE id = $1 FOR UPDATE`, booking.TourID).Scan(&maxSeats, &booked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tourNotFound()
		}
		return fmt.Errorf("failed to lock tour: %w", err)
	}

	if available := maxSeats - booked; len(booking.SeatNumbers) > available {
		return domain.ConflictError{Resource: "tour", Msg: fmt.Sprintf("剩余车位不足，仅剩%d个", available)}
	}

	queryHeader := `
	INSERT INTO bookings (id, code, tour_id, name, phone, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.ExecContext(ctx, queryHeader, booking.ID, booking.Code, booking.TourID, booking.Name, booking.Phone, booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking header: %w", err)
	}

	querySeat := `
	INSERT INTO booking_seats (booking_id, tour_id, seat_number)
	VALUES ($1, $2, $3)
	`

	stmt, err := tx.PrepareContext(ctx, querySeat)
	if err != nil {
		return fmt.Errorf("failed to prepare seat statement: %w", err)
	}

	defer stmt.Close()

	for _, seat := range booking.SeatNumbers {
		_, err := stmt.ExecContext(ctx, booking.ID, booking.TourID, seat)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return domain.ConflictError{Resource: "seat", Msg: "座位已被占用", Err: err}
			}
			return fmt.Errorf("failed to insert booking seat %d: %w", seat, err)
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE tours SET booked = booked + $1 WHERE id = $2`, len(booking.SeatNumbers), booking.TourID)
	if err != nil {
		return fmt.Errorf("failed to update booked count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) ListByTour(ctx context.Context, tourID int64) ([]domain.Booking, error) {
	query := bookingSelect + `
	WHERE b.tour_id = $1
	GROUP BY b.id
	ORDER BY b.created_at, b.code
	`

	return r.queryBookings(ctx, query, tourID)
}

// likeEscaper makes the search query match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches q as a literal substring of the code, phone or name.
func (r *BookingRepository) Search(ctx context.Context, q string) ([]domain.Booking, error) {
	query := bookingSelect + `
	WHERE LOWER(b.code) LIKE $1 ESCAPE '\' OR b.phone LIKE $1 ESCAPE '\' OR LOWER(b.name) LIKE $1 ESCAPE '\'
	GROUP BY b.id
	ORDER BY b.created_at, b.code
	`

	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"

	return r.queryBookings(ctx, query, pattern)
}

func (r *BookingRepository) TakenSeats(ctx context.Context, tourID int64) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT seat_number FROM booking_seats WHERE tour_id = $1 ORDER BY seat_number`, tourID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var seats []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}

		seats = append(seats, n)
	}

	return seats, rows.Err()
}

func (r *BookingRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var seats []int64
		if err := rows.Scan(
			&b.ID,
			&b.Code,
			&b.TourID,
			&b.Name,
			&b.Phone,
			&b.CreatedAt,
			pq.Array(&seats),
		); err != nil {
			return nil, err
		}

		b.SeatNumbers = make([]int, len(seats))
		for i, n := range seats {
			b.SeatNumbers[i] = int(n)
		}

		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
