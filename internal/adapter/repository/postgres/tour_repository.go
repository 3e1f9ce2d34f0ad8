package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

type TourRepository struct {
	db *sql.DB
}

func NewTourRepository(db *sql.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) CreateTour(ctx context.Context, tour *domain.Tour) error {
	query := `
	INSERT INTO tours (date, time, destination, vehicle_model, max_seats, booked)
	VALUES ($1, $2, $3, $4, $5, 0)
	RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, tour.Date, tour.Time, tour.Destination, tour.VehicleModel, tour.MaxSeats).Scan(&tour.ID)
	if err != nil {
		return fmt.Errorf("failed to insert tour: %w", err)
	}

	tour.Booked = 0

	return nil
}

func (r *TourRepository) GetByID(ctx context.Context, tourID int64) (*domain.Tour, error) {
	query := `
	SELECT id, date, time, destination, vehicle_model, max_seats, booked
	FROM tours
	WHERE id = $1
	`

	var tour domain.Tour
	err := r.db.QueryRowContext(ctx, query, tourID).Scan(
		&tour.ID,
		&tour.Date,
		&tour.Time,
		&tour.Destination,
		&tour.VehicleModel,
		&tour.MaxSeats,
		&tour.Booked,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tourNotFound()
		}

		return nil, err
	}

	return &tour, nil
}

func (r *TourRepository) ListTours(ctx context.Context) ([]domain.Tour, error) {
	query := `
	SELECT id, date, time, destination, vehicle_model, max_seats, booked
	FROM tours
	ORDER BY date, time, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		var tour domain.Tour
		if err := rows.Scan(
			&tour.ID,
			&tour.Date,
			&tour.Time,
			&tour.Destination,
			&tour.VehicleModel,
			&tour.MaxSeats,
			&tour.Booked,
		); err != nil {
			return nil, err
		}

		tours = append(tours, tour)
	}

	return tours, rows.Err()
}

// DeleteTour relies on ON DELETE CASCADE to drop bookings and their seats.
func (r *TourRepository) DeleteTour(ctx context.Context, tourID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, tourID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return tourNotFound()
	}

	return nil
}

func tourNotFound() error {
	return domain.NotFoundError{Resource: "tour", Msg: "班次不存在"}
}
