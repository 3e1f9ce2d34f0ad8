package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/tour_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(tourID int64, code string, seats ...int) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		Code:        code,
		TourID:      tourID,
		Name:        "张三",
		Phone:       "13800000000",
		SeatNumbers: seats,
		CreatedAt:   time.Now(),
	}
}

func TestStore_BookingLifecycle(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	tour := domain.Tour{Date: "2026-10-20", Time: "08:00", Destination: "上海南站", MaxSeats: 4}
	require.NoError(t, store.CreateTour(ctx, &tour))
	assert.Equal(t, int64(1), tour.ID)

	require.NoError(t, store.CreateBooking(ctx, newBooking(1, "BKAAAAAA", 1, 2)))

	err := store.CreateBooking(ctx, newBooking(1, "BKBBBBBB", 2, 3))
	assert.True(t, domain.IsConflict(err))
	assert.EqualError(t, err, "座位已被占用")

	err = store.CreateBooking(ctx, newBooking(1, "BKCCCCCC", 3, 4, 5))
	assert.EqualError(t, err, "剩余车位不足，仅剩2个")

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Booked)

	taken, err := store.TakenSeats(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, taken)

	exists, err := store.CodeExists(ctx, "BKAAAAAA")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := store.Search(ctx, "bkaa")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestStore_DeleteTourRemovesBookings(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	store.SeedDemo(time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local))
	tours, err := store.ListTours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "2026-10-20", tours[0].Date)

	require.NoError(t, store.CreateBooking(ctx, newBooking(1, "BKAAAAAA", 1)))
	require.NoError(t, store.DeleteTour(ctx, 1))

	bookings, err := store.ListByTour(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	_, err = store.GetByID(ctx, 1)
	assert.True(t, domain.IsNotFound(err))

	assert.True(t, domain.IsNotFound(store.DeleteTour(ctx, 1)))
}
