package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/srgjo27/tour_booking/internal/adapter/cache"
	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/ports/mocks"
	"github.com/srgjo27/tour_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTour() *domain.Tour {
	return &domain.Tour{
		ID:           1,
		Date:         "2026-10-20",
		Time:         "08:00",
		Destination:  "上海南站",
		VehicleModel: "大巴",
		MaxSeats:     6,
		Booked:       1,
	}
}

func TestBook_Success(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)

	db, mockRedis := redismock.NewClientMock()
	bookingCache := cache.NewBookingCache(db, 0)

	service := services.NewBookingService(mockTourRepo, mockBookingRepo, bookingCache, discardLogger())

	ctx := context.Background()

	req := domain.BookingRequest{
		TourID:      1,
		Name:        "张三",
		Phone:       "13800000000",
		SeatNumbers: []int{3, 5},
	}

	mockTourRepo.On("GetByID", ctx, int64(1)).Return(sampleTour(), nil)
	mockBookingRepo.On("TakenSeats", ctx, int64(1)).Return([]int{1}, nil)
	mockBookingRepo.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	mockBookingRepo.On("CreateBooking", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.TourID == 1 && b.Name == "张三" && assert.ObjectsAreEqual([]int{3, 5}, b.SeatNumbers)
	})).Return(nil)

	mockRedis.ExpectIncr("tour_bookings:1:version").SetVal(1)

	resp, err := service.Book(ctx, req)

	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.Regexp(t, `^BK[A-Z0-9]{6}$`, resp.BookingCode)
		assert.Equal(t, resp.BookingCode, resp.Booking.Code)
		assert.Equal(t, "3, 5", resp.Booking.SeatNumbers.String())
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestBook_Fail_SeatTaken(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)

	service := services.NewBookingService(mockTourRepo, mockBookingRepo, nil, discardLogger())

	ctx := context.Background()

	mockTourRepo.On("GetByID", ctx, int64(1)).Return(sampleTour(), nil)
	mockBookingRepo.On("TakenSeats", ctx, int64(1)).Return([]int{3}, nil)

	resp, err := service.Book(ctx, domain.BookingRequest{TourID: 1, Name: "张三", Phone: "13800000000", SeatNumbers: []int{3, 5}})

	assert.Nil(t, resp)
	assert.True(t, domain.IsConflict(err))
	assert.EqualError(t, err, "座位已被占用")
}

func TestBook_Fail_NoSeats(t *testing.T) {
	service := services.NewBookingService(mocks.NewTourRepository(t), mocks.NewBookingRepository(t), nil, discardLogger())

	resp, err := service.Book(context.Background(), domain.BookingRequest{TourID: 1, Name: "张三", Phone: "13800000000"})

	assert.Nil(t, resp)
	assert.True(t, domain.IsValidation(err))
	assert.EqualError(t, err, "请至少选择一个座位")
}

func TestBook_Fail_NotEnoughRoom(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)
	service := services.NewBookingService(mockTourRepo, mockBookingRepo, nil, discardLogger())

	ctx := context.Background()
	tour := sampleTour()
	tour.Booked = 5

	mockTourRepo.On("GetByID", ctx, int64(1)).Return(tour, nil)

	_, err := service.Book(ctx, domain.BookingRequest{TourID: 1, Name: "张三", Phone: "13800000000", SeatNumbers: []int{2, 3}})

	assert.True(t, domain.IsConflict(err))
	assert.EqualError(t, err, "剩余车位不足，仅剩1个")
}

func TestBook_Fail_InvalidSeatNumber(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	service := services.NewBookingService(mockTourRepo, mocks.NewBookingRepository(t), nil, discardLogger())

	ctx := context.Background()
	mockTourRepo.On("GetByID", ctx, int64(1)).Return(sampleTour(), nil)

	for _, seats := range [][]int{{7}, {0}, {2, 2}} {
		_, err := service.Book(ctx, domain.BookingRequest{TourID: 1, Name: "张三", Phone: "13800000000", SeatNumbers: seats})
		assert.True(t, domain.IsValidation(err), "seats %v", seats)
	}
}

func TestBook_Fail_TourNotFound(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	service := services.NewBookingService(mockTourRepo, mocks.NewBookingRepository(t), nil, discardLogger())

	ctx := context.Background()
	mockTourRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.NotFoundError{Resource: "tour", Msg: "班次不存在"})

	_, err := service.Book(ctx, domain.BookingRequest{TourID: 9, Name: "张三", Phone: "13800000000", SeatNumbers: []int{1}})

	assert.True(t, domain.IsNotFound(err))
	assert.EqualError(t, err, "班次不存在")
}

func TestBook_Fail_RepositoryError(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)
	service := services.NewBookingService(mockTourRepo, mockBookingRepo, nil, discardLogger())

	ctx := context.Background()
	mockTourRepo.On("GetByID", ctx, int64(1)).Return(sampleTour(), nil)
	mockBookingRepo.On("TakenSeats", ctx, int64(1)).Return([]int{}, nil)
	mockBookingRepo.On("CodeExists", ctx, mock.Anything).Return(false, nil)
	mockBookingRepo.On("CreateBooking", ctx, mock.Anything).Return(errors.New("connection reset"))

	_, err := service.Book(ctx, domain.BookingRequest{TourID: 1, Name: "张三", Phone: "13800000000", SeatNumbers: []int{2}})

	assert.True(t, domain.IsInternal(err))
	assert.Contains(t, err.Error(), "failed to create booking")
}

func TestListTourBookings_CacheHit(t *testing.T) {
	mockCache := mocks.NewBookingCache(t)
	service := services.NewBookingService(mocks.NewTourRepository(t), mocks.NewBookingRepository(t), mockCache, discardLogger())

	ctx := context.Background()
	cached := []domain.BookingRecord{{Code: "BKAAAAAA", SeatNumbers: domain.NewSeatList(1)}}
	mockCache.On("GetTourBookings", ctx, int64(1)).Return(cached, int64(0), true, nil)

	records, err := service.ListTourBookings(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, cached, records)
}

func TestListTourBookings_CacheMiss(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockCache := mocks.NewBookingCache(t)
	service := services.NewBookingService(mockTourRepo, mockBookingRepo, mockCache, discardLogger())

	ctx := context.Background()
	mockCache.On("GetTourBookings", ctx, int64(1)).Return(nil, int64(4), false, nil)
	mockTourRepo.On("GetByID", ctx, int64(1)).Return(sampleTour(), nil)
	mockBookingRepo.On("ListByTour", ctx, int64(1)).Return([]domain.Booking{
		{Code: "BKAAAAAA", Name: "张三", Phone: "13800000000", SeatNumbers: []int{2, 4}},
	}, nil)
	mockCache.On("SetTourBookings", ctx, int64(1), int64(4), mock.Anything).Return(nil)

	records, err := service.ListTourBookings(ctx, 1)

	assert.NoError(t, err)
	if assert.Len(t, records, 1) {
		assert.Equal(t, "2, 4", records[0].SeatNumbers.String())
	}
}

func TestListTourBookings_InvalidationDuringFillIsNotServed(t *testing.T) {
	mockTourRepo := mocks.NewTourRepository(t)
	mockBookingRepo := mocks.NewBookingRepository(t)

	db, mockRedis := redismock.NewClientMock()
	bookingCache := cache.NewBookingCache(db, time.Minute)
	service := services.NewBookingService(mockTourRepo, mockBookingRepo, bookingCache, discardLogger())

	ctx := context.Background()
	stale := []domain.Booking{{Code: "BKAAAAAA", Name: "张三", SeatNumbers: []int{2}}}
	fresh := []domain.Booking{
		{Code: "BKAAAAAA", Name: "张三", SeatNumbers: []int{2}},
		{Code: "BKBBBBBB", Name: "李四", SeatNumbers: []int{3}},
	}
	staleData, err := json.Marshal(wireRecords(stale))
	require.NoError(t, err)
	freshData, err := json.Marshal(wireRecords(fresh))
	require.NoError(t, err)

	mockTourRepo.On("GetByID", ctx, int64(1)).Return(sampleTour(), nil)

	// A booking lands between the list query and the cache fill.
	mockBookingRepo.On("ListByTour", ctx, int64(1)).Run(func(mock.Arguments) {
		require.NoError(t, bookingCache.Invalidate(ctx, 1))
	}).Return(stale, nil).Once()
	mockBookingRepo.On("ListByTour", ctx, int64(1)).Return(fresh, nil).Once()

	mockRedis.ExpectGet("tour_bookings:1:version").RedisNil()
	mockRedis.ExpectGet("tour_bookings:1:v0").RedisNil()
	mockRedis.ExpectIncr("tour_bookings:1:version").SetVal(1)
	mockRedis.ExpectSet("tour_bookings:1:v0", staleData, time.Minute).SetVal("OK")
	mockRedis.ExpectGet("tour_bookings:1:version").SetVal("1")
	mockRedis.ExpectGet("tour_bookings:1:v1").RedisNil()
	mockRedis.ExpectSet("tour_bookings:1:v1", freshData, time.Minute).SetVal("OK")

	first, err := service.ListTourBookings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := service.ListTourBookings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func wireRecords(bookings []domain.Booking) []domain.BookingRecord {
	records := make([]domain.BookingRecord, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, b.Record())
	}
	return records
}

func TestSearchBookings(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	service := services.NewBookingService(mocks.NewTourRepository(t), mockBookingRepo, nil, discardLogger())

	ctx := context.Background()
	mockBookingRepo.On("Search", ctx, "bkaa").Return([]domain.Booking{{Code: "BKAAAAAA"}}, nil)

	records, err := service.SearchBookings(ctx, " bkaa ")

	assert.NoError(t, err)
	assert.Len(t, records, 1)
}
