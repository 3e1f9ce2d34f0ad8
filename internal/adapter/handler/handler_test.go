package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/tour_booking/internal/adapter/handler"
	"github.com/srgjo27/tour_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/tour_booking/internal/core/services"
	"github.com/srgjo27/tour_booking/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	BookingCode string          `json:"booking_code"`
	TourID      int64           `json:"tour_id"`
	Data        json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Discard()
	store := memory.NewStore()
	store.SeedDemo(time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local))

	bookingSvc := services.NewBookingService(store, store, nil, log)
	tourSvc := services.NewTourService(store, store, nil, log)

	return handler.NewRouter(
		handler.RouterConfig{Log: log},
		handler.NewBookingHandler(bookingSvc, log),
		handler.NewTourHandler(tourSvc, log),
	)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())

	return w, env
}

func bookBody(seats ...int) map[string]any {
	return map[string]any{
		"tour_id":      1,
		"name":         "张三",
		"phone":        "13800000000",
		"seat_numbers": seats,
	}
}

func TestBook_ThenListAndConflict(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/book", bookBody(3, 5))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "预订成功", env.Message)
	assert.Regexp(t, `^BK[A-Z0-9]{6}$`, env.BookingCode)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env = do(t, r, http.MethodGet, "/api/get_tour_bookings?tour_id=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "张三", records[0]["name"])
	assert.Equal(t, []any{3.0, 5.0}, records[0]["seat_numbers"])

	w, env = do(t, r, http.MethodPost, "/api/book", bookBody(5))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "座位已被占用", env.Message)
}

func TestBook_ValidationFailures(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/book", bookBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "请至少选择一个座位", env.Message)

	body := bookBody(1)
	body["phone"] = "123"
	w, env = do(t, r, http.MethodPost, "/api/book", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "手机号格式不正确", env.Message)

	body = bookBody(1)
	body["tour_id"] = 42
	w, env = do(t, r, http.MethodPost, "/api/book", body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "班次不存在", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/book", bookBody(6, 6))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "座位号无效", env.Message)

	w, _ = do(t, r, http.MethodPost, "/api/book", bookBody(1, 2, 3, 4, 5))
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodPost, "/api/book", bookBody(5, 6))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "剩余车位不足，仅剩1个", env.Message)
}

func TestTourLifecycle(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/create_tour", map[string]any{
		"date":        "2026-10-21",
		"time":        "09:30",
		"destination": "杭州东站",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, int64(2), env.TourID)

	w, env = do(t, r, http.MethodGet, "/api/tour?tour_id=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		VehicleModel string `json:"vehicle_model"`
		MaxSeats     int    `json:"max_seats"`
		Available    int    `json:"available"`
		TakenSeats   []int  `json:"taken_seats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "未指定", detail.VehicleModel)
	assert.Equal(t, 6, detail.MaxSeats)
	assert.Equal(t, 6, detail.Available)

	w, env = do(t, r, http.MethodGet, "/api/tours", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var tours []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &tours))
	assert.Len(t, tours, 2)

	w, env = do(t, r, http.MethodPost, "/api/delete_tour", map[string]any{"tour_id": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = do(t, r, http.MethodPost, "/api/delete_tour", map[string]any{"tour_id": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "班次不存在", env.Message)
}

func TestCreateTour_RejectsBadDate(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/create_tour", map[string]any{
		"date":        "21/10/2026",
		"time":        "09:30",
		"destination": "杭州东站",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "日期格式应为 YYYY-MM-DD", env.Message)
}

func TestGetTourBookings_EmptyAndInvalid(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodGet, "/api/get_tour_bookings?tour_id=1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = do(t, r, http.MethodGet, "/api/get_tour_bookings?tour_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "tour_id 无效", env.Message)
}

func TestSearchBooking(t *testing.T) {
	r := newServer(t)

	_, booked := do(t, r, http.MethodPost, "/api/book", bookBody(2))

	w, env := do(t, r, http.MethodGet, "/api/search_booking?q=13800", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, booked.BookingCode, records[0]["code"])
}

func TestNoRoute(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
