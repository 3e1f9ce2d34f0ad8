package ui_test

import (
	"context"
	"errors"
	"sync"

	"github.com/srgjo27/tour_booking/internal/core/domain"
)

type fakeAPI struct {
	mu sync.Mutex

	bookCode  string
	bookErr   error
	onBook    func()
	bookCalls []domain.BookingRequest

	createID    int64
	createErr   error
	createCalls []domain.TourInput

	deleteErr   error
	deleteCalls []int64

	records      []domain.BookingRecord
	recordsErr   error
	recordsCalls int
}

func (f *fakeAPI) Book(ctx context.Context, req domain.BookingRequest) (string, error) {
	f.mu.Lock()
	f.bookCalls = append(f.bookCalls, req)
	hook := f.onBook
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return f.bookCode, f.bookErr
}

func (f *fakeAPI) CreateTour(ctx context.Context, in domain.TourInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, in)
	return f.createID, f.createErr
}

func (f *fakeAPI) DeleteTour(ctx context.Context, tourID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, tourID)
	return f.deleteErr
}

func (f *fakeAPI) TourBookings(ctx context.Context, tourID int64) ([]domain.BookingRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordsCalls++
	return f.records, f.recordsErr
}

type fakeDialog struct {
	alerts   []string
	confirms []string
	answer   bool
}

func (d *fakeDialog) Alert(ctx context.Context, message string) error {
	d.alerts = append(d.alerts, message)
	return nil
}

func (d *fakeDialog) Confirm(ctx context.Context, message string) (bool, error) {
	d.confirms = append(d.confirms, message)
	return d.answer, nil
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type fakeReloader struct {
	reloads int
}

func (r *fakeReloader) Reload(ctx context.Context) error {
	r.reloads++
	return nil
}

var errNetwork = errors.New("transport failure: dial tcp: connection refused")
