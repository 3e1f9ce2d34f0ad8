package ui

import (
	"context"
	"sync"
	"time"

	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/ports"
)

// DefaultTourDate is the date the create form starts with: tomorrow.
func DefaultTourDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format("2006-01-02")
}

// AdminPanel creates and deletes tours. It keeps no tour list of its own
// and relies on the Reloader to re-sync after every successful change.
type AdminPanel struct {
	mu       sync.Mutex
	api      ports.BookingAPI
	dialog   Dialog
	reloader Reloader
	state    ButtonState
}

func NewAdminPanel(api ports.BookingAPI, dialog Dialog, reloader Reloader) *AdminPanel {
	return &AdminPanel{api: api, dialog: dialog, reloader: reloader}
}

func (a *AdminPanel) State() ButtonState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

func (a *AdminPanel) Button() ButtonView {
	if a.State() == ButtonSubmitting {
		return ButtonView{Label: labelCreatingTour, Disabled: true}
	}
	return ButtonView{Label: labelCreateTour}
}

func (a *AdminPanel) CreateTour(ctx context.Context, in domain.TourInput) (int64, error) {
	if err := a.begin(); err != nil {
		return 0, err
	}
	defer a.end()

	tourID, err := a.api.CreateTour(ctx, in)
	if err != nil {
		return 0, alertFailure(ctx, a.dialog, msgCreateFailed, err)
	}

	if err := a.dialog.Alert(ctx, msgCreateOK); err != nil {
		return tourID, err
	}

	return tourID, a.reloader.Reload(ctx)
}

// DeleteTour asks for confirmation first and reports whether the tour was
// deleted.
func (a *AdminPanel) DeleteTour(ctx context.Context, tourID int64) (bool, error) {
	ok, err := a.dialog.Confirm(ctx, msgDeleteConfirm)
	if err != nil || !ok {
		return false, err
	}

	if err := a.begin(); err != nil {
		return false, err
	}
	defer a.end()

	if err := a.api.DeleteTour(ctx, tourID); err != nil {
		return false, alertFailure(ctx, a.dialog, msgDeleteFailed, err)
	}

	if err := a.dialog.Alert(ctx, msgDeleteOK); err != nil {
		return true, err
	}

	return true, a.reloader.Reload(ctx)
}

func (a *AdminPanel) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == ButtonSubmitting {
		return ErrFormBusy
	}
	a.state = ButtonSubmitting
	return nil
}

// end returns to idle: after a reload the page starts fresh.
func (a *AdminPanel) end() {
	a.mu.Lock()
	a.state = ButtonIdle
	a.mu.Unlock()
}
