package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/core/ports"
)

var (
	ErrNoSeatSelected = errors.New("no seat selected")
	ErrFormBusy       = errors.New("submission already in progress")
	ErrAlreadyBooked  = errors.New("booking already confirmed")
	ErrNotConfirmed   = errors.New("no confirmed booking")
)

// ButtonState is the submit control's state:
// idle -> submitting -> (idle | done). Only done is terminal.
type ButtonState int

const (
	ButtonIdle ButtonState = iota
	ButtonSubmitting
	ButtonDone
)

func (s ButtonState) String() string {
	switch s {
	case ButtonSubmitting:
		return "submitting"
	case ButtonDone:
		return "done"
	default:
		return "idle"
	}
}

type ButtonView struct {
	Label    string
	Disabled bool
}

type Contact struct {
	Name  string
	Phone string
}

type Confirmation struct {
	BookingCode string
	Seats       []int
}

// SeatsText renders the booked seats as "3, 5号".
func (c Confirmation) SeatsText() string {
	return domain.JoinSeats(c.Seats, ", ") + "号"
}

func (c Confirmation) HTML() (string, error) {
	return renderTemplate(confirmationTmpl, c)
}

// BookingForm drives the booking page of one tour.
type BookingForm struct {
	mu           sync.Mutex
	tourID       int64
	picker       *SeatPicker
	api          ports.BookingAPI
	dialog       Dialog
	clipboard    Clipboard
	state        ButtonState
	confirmation *Confirmation
}

func NewBookingForm(tourID int64, picker *SeatPicker, api ports.BookingAPI, dialog Dialog, clipboard Clipboard) *BookingForm {
	return &BookingForm{
		tourID:    tourID,
		picker:    picker,
		api:       api,
		dialog:    dialog,
		clipboard: clipboard,
	}
}

// ClickSeat forwards a seat click to the picker. Clicks after a confirmed
// booking are ignored since the form has been replaced.
func (f *BookingForm) ClickSeat(seat int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == ButtonDone {
		return false
	}
	return f.picker.Click(seat)
}

func (f *BookingForm) SelectionView() SelectionView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.picker.View()
}

func (f *BookingForm) Seats() []SeatView {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.picker.Seats()
}

func (f *BookingForm) WarningVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.picker.WarningVisible()
}

func (f *BookingForm) State() ButtonState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

func (f *BookingForm) Button() ButtonView {
	switch f.State() {
	case ButtonSubmitting:
		return ButtonView{Label: labelSubmitting, Disabled: true}
	case ButtonDone:
		return ButtonView{Label: labelBooked, Disabled: true}
	default:
		return ButtonView{Label: labelSubmit}
	}
}

func (f *BookingForm) Confirmation() *Confirmation {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.confirmation
}

// Submit books the selected seats. With an empty selection it shows the
// warning and returns ErrNoSeatSelected without contacting the server.
// Failures are shown through the dialog and leave the form idle; nothing
// is retried.
func (f *BookingForm) Submit(ctx context.Context, contact Contact) (*Confirmation, error) {
	f.mu.Lock()
	switch f.state {
	case ButtonSubmitting:
		f.mu.Unlock()
		return nil, ErrFormBusy
	case ButtonDone:
		f.mu.Unlock()
		return nil, ErrAlreadyBooked
	}

	selection := f.picker.Selection()
	if selection.Len() == 0 {
		f.picker.ShowWarning()
		f.mu.Unlock()
		return nil, ErrNoSeatSelected
	}

	seats := selection.Seats()
	f.state = ButtonSubmitting
	f.mu.Unlock()

	code, err := f.api.Book(ctx, domain.BookingRequest{
		TourID:      f.tourID,
		Name:        contact.Name,
		Phone:       contact.Phone,
		SeatNumbers: seats,
	})

	if err != nil {
		err = alertFailure(ctx, f.dialog, msgBookFailed, err)
		f.setState(ButtonIdle)
		return nil, err
	}

	conf := &Confirmation{BookingCode: code, Seats: seats}

	f.mu.Lock()
	f.state = ButtonDone
	f.confirmation = conf
	f.mu.Unlock()

	return conf, nil
}

// CopyCode puts the confirmed booking code on the clipboard.
func (f *BookingForm) CopyCode(ctx context.Context) error {
	conf := f.Confirmation()
	if conf == nil {
		return ErrNotConfirmed
	}

	if err := f.clipboard.WriteAll(conf.BookingCode); err != nil {
		return err
	}

	return f.dialog.Alert(ctx, msgCopied+conf.BookingCode)
}

func (f *BookingForm) setState(s ButtonState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
