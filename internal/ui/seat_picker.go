package ui

import (
	"github.com/srgjo27/tour_booking/internal/core/domain"
)

type SeatView struct {
	Number      int
	Unavailable bool
	Selected    bool
}

// SeatPicker is the seat grid of one booking page. It is not safe for
// concurrent use; BookingForm serialises access to it.
type SeatPicker struct {
	capacity    int
	unavailable map[int]bool
	selection   Selection
	warning     bool
}

func NewSeatPicker(capacity int, taken []int) *SeatPicker {
	unavailable := make(map[int]bool, len(taken))
	for _, n := range taken {
		unavailable[n] = true
	}
	return &SeatPicker{capacity: capacity, unavailable: unavailable}
}

func NewSeatPickerForTour(tour *domain.TourDetail) *SeatPicker {
	return NewSeatPicker(tour.MaxSeats, tour.TakenSeats)
}

// Click toggles seat and hides the no-seat warning. Unavailable seats and
// numbers outside the grid are ignored; the result reports whether the
// selection changed.
func (p *SeatPicker) Click(seat int) bool {
	if seat < 1 || seat > p.capacity || p.unavailable[seat] {
		return false
	}

	p.selection = Toggle(p.selection, seat)
	p.warning = false

	return true
}

func (p *SeatPicker) Selection() Selection {
	return p.selection
}

func (p *SeatPicker) View() SelectionView {
	return p.selection.View()
}

func (p *SeatPicker) Seats() []SeatView {
	seats := make([]SeatView, 0, p.capacity)
	for n := 1; n <= p.capacity; n++ {
		seats = append(seats, SeatView{
			Number:      n,
			Unavailable: p.unavailable[n],
			Selected:    p.selection.Contains(n),
		})
	}
	return seats
}

func (p *SeatPicker) ShowWarning() {
	p.warning = true
}

func (p *SeatPicker) WarningVisible() bool {
	return p.warning
}
