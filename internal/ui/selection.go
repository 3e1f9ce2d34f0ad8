// Package ui holds the client-side booking controllers: seat selection,
// booking submission, the per-tour booking details disclosure and the admin
// tour panel. Controllers expose view models instead of touching a page;
// user prompts go through Dialog so callers can await them.
package ui

import (
	"github.com/srgjo27/tour_booking/internal/core/domain"
)

const noSeatsText = "无"

// Selection is an ordered set of seat numbers. The zero value is empty and
// values are never mutated in place.
type Selection struct {
	seats []int
}

func NewSelection(seats ...int) Selection {
	var sel Selection
	for _, n := range seats {
		if !sel.Contains(n) {
			sel = Toggle(sel, n)
		}
	}
	return sel
}

// Toggle returns sel with seat added at the end, or removed when present.
func Toggle(sel Selection, seat int) Selection {
	for i, n := range sel.seats {
		if n == seat {
			next := make([]int, 0, len(sel.seats)-1)
			next = append(next, sel.seats[:i]...)
			next = append(next, sel.seats[i+1:]...)
			return Selection{seats: next}
		}
	}

	next := make([]int, len(sel.seats), len(sel.seats)+1)
	copy(next, sel.seats)
	return Selection{seats: append(next, seat)}
}

func (s Selection) Seats() []int {
	return append([]int(nil), s.seats...)
}

func (s Selection) Len() int {
	return len(s.seats)
}

func (s Selection) Contains(seat int) bool {
	for _, n := range s.seats {
		if n == seat {
			return true
		}
	}
	return false
}

// SelectionView is what the page shows for a selection: the visible text
// and the hidden form field value.
type SelectionView struct {
	DisplayText string
	FieldValue  string
}

func (s Selection) View() SelectionView {
	display := noSeatsText
	if len(s.seats) > 0 {
		display = domain.JoinSeats(s.seats, ", ")
	}

	return SelectionView{
		DisplayText: display,
		FieldValue:  domain.JoinSeats(s.seats, ","),
	}
}
