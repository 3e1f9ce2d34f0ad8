package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatBooked    SeatStatus = "BOOKED"
)

type Seat struct {
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
}

func (s Seat) IsAvailable() bool {
	return s.Status == SeatAvailable
}

// SeatMap lists every seat of a tour with the taken ones marked booked.
func SeatMap(maxSeats int, taken []int) []Seat {
	booked := make(map[int]bool, len(taken))
	for _, n := range taken {
		booked[n] = true
	}

	seats := make([]Seat, 0, maxSeats)
	for n := 1; n <= maxSeats; n++ {
		status := SeatAvailable
		if booked[n] {
			status = SeatBooked
		}
		seats = append(seats, Seat{Number: n, Status: status})
	}

	return seats
}

// SortedSeats returns a sorted copy of seats.
func SortedSeats(seats []int) []int {
	out := append([]int(nil), seats...)
	sort.Ints(out)
	return out
}

// SeatList is the seat_numbers field of a booking record. The server sends
// an array of integers; a pre-joined string is also accepted and kept
// verbatim for display.
type SeatList struct {
	numbers []int
	text    string
	isText  bool
}

func NewSeatList(seats ...int) SeatList {
	return SeatList{numbers: append([]int(nil), seats...)}
}

// SeatText wraps a seat list that arrived already formatted.
func SeatText(text string) SeatList {
	return SeatList{text: text, isText: true}
}

// Numbers returns the seat numbers; nil for a text list.
func (l SeatList) Numbers() []int {
	return append([]int(nil), l.numbers...)
}

func (l SeatList) String() string {
	if l.isText {
		return l.text
	}
	return JoinSeats(l.numbers, ", ")
}

func (l SeatList) MarshalJSON() ([]byte, error) {
	if l.isText {
		return json.Marshal(l.text)
	}
	if l.numbers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.numbers)
}

func (l *SeatList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*l = SeatList{}
		return nil
	case strings.HasPrefix(trimmed, "["):
		var nums []int
		if err := json.Unmarshal(data, &nums); err != nil {
			return fmt.Errorf("seat list: %w", err)
		}
		*l = SeatList{numbers: nums}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("seat list: %w", err)
	}
	*l = SeatText(text)

	return nil
}

func JoinSeats(seats []int, sep string) string {
	parts := make([]string, len(seats))
	for i, n := range seats {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}
