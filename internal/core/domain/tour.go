package domain

const (
	DefaultVehicleModel = "未指定"
	DefaultMaxSeats     = 6
)

type Tour struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Destination  string `json:"destination"`
	VehicleModel string `json:"vehicle_model"`
	MaxSeats     int    `json:"max_seats"`
	Booked       int    `json:"booked"`
}

func (t *Tour) Available() int {
	if t.Booked >= t.MaxSeats {
		return 0
	}
	return t.MaxSeats - t.Booked
}

// TourInput carries the admin form fields for a new tour.
type TourInput struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Destination  string `json:"destination"`
	VehicleModel string `json:"vehicle_model"`
	MaxSeats     int    `json:"max_seats"`
}

// Tour applies the defaults for omitted fields.
func (in TourInput) Tour() Tour {
	t := Tour{
		Date:         in.Date,
		Time:         in.Time,
		Destination:  in.Destination,
		VehicleModel: in.VehicleModel,
		MaxSeats:     in.MaxSeats,
	}
	if t.VehicleModel == "" {
		t.VehicleModel = DefaultVehicleModel
	}
	if t.MaxSeats <= 0 {
		t.MaxSeats = DefaultMaxSeats
	}
	return t
}

// TourSummary is the wire form of a tour in listings.
type TourSummary struct {
	Tour
	Available int `json:"available"`
}

// TourDetail is what a booking page needs: the tour and its seat map.
type TourDetail struct {
	Tour
	Available  int    `json:"available"`
	TakenSeats []int  `json:"taken_seats"`
	Seats      []Seat `json:"seats"`
}
