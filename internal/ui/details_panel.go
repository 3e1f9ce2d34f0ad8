package ui

import (
	"context"
	"log/slog"
	"sync"

	"github.com/srgjo27/tour_booking/internal/core/ports"
)

type BookingRow struct {
	Code      string
	Name      string
	Phone     string
	Seats     string
	CreatedAt string
}

// DetailsPanel is the collapsible booking list of one tour on the admin
// page. Content is fetched on the first expansion only; later toggles just
// show or hide it, so it may go stale until the page is reloaded.
type DetailsPanel struct {
	mu       sync.Mutex
	tourID   int64
	api      ports.BookingAPI
	log      *slog.Logger
	expanded bool
	content  string
	rows     []BookingRow
	failed   bool
}

func NewDetailsPanel(tourID int64, api ports.BookingAPI, log *slog.Logger) *DetailsPanel {
	return &DetailsPanel{tourID: tourID, api: api, log: log}
}

func (p *DetailsPanel) Toggle(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.expanded {
		p.expanded = false
		return
	}

	p.expanded = true
	if p.content == "" {
		p.load(ctx)
	}
}

func (p *DetailsPanel) load(ctx context.Context) {
	records, err := p.api.TourBookings(ctx, p.tourID)
	if err != nil {
		p.log.Error("failed to load booking details", "tour_id", p.tourID, "error", err)
		p.failed = true
		p.content = renderNotice("booking-error", msgDetailsFailed)
		return
	}

	if len(records) == 0 {
		p.content = renderNotice("booking-empty", msgNoBookings)
		return
	}

	rows := make([]BookingRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, BookingRow{
			Code:      r.Code,
			Name:      r.Name,
			Phone:     r.Phone,
			Seats:     r.SeatNumbers.String(),
			CreatedAt: r.CreatedAt,
		})
	}

	content, err := renderTemplate(bookingTableTmpl, rows)
	if err != nil {
		p.log.Error("failed to render booking details", "tour_id", p.tourID, "error", err)
		p.failed = true
		p.content = renderNotice("booking-error", msgDetailsFailed)
		return
	}

	p.rows = rows
	p.content = content
}

func (p *DetailsPanel) Expanded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.expanded
}

func (p *DetailsPanel) ToggleLabel() string {
	if p.Expanded() {
		return labelHideDetails
	}
	return labelShowDetails
}

// Content is the rendered panel HTML; empty until the first expansion.
func (p *DetailsPanel) Content() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.content
}

func (p *DetailsPanel) Rows() []BookingRow {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]BookingRow(nil), p.rows...)
}

func (p *DetailsPanel) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.failed
}
