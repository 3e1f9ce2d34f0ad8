package terminal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/ui"
)

func PrintTours(w io.Writer, tours []domain.TourSummary) error {
	if len(tours) == 0 {
		_, err := fmt.Fprintln(w, "暂无班次")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t日期\t时间\t目的地\t车型\t座位\t剩余")
	for _, t := range tours {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n", t.ID, t.Date, t.Time, t.Destination, t.VehicleModel, t.MaxSeats, t.Available)
	}
	return tw.Flush()
}

// PrintSeats draws the seat grid: [ 3] free, [*3] selected, [x3] taken.
func PrintSeats(w io.Writer, seats []ui.SeatView) error {
	var sb strings.Builder
	for i, s := range seats {
		mark := " "
		switch {
		case s.Unavailable:
			mark = "x"
		case s.Selected:
			mark = "*"
		}
		fmt.Fprintf(&sb, "[%s%2d]", mark, s.Number)
		if (i+1)%4 == 0 || i == len(seats)-1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func PrintBookings(w io.Writer, rows []ui.BookingRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "预订码\t姓名\t手机\t座位号\t预订时间")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Code, r.Name, r.Phone, r.Seats, r.CreatedAt)
	}
	return tw.Flush()
}

func PrintRecords(w io.Writer, records []domain.BookingRecord) error {
	rows := make([]ui.BookingRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ui.BookingRow{
			Code:      r.Code,
			Name:      r.Name,
			Phone:     r.Phone,
			Seats:     r.SeatNumbers.String(),
			CreatedAt: r.CreatedAt,
		})
	}
	return PrintBookings(w, rows)
}

func PrintConfirmation(w io.Writer, conf *ui.Confirmation) error {
	_, err := fmt.Fprintf(w, "预订成功！\n您的座位已确认，请保存好预订码\n预订码: %s\n已选座位：%s\n", conf.BookingCode, conf.SeatsText())
	return err
}
