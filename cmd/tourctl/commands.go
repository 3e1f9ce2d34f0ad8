package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/srgjo27/tour_booking/internal/adapter/apiclient"
	"github.com/srgjo27/tour_booking/internal/adapter/terminal"
	"github.com/srgjo27/tour_booking/internal/core/domain"
	"github.com/srgjo27/tour_booking/internal/platform/logger"
	"github.com/srgjo27/tour_booking/internal/ui"
)

const defaultAPI = "http://localhost:3000"

// errReported marks failures the dialog has already shown.
var errReported = errors.New("request failed")

type app struct {
	in  io.Reader
	out io.Writer

	apiURL   string
	timeout  time.Duration
	logLevel string
}

func (a *app) client() *apiclient.Client {
	return apiclient.New(a.apiURL, apiclient.WithTimeout(a.timeout))
}

func (a *app) logger() *slog.Logger {
	return logger.New(os.Stderr, a.logLevel)
}

func (a *app) dialog(assumeYes bool) *terminal.Dialog {
	return terminal.NewDialog(a.in, a.out, assumeYes)
}

// reloader re-lists the tours after an admin change.
func (a *app) reloader(client *apiclient.Client) ui.Reloader {
	return ui.ReloadFunc(func(ctx context.Context) error {
		tours, err := client.Tours(ctx)
		if err != nil {
			return err
		}
		return terminal.PrintTours(a.out, tours)
	})
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	api := os.Getenv("TOURCTL_API")
	if api == "" {
		api = defaultAPI
	}

	root := &cobra.Command{
		Use:           "tourctl",
		Short:         "Book seats and manage tours on a tour booking server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.apiURL, "api", api, "booking server base URL (env TOURCTL_API)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		a.toursCmd(),
		a.seatsCmd(),
		a.bookCmd(),
		a.bookingsCmd(),
		a.searchCmd(),
		a.adminCmd(),
	)

	return root
}

func (a *app) toursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tours",
		Short: "List tours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.reloader(a.client()).Reload(cmd.Context())
		},
	}
}

func (a *app) seatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seats <tour-id>",
		Short: "Show the seat map of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tourID, err := parseTourID(args[0])
			if err != nil {
				return err
			}

			tour, err := a.client().Tour(cmd.Context(), tourID)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s %s %s (%s) 剩余 %d/%d\n", tour.Date, tour.Time, tour.Destination, tour.VehicleModel, tour.Available, tour.MaxSeats)
			return terminal.PrintSeats(a.out, ui.NewSeatPickerForTour(tour).Seats())
		},
	}
}

func (a *app) bookCmd() *cobra.Command {
	var (
		contact  ui.Contact
		seats    []int
		copyCode bool
	)

	cmd := &cobra.Command{
		Use:   "book <tour-id>",
		Short: "Book seats on a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tourID, err := parseTourID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client := a.client()

			tour, err := client.Tour(ctx, tourID)
			if err != nil {
				return err
			}

			form := ui.NewBookingForm(tourID, ui.NewSeatPickerForTour(tour), client, a.dialog(false), terminal.Clipboard{})

			for _, seat := range seats {
				if !form.ClickSeat(seat) {
					fmt.Fprintf(a.out, "座位 %d 不可选，已忽略\n", seat)
				}
			}

			if err := terminal.PrintSeats(a.out, form.Seats()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "已选座位：%s\n", form.SelectionView().DisplayText)

			conf, err := form.Submit(ctx, contact)
			switch {
			case errors.Is(err, ui.ErrNoSeatSelected):
				fmt.Fprintln(a.out, "请选择座位")
				return err
			case err != nil:
				a.logger().Debug("booking failed", "tour_id", tourID, "error", err)
				return errReported
			}

			if err := terminal.PrintConfirmation(a.out, conf); err != nil {
				return err
			}

			if copyCode {
				return form.CopyCode(ctx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contact.Name, "name", "", "passenger name")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "11-digit phone number")
	cmd.Flags().IntSliceVar(&seats, "seat", nil, "seat number, repeatable")
	cmd.Flags().BoolVar(&copyCode, "copy", false, "copy the booking code to the clipboard")

	return cmd
}

func (a *app) bookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings <tour-id>",
		Short: "Show the bookings of a tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tourID, err := parseTourID(args[0])
			if err != nil {
				return err
			}

			panel := ui.NewDetailsPanel(tourID, a.client(), a.logger())
			panel.Toggle(cmd.Context())

			switch {
			case panel.Failed():
				fmt.Fprintln(a.out, "加载失败，请刷新页面重试")
				return errReported
			case len(panel.Rows()) == 0:
				fmt.Fprintln(a.out, "暂无预订记录")
				return nil
			}

			return terminal.PrintBookings(a.out, panel.Rows())
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find bookings by code, name or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.client().SearchBookings(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(a.out, "未找到预订")
				return nil
			}
			return terminal.PrintRecords(a.out, records)
		},
	}
}

func (a *app) adminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Create and delete tours",
	}

	var in domain.TourInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := a.client()
			panel := ui.NewAdminPanel(client, a.dialog(false), a.reloader(client))

			if _, err := panel.CreateTour(cmd.Context(), in); err != nil {
				a.logger().Debug("create tour failed", "error", err)
				return errReported
			}
			return nil
		},
	}
	create.Flags().StringVar(&in.Date, "date", ui.DefaultTourDate(time.Now()), "departure date (YYYY-MM-DD)")
	create.Flags().StringVar(&in.Time, "time", "08:00", "departure time (HH:MM)")
	create.Flags().StringVar(&in.Destination, "dest", "", "destination")
	create.Flags().StringVar(&in.VehicleModel, "vehicle", "", "vehicle model")
	create.Flags().IntVar(&in.MaxSeats, "seats", 6, "number of seats")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <tour-id>",
		Short: "Delete a tour and all of its bookings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tourID, err := parseTourID(args[0])
			if err != nil {
				return err
			}

			client := a.client()
			panel := ui.NewAdminPanel(client, a.dialog(yes), a.reloader(client))

			deleted, err := panel.DeleteTour(cmd.Context(), tourID)
			if err != nil {
				a.logger().Debug("delete tour failed", "tour_id", tourID, "error", err)
				return errReported
			}
			if !deleted {
				fmt.Fprintln(a.out, "已取消")
			}
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	admin.AddCommand(create, del)
	return admin
}

func parseTourID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid tour id %q", s)
	}
	return id, nil
}
