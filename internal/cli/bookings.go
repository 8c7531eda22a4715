package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/booking"
	"github.com/evcraddock/hvr-studio/internal/client"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookings",
		Aliases: []string{"booking"},
		Short:   "Review session bookings",
	}

	var upcoming bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List bookings by session date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookingsList(upcoming)
		},
	}
	list.Flags().BoolVar(&upcoming, "upcoming", false, "only confirmed bookings from today on")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a booking",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBookingsShow(args[0])
			},
		},
		&cobra.Command{
			Use:   "status <id> <pending|confirmed|cancelled|completed>",
			Short: "Set a booking's status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBookingsStatus(args[0], args[1])
			},
		},
		newBookingsAddCmd(),
		newBookingsUpdateCmd(),
		newRemoveCmd("Booking", "Remove a booking", (*client.Client).DeleteBooking),
	)

	return cmd
}

func runBookingsList(upcoming bool) error {
	bookings, err := newAPIClient().ListBookings(upcoming)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(bookings)
	}

	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, []string{
			b.ID,
			b.Date,
			orDash(b.Time),
			truncate(b.Name, 24),
			orDash(b.Service),
			string(b.Status),
		})
	}
	return printTable("bookings", []string{"ID", "DATE", "TIME", "NAME", "SERVICE", "STATUS"}, rows)
}

func runBookingsShow(id string) error {
	b, err := newAPIClient().GetBooking(id)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(b)
	}

	printFields("Booking "+b.ID, [][2]string{
		{"Name", b.Name},
		{"Email", b.Email},
		{"Phone", b.Phone},
		{"Customer", b.CustomerID},
		{"Service", b.Service},
		{"Date", b.Date},
		{"Time", b.Time},
		{"Status", string(b.Status)},
		{"Notes", b.Notes},
		{"Created", formatTime(&b.CreatedAt)},
	})
	return nil
}

func runBookingsStatus(id, status string) error {
	if !booking.Status(status).IsValid() {
		return fmt.Errorf("invalid booking status %q", status)
	}
	if err := newAPIClient().UpdateBookingStatus(id, status); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id, "status": status})
	}
	fmt.Printf("Booking %s is now %s.\n", id, status)
	return nil
}

func newBookingsAddCmd() *cobra.Command {
	var req client.NewBooking
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Book a session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = strings.Join(args, " ")
			if req.Status != "" && !booking.Status(req.Status).IsValid() {
				return fmt.Errorf("invalid booking status %q", req.Status)
			}
			id, err := newAPIClient().CreateBooking(req)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]string{"id": id})
			}
			fmt.Printf("Booking %s added for %s.\n", id, req.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", "session date (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&req.Time, "time", "", "session time")
	cmd.Flags().StringVar(&req.Service, "service", "", "service booked")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.CustomerID, "customer", "", "customer ID")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&req.Status, "status", "", "initial status (default pending)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newBookingsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Reschedule or edit a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch := client.BookingChanges{
				Date:    changedString(cmd, "date"),
				Time:    changedString(cmd, "time"),
				Service: changedString(cmd, "service"),
				Notes:   changedString(cmd, "notes"),
			}
			return runUpdate("Booking", args[0], ch == client.BookingChanges{}, func(api *client.Client) error {
				return api.UpdateBooking(args[0], ch)
			})
		},
	}
	cmd.Flags().String("date", "", "session date (YYYY-MM-DD)")
	cmd.Flags().String("time", "", "session time")
	cmd.Flags().String("service", "", "service booked")
	cmd.Flags().String("notes", "", "free-form notes")
	return cmd
}
