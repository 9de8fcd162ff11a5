package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bekzodm/sayohat/internal/dashboard"
)

// sayohat stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		stats, err := dashboard.Collect(cmd.Context(), a)
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintf(w, "Users\t%d\n", stats.TotalUsers)
		fmt.Fprintf(w, "Tours\t%d\n", stats.TotalTours)
		fmt.Fprintf(w, "Bookings\t%d\n", stats.TotalBookings)
		fmt.Fprintf(w, "Pending\t%d\n", stats.PendingBookings)
		fmt.Fprintf(w, "Revenue\t%.2f\n", stats.TotalRevenue)
		return w.Flush()
	},
}
