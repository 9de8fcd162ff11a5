package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sayohat",
	Short: "Sayohat — tourism booking admin CLI",
	Long:  "Sayohat is the admin client for the Sayohat tourism booking API. Use this CLI to sign in and manage tours, bookings, users, categories and difficulties.",
}

func init() {
	// Session
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(profileCmd)

	// Resources
	rootCmd.AddCommand(toursListCmd)
	rootCmd.AddCommand(toursCreateCmd)
	rootCmd.AddCommand(toursDeleteCmd)
	rootCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(categoriesListCmd)
	rootCmd.AddCommand(difficultiesListCmd)

	// Bookings
	rootCmd.AddCommand(bookingsListCmd)
	rootCmd.AddCommand(bookingsConfirmCmd)
	rootCmd.AddCommand(bookingsCompleteCmd)
	rootCmd.AddCommand(bookingsCancelCmd)
	rootCmd.AddCommand(bookingsInvoiceCmd)

	// Misc
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(statsCmd)
}
