package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bekzodm/sayohat/internal/form"
)

var toursAdmin bool

// sayohat tours:list
var toursListCmd = &cobra.Command{
	Use:   "tours:list",
	Short: "List tours",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		list := a.Tours.List
		if toursAdmin {
			list = a.Tours.AdminList
		}
		tours, err := list(cmd.Context())
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tPRICE\tSEATS\tACTIVE")
		for _, t := range tours {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%d\t%t\n",
				t.ID, t.Title, t.Location, t.Price, t.AvailableSeats, t.IsActive)
		}
		return w.Flush()
	},
}

// sayohat tours:create --file tour.json
var tourFile string

var toursCreateCmd = &cobra.Command{
	Use:   "tours:create",
	Short: "Create a tour from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(tourFile)
		if err != nil {
			return err
		}
		f := form.NewTourForm()
		if err := json.Unmarshal(raw, f); err != nil {
			return fmt.Errorf("parse %s: %w", tourFile, err)
		}

		payload, err := f.Submit()
		if err != nil {
			return err
		}
		if err := a.Tours.Create(cmd.Context(), payload); err != nil {
			return err
		}
		fmt.Println("Tour created.")
		return nil
	},
}

// sayohat tours:delete ID
var toursDeleteCmd = &cobra.Command{
	Use:   "tours:delete ID",
	Short: "Delete a tour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid tour id %q", args[0])
		}
		if err := a.Tours.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Tour deleted.")
		return nil
	},
}

// sayohat users:list
var usersListCmd = &cobra.Command{
	Use:   "users:list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		users, err := a.Users.List(cmd.Context())
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.Role)
		}
		return w.Flush()
	},
}

// sayohat categories:list
var categoriesListCmd = &cobra.Command{
	Use:   "categories:list",
	Short: "List tour categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		categories, err := a.Categories.List(cmd.Context())
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tNAME\tURL")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.CategoryURL)
		}
		return w.Flush()
	},
}

// sayohat difficulties:list
var difficultiesListCmd = &cobra.Command{
	Use:   "difficulties:list",
	Short: "List tour difficulty levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		difficulties, err := a.Difficulties.List(cmd.Context())
		if err != nil {
			return err
		}
		w := table()
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, d := range difficulties {
			fmt.Fprintf(w, "%d\t%s\t%s\n", d.ID, d.Name, d.Description)
		}
		return w.Flush()
	},
}

// sayohat upload FILE
var uploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a file and print its public URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		uploaded, err := a.Uploads.Upload(cmd.Context(), f.Name(), f)
		if err != nil {
			return err
		}
		fmt.Println(uploaded.URL)
		return nil
	},
}

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func init() {
	toursListCmd.Flags().BoolVar(&toursAdmin, "admin", false, "use the admin listing (includes inactive tours)")
	toursCreateCmd.Flags().StringVar(&tourFile, "file", "tour.json", "path to the tour JSON file")
}
