package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bekzodm/sayohat/internal/api"
	"github.com/bekzodm/sayohat/internal/model"
)

var (
	loginEmail    string
	loginPassword string
)

// sayohat login
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := boot()
		if err != nil {
			return err
		}

		email := loginEmail
		password := loginPassword
		reader := bufio.NewReader(cmd.InOrStdin())
		if email == "" {
			fmt.Print("Email: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			email = strings.TrimSpace(line)
		}
		if password == "" {
			fmt.Print("Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		user, err := a.Auth.Login(cmd.Context(), model.Credentials{
			Email:    email,
			Password: password,
		})
		if errors.Is(err, api.ErrNotAdmin) {
			return errors.New("this account is not an administrator")
		}
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s <%s>\n", user.FullName(), user.Email)
		return nil
	},
}

// sayohat logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := boot()
		if err != nil {
			return err
		}
		a.Auth.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

// sayohat profile
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootSignedIn()
		if err != nil {
			return err
		}
		user, err := a.Auth.Profile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%-12s %s\n", "Name", user.FullName())
		fmt.Fprintf(os.Stdout, "%-12s %s\n", "Email", user.Email)
		fmt.Fprintf(os.Stdout, "%-12s %s\n", "Role", user.Role)
		if user.PhoneNumber != "" {
			fmt.Fprintf(os.Stdout, "%-12s %s\n", "Phone", user.PhoneNumber)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "admin email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "admin password (prompted when omitted)")
}
