// ABOUTME: Login, logout, register, and whoami commands
// ABOUTME: Prompts for missing credentials with a huh form

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/session"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your Zorel account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if loginEmail == "" || loginPassword == "" {
			if err := promptCredentials(&loginEmail, &loginPassword); err != nil {
				os.Exit(1)
			}
		}

		_, sess := newSession()
		if code := runLogin(ctx, os.Stdout, sess, loginEmail, loginPassword); code != 0 {
			os.Exit(code)
		}
	},
}

var logoutAdmin bool

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		_, sess := newSession()
		if code := runLogout(os.Stdout, sess, logoutAdmin); code != 0 {
			os.Exit(code)
		}
	},
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Zorel customer account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if registerName == "" || registerEmail == "" || registerPassword == "" {
			if err := promptRegistration(&registerName, &registerEmail, &registerPassword); err != nil {
				os.Exit(1)
			}
		}

		_, sess := newSession()
		if code := runRegister(ctx, os.Stdout, sess, registerName, registerEmail, registerPassword); code != 0 {
			os.Exit(code)
		}
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity behind the stored token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, sess := newSession()
		if code := runWhoami(ctx, os.Stdout, sess); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	logoutCmd.Flags().BoolVar(&logoutAdmin, "admin", false, "Discard the admin token instead of the customer token")
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd)
}

func promptCredentials(email, password *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		),
	).WithTheme(huh.ThemeBase()).Run()
}

func promptRegistration(name, email, password *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(name),
			huh.NewInput().Title("Email").Value(email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		),
	).WithTheme(huh.ThemeBase()).Run()
}

// runLogin signs in and reports the signed-in identity
func runLogin(ctx context.Context, w io.Writer, sess *session.Session, email, password string) int {
	user, err := sess.Login(ctx, email, password)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, user)
	} else {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", user.Name, user.Email)
	}
	return 0
}

func runLogout(w io.Writer, sess *session.Session, admin bool) int {
	var err error
	if admin {
		err = sess.AdminLogout()
	} else {
		err = sess.Logout()
	}
	if err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Signed out.")
	return 0
}

func runRegister(ctx context.Context, w io.Writer, sess *session.Session, name, email, password string) int {
	user, err := sess.Register(ctx, client.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, user)
	} else {
		fmt.Fprintf(w, "Welcome, %s. Your account is ready.\n", user.Name)
	}
	return 0
}

func runWhoami(ctx context.Context, w io.Writer, sess *session.Session) int {
	user, err := sess.Refresh(ctx)
	if err != nil {
		return fail(w, err)
	}
	if user == nil {
		fmt.Fprintln(w, "Not signed in.")
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatUserJSON(user))
	} else {
		fmt.Fprintln(w, formatUserHuman(user))
	}
	return 0
}

func formatUserHuman(u *client.User) string {
	return fmt.Sprintf(`Name:   %s
Email:  %s
Role:   %s
Since:  %s`, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
}

func formatUserJSON(u *client.User) string {
	data, _ := json.MarshalIndent(u, "", "  ")
	return string(data)
}
