package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ekstre/internal/domain"
)

func (a *app) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = promptLine("Email"); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}

			session, err := a.mgr.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			a.out.Session(session)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := promptLine("Username")
			if err != nil {
				return err
			}
			email, err := promptLine("Email")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password")
			if err != nil {
				return err
			}

			session, err := a.mgr.Register(cmd.Context(), username, email, password, confirm)
			if err != nil {
				return err
			}
			a.out.Session(session)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.mgr.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ok := a.mgr.Current()
			if !ok {
				return domain.ErrNoSession
			}
			a.out.Session(session)
			if expiry, err := a.mgr.TokenExpiry(); err == nil {
				if time.Now().After(expiry) {
					fmt.Printf("Access token expired %s\n", expiry.Format(time.RFC3339))
				} else {
					fmt.Printf("Access token valid until %s\n", expiry.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}
