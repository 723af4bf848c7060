package cmd

import (
	"context"
	"fmt"

	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !domain.ValidEmail(email) {
				return fmt.Errorf("invalid email address %q", email)
			}

			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Logging in...", func(ctx context.Context) error {
				return app.session.Login(ctx, email, password)
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
