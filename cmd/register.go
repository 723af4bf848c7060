package cmd

import (
	"context"
	"fmt"

	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *app) *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !domain.ValidEmail(email) {
				return fmt.Errorf("invalid email address %q", email)
			}

			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Registering...", func(ctx context.Context) error {
				return app.session.Register(ctx, email, password, firstName, lastName)
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&firstName, "firstname", "", "First name")
	cmd.Flags().StringVar(&lastName, "lastname", "", "Last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("firstname")
	_ = cmd.MarkFlagRequired("lastname")

	return cmd
}
