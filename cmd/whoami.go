package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Fetch the authenticated profile from the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := app.session.Current()
			if !sess.Authenticated {
				return errors.New("not logged in")
			}

			var user domain.User
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching profile...", func(ctx context.Context) error {
				fetched, err := app.gateway.FetchProfile(ctx, sess.Token)
				if err != nil {
					return err
				}
				user = fetched
				return nil
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			_, _ = fmt.Fprintf(out, "id: %d\n", user.ID)
			if len(user.Roles) > 0 {
				_, _ = fmt.Fprintf(out, "roles: %s\n", strings.Join(user.Roles, ", "))
			}
			if !user.Active {
				_, _ = fmt.Fprintln(out, "account inactive")
			}
			return nil
		},
	}
}
