package cmd

import (
	"fmt"

	sessionrender "github.com/alnitaka/zenon-cli/internal/adapters/render/session"
	"github.com/alnitaka/zenon-cli/internal/adapters/token"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := app.session.Current()

			var claims *token.Claims
			if sess.Authenticated {
				if c, err := token.Inspect(sess.Token); err == nil {
					claims = &c
				}
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), sessionrender.Status(sess, claims, app.now()))
			return err
		},
	}
}
