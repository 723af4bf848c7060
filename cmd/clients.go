package cmd

import (
	"context"
	"fmt"

	sessionrender "github.com/alnitaka/zenon-cli/internal/adapters/render/session"
	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newClientsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage your client records",
	}

	cmd.AddCommand(newClientsListCmd(app), newClientsAddCmd(app), newClientsRemoveCmd(app))

	return cmd
}

func newClientsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List client records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var clients []domain.Client
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching clients...", func(ctx context.Context) error {
				fetched, err := app.gateway.ListClients(ctx)
				if err != nil {
					return err
				}
				clients = fetched
				return nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sessionrender.Clients(clients))
			return err
		},
	}
}

func newClientsAddCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var client domain.Client
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Creating client...", func(ctx context.Context) error {
				created, err := app.gateway.CreateClient(ctx, name)
				if err != nil {
					return err
				}
				client = created
				return nil
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created client %s (#%d)\n", client.Name, client.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientsRemoveCmd(app *app) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a client record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Deleting client...", func(ctx context.Context) error {
				return app.gateway.DeleteClient(ctx, id)
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Client ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
