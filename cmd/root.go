package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zn",
		Short:         "Zenon CLI (zn): manage your session and client records",
		Long:          "zn talks to a zenon server: log in or register, keep the session token in secure storage across runs, and inspect or manage your client records from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.session.Restore(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(app),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newWhoamiCmd(app),
		newClientsCmd(app),
	)

	return rootCmd
}
