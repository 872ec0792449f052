package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newConsole(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		c.manager.Logout(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
