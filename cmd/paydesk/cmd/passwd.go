package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the password of the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		current, err := promptPassword("Current password: ")
		if err != nil {
			return err
		}
		next, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		if next != confirm {
			return errors.New("passwords do not match")
		}

		res, err := c.manager.ChangePassword(cmd.Context(), current, next)
		if err != nil {
			return err
		}
		if !res.OK {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}
