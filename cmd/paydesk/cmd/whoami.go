package cmd

import (
	"sort"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session and its permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		principal := c.manager.State().Principal
		pterm.DefaultSection.Println("Session")
		pterm.Info.Printf("Username: %s\n", principal.Username)
		pterm.Info.Printf("Role: %s\n", principal.Role)
		if !principal.LastLogin.IsZero() {
			pterm.Info.Printf("Last login: %s\n", principal.LastLogin.Format(time.RFC1123))
		}

		pterm.DefaultSection.Println("Permissions")
		perms := principal.Permissions()
		sort.Strings(perms)
		if len(perms) == 0 {
			pterm.Info.Println("No explicit permissions.")
			return nil
		}
		for _, p := range perms {
			pterm.Printf("  %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
