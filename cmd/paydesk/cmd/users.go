package cmd

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/client"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage administrative accounts",
}

var (
	usersListPage   int
	usersListSearch string
	usersListRole   string
)

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.manager.Client().Users.List(cmd.Context(), client.UserListOptions{
			Page:   usersListPage,
			Search: usersListSearch,
			Role:   usersListRole,
		})
		if err != nil {
			return err
		}

		table := pterm.TableData{{"USERNAME", "EMAIL", "ROLE", "ACTIVE"}}
		for _, u := range list.Users {
			table = append(table, []string{u.Username, u.Email, u.Role, strconv.FormatBool(u.Active)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}
		pterm.Info.Printf("Page %d of %d (%d total)\n", list.Pagination.Page, list.Pagination.Pages, list.Pagination.Total)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		u, err := c.manager.Client().Users.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pterm.DefaultSection.Println(u.Username)
		pterm.Info.Printf("Email: %s\n", u.Email)
		pterm.Info.Printf("Role: %s\n", u.Role)
		pterm.Info.Printf("Active: %t\n", u.Active)
		for _, p := range u.Permissions {
			pterm.Printf("  %s\n", p)
		}
		return nil
	},
}

var (
	userInputUsername string
	userInputEmail    string
	userInputRole     string
)

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		password, err := promptPassword("Initial password: ")
		if err != nil {
			return err
		}
		u, err := c.manager.Client().Users.Create(cmd.Context(), client.UserInput{
			Username: userInputUsername,
			Email:    userInputEmail,
			Password: password,
			Role:     userInputRole,
		})
		if err != nil {
			return err
		}
		pterm.Success.Printf("Created user %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		u, err := c.manager.Client().Users.Update(cmd.Context(), args[0], client.UserInput{
			Email: userInputEmail,
			Role:  userInputRole,
		})
		if err != nil {
			return err
		}
		pterm.Success.Printf("Updated user %s\n", u.Username)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.manager.Client().Users.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		pterm.Success.Println("User deleted")
		return nil
	},
}

var usersResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <user-id>",
	Short: "Set a new password on another account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		if err := c.manager.Client().Users.ResetPassword(cmd.Context(), args[0], password); err != nil {
			return fmt.Errorf("resetting password: %w", err)
		}
		pterm.Success.Println("Password reset")
		return nil
	},
}

func init() {
	usersListCmd.Flags().IntVar(&usersListPage, "page", 1, "page to fetch")
	usersListCmd.Flags().StringVar(&usersListSearch, "search", "", "filter by username or email substring")
	usersListCmd.Flags().StringVar(&usersListRole, "role", "", "filter by role")
	usersCreateCmd.Flags().StringVar(&userInputUsername, "username", "", "username for the new account")
	usersCreateCmd.Flags().StringVar(&userInputEmail, "email", "", "email address")
	usersCreateCmd.Flags().StringVar(&userInputRole, "role", "Employee", "role to assign")
	usersUpdateCmd.Flags().StringVar(&userInputEmail, "email", "", "new email address")
	usersUpdateCmd.Flags().StringVar(&userInputRole, "role", "", "new role")
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersResetPasswordCmd)
	rootCmd.AddCommand(usersCmd)
}
