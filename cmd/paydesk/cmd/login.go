package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/paydesk/paydesk/session"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and start a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newConsole(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		username := loginUsername
		if username == "" {
			fmt.Print("Username: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
			username = strings.TrimSpace(line)
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		res, err := c.manager.Login(cmd.Context(), session.Credentials{
			Username: username,
			Password: password,
		})
		if err != nil {
			return err
		}
		if !res.OK {
			// The notifier already showed the server's message.
			os.Exit(1)
		}
		return nil
	},
}

// promptPassword reads a password without echoing when stdin is a terminal.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username to log in as")
	rootCmd.AddCommand(loginCmd)
}
