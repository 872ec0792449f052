package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paydesk",
	Short: "Paydesk is the HR and payroll admin console",
	Long: `Command-line console for the paydesk HR and payroll platform.
Sessions persist between invocations; run "paydesk login" first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
