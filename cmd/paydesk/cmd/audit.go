package cmd

import (
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/client"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the server audit trail",
}

var (
	auditListPage   int
	auditListAction string
	auditListActor  string
)

var auditLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List audit entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.manager.Client().Audit.Logs(cmd.Context(), client.AuditListOptions{
			Page:   auditListPage,
			Action: auditListAction,
			Actor:  auditListActor,
		})
		if err != nil {
			return err
		}

		table := pterm.TableData{{"TIME", "ACTION", "RESOURCE", "ACTOR"}}
		for _, l := range list.Logs {
			table = append(table, []string{l.CreatedAt.Format(time.RFC3339), l.Action, l.Resource, l.Actor})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}
		pterm.Info.Printf("Page %d of %d (%d total)\n", list.Pagination.Page, list.Pagination.Pages, list.Pagination.Total)
		return nil
	},
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize audit activity per action",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		stats, err := c.manager.Client().Audit.Stats(cmd.Context())
		if err != nil {
			return err
		}

		table := pterm.TableData{{"ACTION", "COUNT"}}
		for action, count := range stats.ByAction {
			table = append(table, []string{action, strconv.Itoa(count)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}
		pterm.Info.Printf("%d entries total\n", stats.Total)
		return nil
	},
}

func init() {
	auditLogsCmd.Flags().IntVar(&auditListPage, "page", 1, "page to fetch")
	auditLogsCmd.Flags().StringVar(&auditListAction, "action", "", "filter by action")
	auditLogsCmd.Flags().StringVar(&auditListActor, "actor", "", "filter by actor username")
	auditCmd.AddCommand(auditLogsCmd)
	auditCmd.AddCommand(auditStatsCmd)
	rootCmd.AddCommand(auditCmd)
}
