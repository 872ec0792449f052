package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/client"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Inspect and approve payroll runs",
}

var (
	payrollListPage   int
	payrollListStatus string
	payrollListMonth  int
	payrollListYear   int
)

func payrollTable(records []client.PayrollRecord) pterm.TableData {
	table := pterm.TableData{{"ID", "PERIOD", "NET", "STATUS"}}
	for _, p := range records {
		period := fmt.Sprintf("%d/%d", p.PayPeriod.Month, p.PayPeriod.Year)
		table = append(table, []string{p.ID, period, fmt.Sprintf("%.2f", p.NetSalary), p.Status})
	}
	return table
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payroll records",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.manager.Client().Payroll.List(cmd.Context(), client.PayrollListOptions{
			Page:   payrollListPage,
			Status: payrollListStatus,
			Month:  payrollListMonth,
			Year:   payrollListYear,
		})
		if err != nil {
			return err
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(payrollTable(list.Payrolls)).Render(); err != nil {
			return err
		}
		pterm.Info.Printf("Page %d of %d (%d total)\n", list.Pagination.Page, list.Pagination.Pages, list.Pagination.Total)
		return nil
	},
}

var payrollGetCmd = &cobra.Command{
	Use:   "get <payroll-id>",
	Short: "Show one payroll record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		p, err := c.manager.Client().Payroll.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pterm.DefaultSection.Printf("Payroll %s\n", p.ID)
		pterm.Info.Printf("Period: %d/%d\n", p.PayPeriod.Month, p.PayPeriod.Year)
		pterm.Info.Printf("Net salary: %.2f\n", p.NetSalary)
		pterm.Info.Printf("Status: %s\n", p.Status)
		if p.ApprovedBy != "" {
			pterm.Info.Printf("Approved by: %s\n", p.ApprovedBy)
		}
		return nil
	},
}

var (
	payrollCreateEmployee string
	payrollCreateMonth    int
	payrollCreateYear     int
	payrollCreateBase     float64
	payrollCreateTax      float64
)

var payrollCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pending payroll record",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		in := client.PayrollInput{
			Employee:  payrollCreateEmployee,
			PayPeriod: &client.PayPeriod{Month: payrollCreateMonth, Year: payrollCreateYear},
			Earnings:  map[string]float64{"base": payrollCreateBase},
		}
		if payrollCreateTax > 0 {
			in.Deductions = map[string]float64{"tax": payrollCreateTax}
		}
		p, err := c.manager.Client().Payroll.Create(cmd.Context(), in)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Created payroll %s (net %.2f)\n", p.ID, p.NetSalary)
		return nil
	},
}

var payrollMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the logged-in employee's own payroll records",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.manager.Client().Payroll.MyPayrolls(cmd.Context(), client.PayrollListOptions{Page: payrollListPage})
		if err != nil {
			return err
		}
		return pterm.DefaultTable.WithHasHeader().WithData(payrollTable(list.Payrolls)).Render()
	},
}

var payrollApproveNotes string

var payrollApproveCmd = &cobra.Command{
	Use:   "approve <payroll-id>",
	Short: "Approve a pending payroll record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		rec, err := c.manager.Client().Payroll.Approve(cmd.Context(), args[0], payrollApproveNotes)
		if err != nil {
			return err
		}
		pterm.Success.Printf("Payroll %s approved by %s\n", rec.ID, rec.ApprovedBy)
		return nil
	},
}

var payrollPayslipCmd = &cobra.Command{
	Use:   "payslip <payroll-id>",
	Short: "Download a payslip to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		data, err := c.manager.Client().Payroll.Payslip(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var payrollExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export payroll records as CSV to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		data, err := c.manager.Client().Payroll.ExportCSV(cmd.Context(), client.PayrollListOptions{
			Status: payrollListStatus,
			Month:  payrollListMonth,
			Year:   payrollListYear,
		})
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	payrollListCmd.Flags().IntVar(&payrollListPage, "page", 1, "page to fetch")
	payrollListCmd.Flags().StringVar(&payrollListStatus, "status", "", "filter by status")
	payrollListCmd.Flags().IntVar(&payrollListMonth, "month", 0, "filter by pay period month")
	payrollListCmd.Flags().IntVar(&payrollListYear, "year", 0, "filter by pay period year")
	payrollApproveCmd.Flags().StringVar(&payrollApproveNotes, "notes", "", "approval notes")
	payrollExportCmd.Flags().StringVar(&payrollListStatus, "status", "", "filter by status")
	payrollCreateCmd.Flags().StringVar(&payrollCreateEmployee, "employee", "", "employee id")
	payrollCreateCmd.Flags().IntVar(&payrollCreateMonth, "month", 0, "pay period month")
	payrollCreateCmd.Flags().IntVar(&payrollCreateYear, "year", 0, "pay period year")
	payrollCreateCmd.Flags().Float64Var(&payrollCreateBase, "base", 0, "base earnings")
	payrollCreateCmd.Flags().Float64Var(&payrollCreateTax, "tax", 0, "tax deduction")
	payrollCmd.AddCommand(payrollListCmd)
	payrollCmd.AddCommand(payrollGetCmd)
	payrollCmd.AddCommand(payrollCreateCmd)
	payrollCmd.AddCommand(payrollMineCmd)
	payrollCmd.AddCommand(payrollApproveCmd)
	payrollCmd.AddCommand(payrollPayslipCmd)
	payrollCmd.AddCommand(payrollExportCmd)
	rootCmd.AddCommand(payrollCmd)
}
