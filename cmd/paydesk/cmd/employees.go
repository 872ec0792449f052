package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/client"
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage personnel records",
}

var (
	employeesListPage       int
	employeesListSearch     string
	employeesListDepartment string
)

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.manager.Client().Employees.List(cmd.Context(), client.EmployeeListOptions{
			Page:       employeesListPage,
			Search:     employeesListSearch,
			Department: employeesListDepartment,
		})
		if err != nil {
			return err
		}

		table := pterm.TableData{{"NAME", "DEPARTMENT", "POSITION", "STATUS"}}
		for _, e := range list.Employees {
			name := fmt.Sprintf("%s %s", e.FirstName, e.LastName)
			table = append(table, []string{name, e.Department, e.Position, e.Status})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
			return err
		}
		pterm.Info.Printf("Page %d of %d (%d total)\n", list.Pagination.Page, list.Pagination.Pages, list.Pagination.Total)
		return nil
	},
}

var employeesGetCmd = &cobra.Command{
	Use:   "get <employee-id>",
	Short: "Show one employee record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		emp, err := c.manager.Client().Employees.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printEmployee(emp)
		return nil
	},
}

var (
	employeeInputFirstName  string
	employeeInputLastName   string
	employeeInputEmail      string
	employeeInputDepartment string
	employeeInputPosition   string
	employeeInputSalary     float64
	employeeInputStatus     string
)

func employeeInputFromFlags() client.EmployeeInput {
	return client.EmployeeInput{
		FirstName:  employeeInputFirstName,
		LastName:   employeeInputLastName,
		Email:      employeeInputEmail,
		Department: employeeInputDepartment,
		Position:   employeeInputPosition,
		Salary:     employeeInputSalary,
		Status:     employeeInputStatus,
	}
}

func registerEmployeeInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&employeeInputFirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&employeeInputLastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&employeeInputEmail, "email", "", "email address")
	cmd.Flags().StringVar(&employeeInputDepartment, "department", "", "department name")
	cmd.Flags().StringVar(&employeeInputPosition, "position", "", "position title")
	cmd.Flags().Float64Var(&employeeInputSalary, "salary", 0, "annual salary")
	cmd.Flags().StringVar(&employeeInputStatus, "status", "", "employment status")
}

var employeesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee record",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		emp, err := c.manager.Client().Employees.Create(cmd.Context(), employeeInputFromFlags())
		if err != nil {
			return err
		}
		pterm.Success.Printf("Created employee %s %s (%s)\n", emp.FirstName, emp.LastName, emp.ID)
		return nil
	},
}

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <employee-id>",
	Short: "Update an employee record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		emp, err := c.manager.Client().Employees.Update(cmd.Context(), args[0], employeeInputFromFlags())
		if err != nil {
			return err
		}
		pterm.Success.Printf("Updated employee %s %s\n", emp.FirstName, emp.LastName)
		return nil
	},
}

var employeesDeleteCmd = &cobra.Command{
	Use:   "delete <employee-id>",
	Short: "Delete an employee record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.manager.Client().Employees.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		pterm.Success.Println("Employee deleted")
		return nil
	},
}

func printEmployee(emp *client.Employee) {
	pterm.DefaultSection.Printf("%s %s\n", emp.FirstName, emp.LastName)
	pterm.Info.Printf("Department: %s\n", emp.Department)
	pterm.Info.Printf("Position: %s\n", emp.Position)
	pterm.Info.Printf("Salary: %.2f\n", emp.Salary)
	pterm.Info.Printf("Status: %s\n", emp.Status)
}

var employeesMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the employee record linked to the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		emp, err := c.manager.Client().Employees.MyProfile(cmd.Context())
		if err != nil {
			return err
		}
		printEmployee(emp)
		return nil
	},
}

func init() {
	employeesListCmd.Flags().IntVar(&employeesListPage, "page", 1, "page to fetch")
	employeesListCmd.Flags().StringVar(&employeesListSearch, "search", "", "filter by name or email substring")
	employeesListCmd.Flags().StringVar(&employeesListDepartment, "department", "", "filter by department")
	registerEmployeeInputFlags(employeesCreateCmd)
	registerEmployeeInputFlags(employeesUpdateCmd)
	employeesCmd.AddCommand(employeesListCmd)
	employeesCmd.AddCommand(employeesGetCmd)
	employeesCmd.AddCommand(employeesCreateCmd)
	employeesCmd.AddCommand(employeesUpdateCmd)
	employeesCmd.AddCommand(employeesDeleteCmd)
	employeesCmd.AddCommand(employeesMeCmd)
	rootCmd.AddCommand(employeesCmd)
}
