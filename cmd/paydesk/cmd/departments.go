package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/client"
)

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Manage departments",
}

var departmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List departments",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		deps, err := c.manager.Client().Departments.List(cmd.Context())
		if err != nil {
			return err
		}

		table := pterm.TableData{{"NAME", "MANAGER", "DESCRIPTION"}}
		for _, d := range deps {
			table = append(table, []string{d.Name, d.Manager, d.Description})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
	},
}

var departmentsGetCmd = &cobra.Command{
	Use:   "get <department-id>",
	Short: "Show one department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		dep, err := c.manager.Client().Departments.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pterm.DefaultSection.Println(dep.Name)
		pterm.Info.Printf("Manager: %s\n", dep.Manager)
		pterm.Info.Printf("Description: %s\n", dep.Description)
		return nil
	},
}

var (
	departmentInputName        string
	departmentInputDescription string
	departmentInputManager     string
)

func departmentInputFromFlags() client.DepartmentInput {
	return client.DepartmentInput{
		Name:        departmentInputName,
		Description: departmentInputDescription,
		Manager:     departmentInputManager,
	}
}

func registerDepartmentInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&departmentInputName, "name", "", "department name")
	cmd.Flags().StringVar(&departmentInputDescription, "description", "", "description")
	cmd.Flags().StringVar(&departmentInputManager, "manager", "", "manager name")
}

var departmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a department",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		dep, err := c.manager.Client().Departments.Create(cmd.Context(), departmentInputFromFlags())
		if err != nil {
			return err
		}
		pterm.Success.Printf("Created department %s (%s)\n", dep.Name, dep.ID)
		return nil
	},
}

var departmentsUpdateCmd = &cobra.Command{
	Use:   "update <department-id>",
	Short: "Update a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		dep, err := c.manager.Client().Departments.Update(cmd.Context(), args[0], departmentInputFromFlags())
		if err != nil {
			return err
		}
		pterm.Success.Printf("Updated department %s\n", dep.Name)
		return nil
	},
}

var departmentsDeleteCmd = &cobra.Command{
	Use:   "delete <department-id>",
	Short: "Delete a department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireSession(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.manager.Client().Departments.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		pterm.Success.Println("Department deleted")
		return nil
	},
}

func init() {
	registerDepartmentInputFlags(departmentsCreateCmd)
	registerDepartmentInputFlags(departmentsUpdateCmd)
	departmentsCmd.AddCommand(departmentsListCmd)
	departmentsCmd.AddCommand(departmentsGetCmd)
	departmentsCmd.AddCommand(departmentsCreateCmd)
	departmentsCmd.AddCommand(departmentsUpdateCmd)
	departmentsCmd.AddCommand(departmentsDeleteCmd)
	rootCmd.AddCommand(departmentsCmd)
}
