package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL string

	rootCmd := &cobra.Command{
		Use:           "workforce",
		Short:         "Manage employees and tasks on a workforce server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPIURL(), "server base URL (env WORKFORCE_API)")

	client := func() *apiClient { return newAPIClient(apiURL) }
	rootCmd.AddCommand(employeeCmd(client), taskCmd(client))
	return rootCmd
}

func defaultAPIURL() string {
	if url := os.Getenv("WORKFORCE_API"); url != "" {
		return url
	}
	return "http://localhost:4000"
}

// Employee commands

func employeeCmd(client func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Create and list employees",
	}
	cmd.AddCommand(employeeCreateCmd(client), employeeListCmd(client))
	return cmd
}

func employeeCreateCmd(client func() *apiClient) *cobra.Command {
	payload := map[string]*string{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().do(cmd.Context(), http.MethodPost, "/employee", changed(cmd, payload))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", resp.Message)
			if resp.Employee != nil {
				printEmployees(cmd.OutOrStdout(), []employeeRow{*resp.Employee})
			}
			return nil
		},
	}
	payload["firstName"] = cmd.Flags().String("first-name", "", "first name")
	payload["lastName"] = cmd.Flags().String("last-name", "", "last name")
	payload["email"] = cmd.Flags().String("email", "", "email address")
	payload["designation"] = cmd.Flags().String("designation", "", "job title")
	payload["department"] = cmd.Flags().String("department", "", "department")
	payload["hireDate"] = cmd.Flags().String("hire-date", "", "hire date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func employeeListCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().do(cmd.Context(), http.MethodGet, "/employee", nil)
			if err != nil {
				return err
			}
			printEmployees(cmd.OutOrStdout(), resp.Employees)
			return nil
		},
	}
}

// Task commands

func taskCmd(client func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, list, update and delete tasks",
	}
	cmd.AddCommand(
		taskCreateCmd(client),
		taskListCmd(client),
		taskUpdateCmd(client),
		taskDeleteCmd(client),
	)
	return cmd
}

func taskFlags(cmd *cobra.Command) map[string]*string {
	return map[string]*string{
		"title":       cmd.Flags().String("title", "", "task title"),
		"description": cmd.Flags().String("description", "", "task description"),
		"assignedTo":  cmd.Flags().String("assignee", "", "assigned employee id"),
		"dueDate":     cmd.Flags().String("due", "", "due date (YYYY-MM-DD)"),
		"status":      cmd.Flags().String("status", "", "Pending, In Progress or Completed"),
		"priority":    cmd.Flags().String("priority", "", "Low, Medium or High"),
	}
}

func taskCreateCmd(client func() *apiClient) *cobra.Command {
	var payload map[string]*string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task assigned to an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().do(cmd.Context(), http.MethodPost, "/task", changed(cmd, payload))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", resp.Message)
			if resp.Task != nil {
				printTasks(cmd.OutOrStdout(), []taskRow{*resp.Task})
			}
			return nil
		},
	}
	payload = taskFlags(cmd)
	return cmd
}

func taskListCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks with their assignees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().do(cmd.Context(), http.MethodGet, "/task", nil)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), resp.Tasks)
			return nil
		},
	}
}

func taskUpdateCmd(client func() *apiClient) *cobra.Command {
	var payload map[string]*string
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update the given fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().do(cmd.Context(), http.MethodPut, "/task/"+args[0], changed(cmd, payload))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", resp.Message)
			if resp.Task != nil {
				printTasks(cmd.OutOrStdout(), []taskRow{*resp.Task})
			}
			return nil
		},
	}
	payload = taskFlags(cmd)
	return cmd
}

func taskDeleteCmd(client func() *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client().do(cmd.Context(), http.MethodDelete, "/task/"+args[0], nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", resp.Message)
			return nil
		},
	}
}

// Helper functions

// changed builds a request body from the flags the user actually set
func changed(cmd *cobra.Command, fields map[string]*string) map[string]string {
	flagName := map[string]string{
		"firstName":  "first-name",
		"lastName":   "last-name",
		"hireDate":   "hire-date",
		"assignedTo": "assignee",
		"dueDate":    "due",
	}
	body := make(map[string]string, len(fields))
	for key, value := range fields {
		name := key
		if n, ok := flagName[key]; ok {
			name = n
		}
		if cmd.Flags().Changed(name) {
			body[key] = *value
		}
	}
	return body
}

func printEmployees(out io.Writer, employees []employeeRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDESIGNATION\tDEPARTMENT")
	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n", e.ID, e.FirstName, e.LastName, e.Email, e.Designation, e.Department)
	}
	w.Flush()
}

func printTasks(out io.Writer, tasks []taskRow) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNEE")
	for _, t := range tasks {
		assignee := "-"
		if t.AssignedTo != nil {
			assignee = t.AssignedTo.FirstName + " " + t.AssignedTo.LastName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, t.DueDate, assignee)
	}
	w.Flush()
}
