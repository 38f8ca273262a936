package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-hq/daybook/internal/model"
	"github.com/daybook-hq/daybook/pkg/client"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			activeOnly, _ := cmd.Flags().GetBool("active")
			projects, err := c.ListProjects(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}
			return printProjects(os.Stdout, projects)
		},
	}
	listCmd.Flags().Bool("active", false, "Only active projects")
	cmd.AddCommand(listCmd)

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			req := client.CreateProjectRequest{Name: args[0]}
			if code, _ := cmd.Flags().GetString("code"); code != "" {
				req.Code = &code
			}
			p, err := c.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("created %s (%s)\n", p.Name, p.ProjectID)
			return nil
		},
	}
	createCmd.Flags().String("code", "", "Short project code used in entry tags")
	cmd.AddCommand(createCmd)

	return cmd
}

func printProjects(w io.Writer, projects []*model.Project) error {
	for _, p := range projects {
		code := "-"
		if p.Code != nil {
			code = *p.Code
		}
		state := "active"
		if !p.IsActive {
			state = "archived"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ProjectID, p.Name, code, state); err != nil {
			return err
		}
	}
	return nil
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Read and write daily entries",
	}

	putCmd := &cobra.Command{
		Use:   "put <date>",
		Short: "Save the full entry text for a date (reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			text, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			plan, _ := cmd.Flags().GetBool("plan")
			e, err := c.PutEntry(cmd.Context(), args[0], strings.TrimRight(string(text), "\n"), plan)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s (%d bytes)\n", e.Date, len(e.Text))
			return nil
		},
	}
	putCmd.Flags().Bool("plan", false, "Write the plan slot instead of the work record")
	cmd.AddCommand(putCmd)

	getCmd := &cobra.Command{
		Use:   "get <date>",
		Short: "Print the entry for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			plan, _ := cmd.Flags().GetBool("plan")
			e, err := c.GetEntry(cmd.Context(), args[0], plan)
			if err != nil {
				return err
			}
			fmt.Println(e.Text)
			return nil
		},
	}
	getCmd.Flags().Bool("plan", false, "Read the plan slot")
	cmd.AddCommand(getCmd)

	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Preview and generate period reports",
	}

	previewCmd := &cobra.Command{
		Use:   "preview <week|month> [date]",
		Short: "Render a report without saving it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			date := time.Now().Format(model.DateLayout)
			if len(args) == 2 {
				date = args[1]
			}
			pv, err := c.PreviewReport(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			if pv.Empty {
				fmt.Println("(nothing to report)")
				return nil
			}
			fmt.Println(pv.Text)
			return nil
		},
	}
	cmd.AddCommand(previewCmd)

	saveCmd := &cobra.Command{
		Use:   "save <week|month> [date]",
		Short: "Render and persist a report",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			date := time.Now().Format(model.DateLayout)
			if len(args) == 2 {
				date = args[1]
			}
			r, err := c.SaveReport(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			fmt.Printf("saved %s %d/%d\n", r.Kind, r.Year, r.Index)
			return nil
		},
	}
	cmd.AddCommand(saveCmd)

	periodsCmd := &cobra.Command{
		Use:   "periods <week|month>",
		Short: "List trailing periods and their report status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			n, _ := cmd.Flags().GetInt("n")
			periods, err := c.ListPeriods(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			for _, p := range periods {
				fmt.Printf("%s\t%s\n", p.Label, p.Status)
			}
			return nil
		},
	}
	periodsCmd.Flags().Int("n", 12, "How many trailing periods to list")
	cmd.AddCommand(periodsCmd)

	return cmd
}

func todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage project todos",
	}

	addCmd := &cobra.Command{
		Use:   "add <projectId> <content>",
		Short: "Add a todo to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			priority, _ := cmd.Flags().GetString("priority")
			td, err := c.CreateTodo(cmd.Context(), args[0], client.CreateTodoRequest{Content: args[1], Priority: priority})
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", td.TodoID)
			return nil
		},
	}
	addCmd.Flags().String("priority", model.PriorityMedium, "Priority: high, medium, low")
	cmd.AddCommand(addCmd)

	listCmd := &cobra.Command{
		Use:   "list <projectId>",
		Short: "List a project's todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			todos, err := c.ListProjectTodos(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, td := range todos {
				fmt.Printf("%s\t%s\t%s\t%s\n", td.TodoID, td.Priority, td.Status, td.Content)
			}
			return nil
		},
	}
	cmd.AddCommand(listCmd)

	doneCmd := &cobra.Command{
		Use:   "done <todoId> [date]",
		Short: "Complete a todo, recording it on the date's entry",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			date := time.Now().Format(model.DateLayout)
			if len(args) == 2 {
				date = args[1]
			}
			td, err := c.CompleteTodo(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			fmt.Printf("completed %s on %s\n", td.TodoID, date)
			return nil
		},
	}
	cmd.AddCommand(doneCmd)

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ok, err := c.Healthy(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("service is unhealthy")
			}
			fmt.Println("healthy")
			return nil
		},
	}
}
