package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/client"
	"github.com/evcraddock/hvr-studio/internal/project"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects and their timelines",
	}

	var customerID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := newAPIClient().ListProjects(customerID)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(projects)
			}
			return printProjectTable(projects)
		},
	}
	list.Flags().StringVar(&customerID, "customer", "", "only this customer's projects")

	var req client.NewProject
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Start a project for a customer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = strings.Join(args, " ")
			return runProjectsAdd(req)
		},
	}
	add.Flags().StringVar(&req.CustomerID, "customer", "", "customer ID (required)")
	add.Flags().StringVar(&req.Type, "type", "", "kind of shoot")
	add.Flags().StringVar(&req.ShootDate, "date", "", "shoot date (YYYY-MM-DD)")
	add.Flags().StringVar(&req.Location, "location", "", "shoot location")
	add.Flags().Float64Var(&req.Price, "price", 0, "agreed price")
	_ = add.MarkFlagRequired("customer")

	var user string
	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a project to a new status",
		Long:  "Move a project to a new status and record it on the timeline. Statuses: " + joinStatuses(project.ValidStatuses) + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsStatus(args[0], args[1], user)
		},
	}
	status.Flags().StringVar(&user, "user", "", "who made the change (default Admin)")

	note := &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Add a note to a project's timeline",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectsNote(args[0], strings.Join(args[1:], " "), user)
		},
	}
	note.Flags().StringVar(&user, "user", "", "who wrote the note (default Admin)")

	event := &cobra.Command{
		Use:   "event <id> <text>",
		Short: "Record an event on a project's timeline as written",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := newAPIClient().AppendTimelineEntry(id, strings.Join(args[1:], " "), user); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]any{"id": id, "recorded": true})
			}
			fmt.Printf("Event recorded on project %s.\n", id)
			return nil
		},
	}
	event.Flags().StringVar(&user, "user", "", "who recorded it (default Admin)")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a project with its timeline",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProjectsShow(args[0])
			},
		},
		add,
		newProjectsUpdateCmd(),
		status,
		note,
		event,
		newRemoveCmd("Project", "Remove a project", (*client.Client).DeleteProject),
	)

	return cmd
}

func joinStatuses(statuses []project.Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func printProjectTable(projects []*project.Project) error {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		price := "-"
		if p.ProjectInfo.Price > 0 {
			price = formatMoney(p.ProjectInfo.Price)
		}
		rows = append(rows, []string{
			p.ID,
			truncate(p.ProjectInfo.Title, 30),
			string(p.ProjectInfo.Status),
			orDash(p.ProjectInfo.ShootDate),
			price,
		})
	}
	return printTable("projects", []string{"ID", "TITLE", "STATUS", "SHOOT", "PRICE"}, rows)
}

func runProjectsShow(id string) error {
	p, err := newAPIClient().GetProject(id)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(p)
	}

	price := ""
	if p.ProjectInfo.Price > 0 {
		price = formatMoney(p.ProjectInfo.Price)
	}
	printFields("Project "+p.ID, [][2]string{
		{"Title", p.ProjectInfo.Title},
		{"Customer", p.CustomerID},
		{"Type", p.ProjectInfo.Type},
		{"Status", string(p.ProjectInfo.Status)},
		{"Shoot", p.ProjectInfo.ShootDate},
		{"Location", p.ProjectInfo.Location},
		{"Price", price},
		{"Created", formatTime(&p.ProjectInfo.CreatedDate)},
	})

	fmt.Println("\nTimeline:")
	if len(p.Timeline) == 0 {
		fmt.Println("  (empty)")
	}
	for _, e := range p.Timeline {
		fmt.Printf("  [%s] %s (%s)\n", formatTime(&e.Date), e.Event, e.User)
	}
	return nil
}

func runProjectsAdd(req client.NewProject) error {
	id, err := newAPIClient().CreateProject(req)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id})
	}
	fmt.Printf("Project %s created.\n", id)
	return nil
}

func runProjectsStatus(id, status, user string) error {
	if !project.Status(status).IsValid() {
		return fmt.Errorf("invalid status %q (want one of: %s)", status, joinStatuses(project.ValidStatuses))
	}
	if err := newAPIClient().UpdateProjectStatus(id, status, user); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id, "status": status})
	}
	fmt.Printf("Project %s is now %s.\n", id, status)
	return nil
}

func runProjectsNote(id, note, user string) error {
	if err := newAPIClient().AddProjectNote(id, note, user); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]any{"id": id, "note": note})
	}
	fmt.Printf("Note added to project %s.\n", id)
	return nil
}

func newProjectsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a project's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch := client.ProjectChanges{
				Title:     changedString(cmd, "title"),
				Type:      changedString(cmd, "type"),
				ShootDate: changedString(cmd, "date"),
				Location:  changedString(cmd, "location"),
				Price:     changedFloat(cmd, "price"),
			}
			return runUpdate("Project", args[0], ch == client.ProjectChanges{}, func(api *client.Client) error {
				return api.UpdateProject(args[0], ch)
			})
		},
	}
	cmd.Flags().String("title", "", "project title")
	cmd.Flags().String("type", "", "kind of shoot")
	cmd.Flags().String("date", "", "shoot date (YYYY-MM-DD)")
	cmd.Flags().String("location", "", "shoot location")
	cmd.Flags().Float64("price", 0, "agreed price")
	return cmd
}
