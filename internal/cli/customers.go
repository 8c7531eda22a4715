package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/client"
	"github.com/evcraddock/hvr-studio/internal/customer"
)

func newCustomersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers, most recently contacted first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCustomersList(search)
		},
	}
	list.Flags().StringVar(&search, "search", "", "only customers whose name, email, phone or tags contain this text")

	var req client.NewCustomer
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a customer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = strings.Join(args, " ")
			return runCustomersAdd(req)
		},
	}
	add.Flags().StringVar(&req.Email, "email", "", "email address")
	add.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	add.Flags().StringVar(&req.Source, "source", "", "how they found the studio")
	add.Flags().StringVar(&req.Notes, "notes", "", "free-form notes")
	add.Flags().StringSliceVar(&req.Tags, "tag", nil, "tag (repeatable)")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a customer and their projects",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCustomersShow(args[0])
			},
		},
		add,
		newCustomersUpdateCmd(),
		newRemoveCmd("Customer", "Remove a customer", (*client.Client).DeleteCustomer),
	)

	return cmd
}

func runCustomersList(search string) error {
	customers, err := newAPIClient().ListCustomers(search)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(customers)
	}

	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.ID,
			truncate(c.PersonalInfo.Name, 30),
			orDash(c.PersonalInfo.Email),
			orDash(c.PersonalInfo.Phone),
			formatTime(&c.Engagement.LastContact),
		})
	}
	return printTable("customers", []string{"ID", "NAME", "EMAIL", "PHONE", "LAST CONTACT"}, rows)
}

func runCustomersShow(id string) error {
	api := newAPIClient()
	c, err := api.GetCustomer(id)
	if err != nil {
		return err
	}
	projects, err := api.ListProjects(id)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(map[string]any{"customer": c, "projects": projects})
	}

	printCustomer(c)
	fmt.Println()
	return printProjectTable(projects)
}

func printCustomer(c *customer.Customer) {
	printFields("Customer "+c.ID, [][2]string{
		{"Name", c.PersonalInfo.Name},
		{"Email", c.PersonalInfo.Email},
		{"Phone", c.PersonalInfo.Phone},
		{"Source", c.Engagement.Source},
		{"First", formatTime(&c.Engagement.FirstContact)},
		{"Last", formatTime(&c.Engagement.LastContact)},
		{"Tags", strings.Join(c.Tags, ", ")},
		{"Notes", c.Notes},
	})
}

func runCustomersAdd(req client.NewCustomer) error {
	id, err := newAPIClient().CreateCustomer(req)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id})
	}
	fmt.Printf("Customer %s added.\n", id)
	return nil
}

func newCustomersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a customer's details",
		Long:  "Change a customer's details. Only the flags given are changed, and the last contact time is refreshed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch := client.CustomerChanges{
				Name:   changedString(cmd, "name"),
				Email:  changedString(cmd, "email"),
				Phone:  changedString(cmd, "phone"),
				Source: changedString(cmd, "source"),
				Notes:  changedString(cmd, "notes"),
			}
			if cmd.Flags().Changed("tag") {
				tags, _ := cmd.Flags().GetStringSlice("tag")
				ch.Tags = &tags
			}
			return runUpdate("Customer", args[0], ch == client.CustomerChanges{}, func(api *client.Client) error {
				return api.UpdateCustomer(args[0], ch)
			})
		},
	}
	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("source", "", "how they found the studio")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().StringSlice("tag", nil, "replace tags (repeatable)")
	return cmd
}
