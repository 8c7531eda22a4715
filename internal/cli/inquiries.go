package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/hvr-studio/internal/client"
	"github.com/evcraddock/hvr-studio/internal/inquiry"
)

func newInquiriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inquiries",
		Aliases: []string{"inquiry"},
		Short:   "Review contact-form inquiries",
	}

	var unread bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List inquiries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInquiriesList(unread)
		},
	}
	list.Flags().BoolVar(&unread, "unread", false, "only inquiries nobody has read yet")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show an inquiry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInquiriesShow(args[0])
			},
		},
		&cobra.Command{
			Use:   "read <id>",
			Short: "Mark an inquiry as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInquiriesRead(args[0])
			},
		},
		&cobra.Command{
			Use:   "status <id> <new|read|replied|archived>",
			Short: "Set an inquiry's status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInquiriesStatus(args[0], args[1])
			},
		},
		newRemoveCmd("Inquiry", "Remove an inquiry", (*client.Client).DeleteInquiry),
	)

	return cmd
}

func runInquiriesList(unread bool) error {
	inquiries, err := newAPIClient().ListInquiries(unread)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(inquiries)
	}

	rows := make([][]string, 0, len(inquiries))
	for _, i := range inquiries {
		rows = append(rows, []string{
			i.ID,
			formatTime(&i.Timestamp),
			truncate(i.Name, 24),
			i.Email,
			string(i.Status),
			truncate(i.Message, 40),
		})
	}
	return printTable("inquiries", []string{"ID", "RECEIVED", "NAME", "EMAIL", "STATUS", "MESSAGE"}, rows)
}

func runInquiriesShow(id string) error {
	i, err := newAPIClient().GetInquiry(id)
	if err != nil {
		return err
	}
	if isJSON() {
		return printJSON(i)
	}

	readAt := ""
	if i.ReadAt != nil {
		readAt = formatTime(i.ReadAt)
	}
	printFields("Inquiry "+i.ID, [][2]string{
		{"From", i.Name},
		{"Email", i.Email},
		{"Phone", i.Phone},
		{"Service", i.Service},
		{"Status", string(i.Status)},
		{"Received", formatTime(&i.Timestamp)},
		{"Read", readAt},
	})
	fmt.Printf("\n%s\n", i.Message)
	return nil
}

func runInquiriesRead(id string) error {
	if err := newAPIClient().MarkInquiryRead(id); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id, "status": string(inquiry.StatusRead)})
	}
	fmt.Printf("Inquiry %s marked read.\n", id)
	return nil
}

func runInquiriesStatus(id, status string) error {
	if !inquiry.Status(status).IsValid() {
		return fmt.Errorf("invalid inquiry status %q", status)
	}
	if err := newAPIClient().UpdateInquiryStatus(id, status); err != nil {
		return err
	}
	if isJSON() {
		return printJSON(map[string]string{"id": id, "status": status})
	}
	fmt.Printf("Inquiry %s is now %s.\n", id, status)
	return nil
}
