package main

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewContactsCmd returns the `contacts` command group.
func NewContactsCmd(opts *clientOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "contacts",
		Short: "Inspect contacts",
	}
	command.AddCommand(newContactsGetCmd(opts))
	return command
}

func newContactsGetCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTACT_KEY",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}

			contact, err := client.GetContact(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return printJSON(opts.stdout, contact)
			}

			t := newTable(opts.stdout)
			t.row("Key:", contact.Key)
			t.row("Name:", contact.FullName())
			t.row("Title:", deref(contact.Title))
			t.row("Emails:", strings.Join(contact.EmailAddresses, ", "))
			t.row("Phones:", strings.Join(contact.PhoneNumbers, ", "))
			t.row("Created:", formatMillis(contact.CreationDate))
			return t.flush()
		},
	}
}
