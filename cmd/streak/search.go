package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lexfrei/go-streak/api/streak"
)

// NewSearchCmd returns the `search` command.
func NewSearchCmd(opts *clientOptions) *cobra.Command {
	var (
		query     string
		name      string
		page      int
		pipelines []string
		stages    []string
	)

	command := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search boxes and contacts",
		Long:  "Search box contents for QUERY, or box names with --name.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				query = args[0]
			}

			var params streak.SearchParams
			switch {
			case query != "" && name != "":
				return errors.New("give either a query or --name, not both")
			case query != "":
				params = streak.SearchQuery(query)
			case name != "":
				params = streak.SearchName(name)
			default:
				return errors.New("a query or --name is required")
			}
			if cmd.Flags().Changed("page") {
				params = params.WithPage(page)
			}
			params = params.InPipelines(pipelines...).InStages(stages...)

			client, err := opts.newClient()
			if err != nil {
				return err
			}

			result, err := client.Search(cmd.Context(), params)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return printJSON(opts.stdout, result)
			}

			boxes, err := result.Results.DecodeBoxes()
			if err != nil {
				return err
			}
			contacts, err := result.Results.DecodeContacts()
			if err != nil {
				return err
			}

			t := newTable(opts.stdout, "TYPE", "KEY", "NAME")
			for _, b := range boxes {
				key := b.BoxKey
				if key == "" {
					key = b.Key
				}
				t.row("box", key, b.Name)
			}
			for _, c := range contacts {
				t.row("contact", c.Key, c.FullName())
			}
			return t.flush()
		},
	}

	command.Flags().StringVar(&name, "name", "", "search box names instead of contents")
	command.Flags().IntVar(&page, "page", 0, "page to fetch")
	command.Flags().StringSliceVar(&pipelines, "pipeline", nil, "restrict to pipeline keys")
	command.Flags().StringSliceVar(&stages, "stage", nil, "restrict to stage keys")

	return command
}
