package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/lexfrei/go-streak/api/streak"
)

// NewBoxesCmd returns the `boxes` command group.
func NewBoxesCmd(opts *clientOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "boxes",
		Short: "List and inspect boxes",
	}
	command.AddCommand(newBoxesListCmd(opts))
	command.AddCommand(newBoxesGetCmd(opts))
	return command
}

func newBoxesListCmd(opts *clientOptions) *cobra.Command {
	var (
		page     int
		limit    int
		sortBy   string
		stageKey string
	)

	command := &cobra.Command{
		Use:   "list PIPELINE_KEY",
		Short: "List the boxes of a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}

			params := &streak.ListBoxesParams{}
			if cmd.Flags().Changed("page") {
				params.Page = streak.Int(page)
			}
			if cmd.Flags().Changed("limit") {
				params.Limit = streak.Int(limit)
			}
			if sortBy != "" {
				params.SortBy = streak.String(sortBy)
			}
			if stageKey != "" {
				params.StageKey = streak.String(stageKey)
			}

			boxes, err := client.ListBoxes(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return printJSON(opts.stdout, boxes)
			}

			t := newTable(opts.stdout, "KEY", "NAME", "STAGE", "UPDATED")
			for _, b := range boxes {
				t.row(b.Key, b.Name, b.StageKey, formatMillis(b.LastUpdatedTimestamp))
			}
			return t.flush()
		},
	}

	command.Flags().IntVar(&page, "page", 0, "page to fetch")
	command.Flags().IntVar(&limit, "limit", 0, "boxes per page")
	command.Flags().StringVar(&sortBy, "sort-by", "", "sort field, e.g. creationTimestamp")
	command.Flags().StringVar(&stageKey, "stage", "", "only boxes in this stage")

	return command
}

func newBoxesGetCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get BOX_KEY",
		Short: "Show one box with its custom fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}

			box, err := client.GetBox(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return printJSON(opts.stdout, box)
			}

			t := newTable(opts.stdout)
			t.row("Key:", box.Key)
			t.row("Name:", box.Name)
			t.row("Pipeline:", box.PipelineKey)
			t.row("Stage:", box.StageKey)
			t.row("Notes:", deref(box.Notes))
			t.row("Updated:", formatMillis(box.LastUpdatedTimestamp))
			t.row("Emails:", box.TotalNumberOfEmails)

			keys := make([]string, 0, len(box.Fields))
			for k := range box.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			t.row("")
			t.row("FIELD KEY", "KIND", "VALUE")
			for _, k := range keys {
				v := box.Fields[k]
				t.row(k, v.Kind(), v)
			}

			if len(box.Contacts) > 0 {
				t.row("")
				t.row("CONTACT KEY", "STARRED")
				for _, c := range box.Contacts {
					t.row(c.Key, c.IsStarred)
				}
			}
			return t.flush()
		},
	}
}
