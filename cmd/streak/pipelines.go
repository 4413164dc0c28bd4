package main

import (
	"github.com/spf13/cobra"
)

// NewPipelinesCmd returns the `pipelines` command group.
func NewPipelinesCmd(opts *clientOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "pipelines",
		Short: "List and inspect pipelines",
	}
	command.AddCommand(newPipelinesListCmd(opts))
	command.AddCommand(newPipelinesGetCmd(opts))
	return command
}

func newPipelinesListCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}

			pipelines, err := client.ListPipelines(cmd.Context())
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return printJSON(opts.stdout, pipelines)
			}

			t := newTable(opts.stdout, "KEY", "NAME", "BOXES", "STAGES")
			for _, p := range pipelines {
				t.row(p.Key, p.Name, p.BoxCount, len(p.Stages))
			}
			return t.flush()
		},
	}
}

func newPipelinesGetCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get PIPELINE_KEY",
		Short: "Show one pipeline with its stages and fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}

			pipeline, err := client.GetPipeline(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return printJSON(opts.stdout, pipeline)
			}

			t := newTable(opts.stdout)
			t.row("Key:", pipeline.Key)
			t.row("Name:", pipeline.Name)
			t.row("Description:", deref(pipeline.Description))
			t.row("Created:", formatMillis(pipeline.CreationTimestamp))
			t.row("Boxes:", pipeline.BoxCount)
			t.row("")
			t.row("STAGE KEY", "STAGE", "BOXES")
			for _, stage := range pipeline.OrderedStages() {
				t.row(stage.Key, stage.Name, stage.BoxCount)
			}
			t.row("")
			t.row("FIELD KEY", "FIELD", "TYPE")
			for _, f := range pipeline.Fields {
				t.row(f.Key, f.Name, f.Type)
			}
			return t.flush()
		},
	}
}
