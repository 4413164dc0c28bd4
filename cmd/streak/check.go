package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/lexfrei/go-streak/api/streak"
)

// checkResult is the outcome of one endpoint probe.
type checkResult struct {
	Endpoint string        `json:"endpoint"`
	Success  bool          `json:"success"`
	Skipped  bool          `json:"skipped,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"durationNs"`
	Detail   string        `json:"detail,omitempty"`
}

var errChecksFailed = errors.New("one or more checks failed")

// NewCheckCmd returns the `check` command, which walks every read endpoint
// starting from the first pipeline and reports what succeeded.
func NewCheckCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Call each endpoint once and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}

			results := runChecks(cmd.Context(), client)

			if opts.output == outputJSON {
				if err := printJSON(opts.stdout, results); err != nil {
					return err
				}
			} else {
				t := newTable(opts.stdout, "STATUS", "ENDPOINT", "DURATION", "DETAIL")
				for _, r := range results {
					status, detail := "ok", r.Detail
					switch {
					case r.Skipped:
						status = "skip"
					case !r.Success:
						status, detail = "FAIL", r.Error
					}
					t.row(status, r.Endpoint, r.Duration.Round(time.Millisecond), detail)
				}
				if err := t.flush(); err != nil {
					return err
				}
			}

			for _, r := range results {
				if !r.Success && !r.Skipped {
					return errChecksFailed
				}
			}
			return nil
		},
	}
}

func runChecks(ctx context.Context, client streak.StreakAPIClient) []checkResult {
	var (
		pipelineKey string
		boxKey      string
		contactKey  string
		results     []checkResult
	)

	results = append(results, probe("ListPipelines", func() (string, error) {
		pipelines, err := client.ListPipelines(ctx)
		if err != nil {
			return "", err
		}
		if len(pipelines) > 0 {
			pipelineKey = pipelines[0].Key
		}
		return fmt.Sprintf("%d pipelines", len(pipelines)), nil
	}))

	results = append(results, probeWith("GetPipeline", pipelineKey, func() (string, error) {
		pipeline, err := client.GetPipeline(ctx, pipelineKey)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s, %d stages", pipeline.Name, len(pipeline.Stages)), nil
	}))

	results = append(results, probeWith("ListBoxes", pipelineKey, func() (string, error) {
		boxes, err := client.ListBoxes(ctx, pipelineKey, nil)
		if err != nil {
			return "", err
		}
		if len(boxes) > 0 {
			boxKey = boxes[0].Key
		}
		return fmt.Sprintf("%d boxes", len(boxes)), nil
	}))

	results = append(results, probeWith("GetBox", boxKey, func() (string, error) {
		box, err := client.GetBox(ctx, boxKey)
		if err != nil {
			return "", err
		}
		if len(box.Contacts) > 0 {
			contactKey = box.Contacts[0].Key
		}
		return fmt.Sprintf("%s, %d fields", box.Name, len(box.Fields)), nil
	}))

	results = append(results, probeWith("GetContact", contactKey, func() (string, error) {
		contact, err := client.GetContact(ctx, contactKey)
		if err != nil {
			return "", err
		}
		return contact.FullName(), nil
	}))

	return results
}

func probe(endpoint string, call func() (string, error)) checkResult {
	start := time.Now()
	detail, err := call()
	result := checkResult{Endpoint: endpoint, Duration: time.Since(start), Detail: detail}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	return result
}

// probeWith skips the call when the key it needs was not discovered.
func probeWith(endpoint, key string, call func() (string, error)) checkResult {
	if key == "" {
		return checkResult{Endpoint: endpoint, Skipped: true, Detail: "nothing to fetch"}
	}
	return probe(endpoint, call)
}
