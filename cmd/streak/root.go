package main

import (
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lexfrei/go-streak/api/streak"
	"github.com/lexfrei/go-streak/observability"
)

const cliName = "streak"

// clientOptions are the global flags shared by every subcommand.
type clientOptions struct {
	envFiles   []string
	apiKey     string
	baseURL    string
	retryCount int
	noRetry    bool
	timeout    time.Duration
	output     string
	verbose    bool

	stdout io.Writer
	stderr io.Writer
	logger *logrus.Logger
}

// NewRootCmd returns the root command writing results to stdout and logs to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &clientOptions{stdout: stdout, stderr: stderr}

	command := &cobra.Command{
		Use:           cliName,
		Short:         "Query pipelines, boxes and contacts in Streak CRM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != outputTable && opts.output != outputJSON {
				return errors.Newf("unknown output format %q (want %s or %s)", opts.output, outputTable, outputJSON)
			}

			opts.logger = logrus.New()
			opts.logger.SetOutput(opts.stderr)
			opts.logger.SetLevel(logrus.WarnLevel)
			if opts.verbose {
				opts.logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}
	command.SetOut(stdout)
	command.SetErr(stderr)

	flags := command.PersistentFlags()
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	flags.StringVar(&opts.apiKey, "api-key", "", "Streak API key (overrides "+streak.EnvAPIKey+")")
	flags.StringVar(&opts.baseURL, "base-url", "", "API root URL (overrides "+streak.EnvBaseURL+")")
	flags.IntVar(&opts.retryCount, "retries", -1, "retries while the service is unavailable (-1 keeps config)")
	flags.BoolVar(&opts.noRetry, "no-retry", false, "disable retries")
	flags.DurationVar(&opts.timeout, "timeout", 0, "bound on each call including retries")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	command.AddCommand(NewPipelinesCmd(opts))
	command.AddCommand(NewBoxesCmd(opts))
	command.AddCommand(NewContactsCmd(opts))
	command.AddCommand(NewSearchCmd(opts))
	command.AddCommand(NewCheckCmd(opts))

	return command
}

// newClient loads the configuration and applies flag overrides. An API key
// passed by flag makes the environment key optional.
func (o *clientOptions) newClient() (*streak.Client, error) {
	cfg, err := streak.ConfigFromEnv(o.envFiles...)
	switch {
	case err == nil:
	case o.apiKey != "" && errors.Is(err, streak.ErrMissingAPIKey):
		cfg = &streak.ClientConfig{}
	default:
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	if o.apiKey != "" {
		cfg.APIKey = o.apiKey
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.retryCount >= 0 {
		cfg.RetryCount = o.retryCount
		cfg.NoRetry = o.retryCount == 0
	}
	if o.noRetry {
		cfg.NoRetry = true
	}
	if o.timeout > 0 {
		cfg.Timeout = o.timeout
	}

	cfg.UserAgent = cliName + "-cli"
	cfg.Logger = observability.NewLogrusLogger(o.logger)

	client, err := streak.NewWithConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	return client, nil
}
