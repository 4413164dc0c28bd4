// Package streak provides a Go client for the Streak CRM REST API.
//
// The client covers pipelines, boxes, contacts and search. Every call is a
// single GET authenticated with HTTP Basic auth, the API key being the
// username.
//
// # Retry Logic
//
// Only transient unavailability is retried: a 503 response whose body is
// not JSON and that has no Location header. Retries use a fixed wait
// (250ms by default) and give up after RetryCount retries (3 by default),
// after which the call fails with ErrServiceUnavailable. Network errors and
// JSON error bodies are returned at once.
//
// # Errors
//
// JSON error bodies become an *APIError whose kind matches errors.Is:
//
//	box, err := client.GetBox(ctx, key)
//	if errors.Is(err, streak.ErrResourceNotFound) {
//	    // no such box
//	}
//
//	var apiErr *streak.APIError
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.StatusCode, apiErr.Status.Error)
//	}
//
// # Example Usage
//
//	client, err := streak.New(os.Getenv("STREAK_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pipelines, err := client.ListPipelines(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range pipelines {
//	    fmt.Printf("Pipeline: %s (%s)\n", p.Name, p.Key)
//	}
//
// # Configuration from the environment
//
//	cfg, err := streak.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := streak.NewWithConfig(cfg)
package streak
