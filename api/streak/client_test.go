package streak_test

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/go-streak/api/streak"
	"github.com/lexfrei/go-streak/internal/testutil"
)

const testAPIKey = "test-api-key"

func newTestClient(t *testing.T, baseURL string, mutate ...func(*streak.ClientConfig)) *streak.Client {
	t.Helper()

	cfg := &streak.ClientConfig{
		APIKey:    testAPIKey,
		BaseURL:   baseURL,
		RetryWait: time.Millisecond,
	}
	for _, m := range mutate {
		m(cfg)
	}

	client, err := streak.NewWithConfig(cfg)
	require.NoError(t, err)

	return client
}

type stubTransport struct{}

func (stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("not used")
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		client, err := streak.New("key")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Parallel()

		_, err := streak.New("")
		assert.ErrorIs(t, err, streak.ErrMissingAPIKey)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := streak.NewWithConfig(nil)
		assert.Error(t, err)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		_, err := streak.NewWithConfig(&streak.ClientConfig{APIKey: "key", BaseURL: "not a url"})
		assert.ErrorIs(t, err, streak.ErrRequestURL)
	})

	t.Run("TLS config needs a standard transport", func(t *testing.T) {
		t.Parallel()

		_, err := streak.NewWithConfig(&streak.ClientConfig{
			APIKey:     "key",
			HTTPClient: &http.Client{Transport: stubTransport{}},
			TLSConfig:  &tls.Config{MinVersion: tls.VersionTLS12},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TLSConfig")

		_, err = streak.NewWithConfig(&streak.ClientConfig{
			APIKey:     "key",
			HTTPClient: &http.Client{Transport: &http.Transport{}},
			TLSConfig:  &tls.Config{MinVersion: tls.VersionTLS12},
		})
		require.NoError(t, err)
	})

	t.Run("caller config is not modified", func(t *testing.T) {
		t.Parallel()

		cfg := &streak.ClientConfig{APIKey: "key"}
		_, err := streak.NewWithConfig(cfg)
		require.NoError(t, err)

		assert.Empty(t, cfg.BaseURL)
		assert.Zero(t, cfg.RetryCount)
		assert.Zero(t, cfg.Timeout)
	})
}

func TestListPipelines(t *testing.T) {
	t.Parallel()

	t.Run("single pipeline", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t, "/v1/pipelines", testAPIKey,
			`[{"key":"p1","pipelineKey":"p1","creatorKey":"u1","name":"Sales","orgWide":false,"fields":[],"stages":{},"stageOrder":[],"aclEntries":[]}]`,
			http.StatusOK)
		client := newTestClient(t, server.URL)

		pipelines, err := client.ListPipelines(context.Background())
		require.NoError(t, err)
		require.Len(t, pipelines, 1)
		assert.Equal(t, "p1", pipelines[0].Key)
		assert.Equal(t, "p1", pipelines[0].PipelineKey)
		assert.Equal(t, "Sales", pipelines[0].Name)
	})

	t.Run("full fixture", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t, "/v1/pipelines", testAPIKey, listOf(t, "pipeline.json"), http.StatusOK)
		client := newTestClient(t, server.URL)

		pipelines, err := client.ListPipelines(context.Background())
		require.NoError(t, err)
		require.Len(t, pipelines, 1)
		assert.Len(t, pipelines[0].OrderedStages(), 2)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t, "/v1/pipelines", testAPIKey, `[]`, http.StatusOK)
		client := newTestClient(t, server.URL)

		pipelines, err := client.ListPipelines(context.Background())
		require.NoError(t, err)
		assert.Empty(t, pipelines)
	})

	t.Run("unexpected shape", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t, "/v1/pipelines", testAPIKey, `{"key":"p1"}`, http.StatusOK)
		client := newTestClient(t, server.URL)

		_, err := client.ListPipelines(context.Background())
		testutil.AssertAPIError(t, err, streak.ErrJSONParse)
	})
}

func TestGetPipeline(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/v1/pipelines/pipe-1", testAPIKey, fixture(t, "pipeline.json"), http.StatusOK)
	client := newTestClient(t, server.URL)

	pipeline, err := client.GetPipeline(context.Background(), "pipe-1")
	require.NoError(t, err)
	assert.Equal(t, "Sales", pipeline.Name)
}

func TestListBoxes(t *testing.T) {
	t.Parallel()

	t.Run("no params", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
			testutil.AssertBasicAuth(t, r, testAPIKey)
			assert.Equal(t, "/v1/pipelines/pipe-1/boxes", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(listOf(t, "box.json")))
		})
		client := newTestClient(t, server.URL)

		boxes, err := client.ListBoxes(context.Background(), "pipe-1", nil)
		require.NoError(t, err)
		require.Len(t, boxes, 1)
		assert.Equal(t, "Acme renewal", boxes[0].Name)
	})

	t.Run("page and stage", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "page=2&stageKey=5001", r.URL.RawQuery)
			_, _ = w.Write([]byte(`[]`))
		})
		client := newTestClient(t, server.URL)

		boxes, err := client.ListBoxes(context.Background(), "pipe-1", &streak.ListBoxesParams{
			Page:     streak.Int(2),
			StageKey: streak.String("5001"),
		})
		require.NoError(t, err)
		assert.Empty(t, boxes)
	})
}

func TestGetBox(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t, "/v1/boxes/box-1.json", testAPIKey, fixture(t, "box.json"), http.StatusOK)
		client := newTestClient(t, server.URL)

		box, err := client.GetBox(context.Background(), "box-1")
		require.NoError(t, err)
		assert.Equal(t, "Acme renewal", box.Name)
		assert.Equal(t, 12, box.TotalNumberOfEmails)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServer(t, "/v1/boxes/box-1.json", testAPIKey,
			`{"code":401,"error":"bad key"}`, http.StatusUnauthorized)
		client := newTestClient(t, server.URL)

		box, err := client.GetBox(context.Background(), "box-1")
		assert.Nil(t, box)
		testutil.AssertAPIError(t, err, streak.ErrUnauthorizedKey)

		var apiErr *streak.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "bad key", apiErr.Status.Error)
		require.NotNil(t, apiErr.Status.Code)
		assert.Equal(t, 401, *apiErr.Status.Code)
	})

	t.Run("not found is not retried", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerSequence(t, testutil.Response{
			StatusCode: http.StatusNotFound,
			Body:       `{"code":404,"error":"box not found"}`,
		})
		client := newTestClient(t, server.URL)

		_, err := client.GetBox(context.Background(), "box-1")
		testutil.AssertAPIError(t, err, streak.ErrResourceNotFound)
		assert.Equal(t, 1, server.Hits())
	})

	t.Run("key is escaped", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/boxes/a%2Fb%20c.json", r.URL.EscapedPath())
			_, _ = w.Write([]byte(`{"key":"a/b c"}`))
		})
		client := newTestClient(t, server.URL)

		box, err := client.GetBox(context.Background(), "a/b c")
		require.NoError(t, err)
		assert.Equal(t, "a/b c", box.Key)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, "http://127.0.0.1:1")

		_, err := client.GetBox(context.Background(), "")
		testutil.AssertAPIError(t, err, streak.ErrRequestURL)
	})
}

func TestGetContact(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/v2/contacts/contact-1", testAPIKey, fixture(t, "contact.json"), http.StatusOK)
	client := newTestClient(t, server.URL)

	contact, err := client.GetContact(context.Background(), "contact-1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", contact.GivenName)
	assert.Equal(t, []string{"cfo@acme.example"}, contact.EmailAddresses)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    streak.SearchParams
		wantQuery string
	}{
		{
			name:      "query only",
			params:    streak.SearchQuery("AWS"),
			wantQuery: "query=AWS",
		},
		{
			name:      "name with page",
			params:    streak.SearchName("Acme").WithPage(3),
			wantQuery: "name=Acme&page=3",
		},
		{
			name:      "restricted to pipelines and stages",
			params:    streak.SearchQuery("deal").InPipelines("p1", "p2").InStages("s1"),
			wantQuery: "pipelineKey=p1&pipelineKey=p2&query=deal&stageKey=s1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := testutil.NewMockServerWithHandler(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/search", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				_, _ = w.Write([]byte(fixture(t, "search.json")))
			})
			client := newTestClient(t, server.URL)

			result, err := client.Search(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Len(t, result.Results.Boxes, 1)
		})
	}
}

func TestSearchParamsBuildersCopy(t *testing.T) {
	t.Parallel()

	base := streak.SearchQuery("x").InPipelines("p1")
	a := base.InPipelines("p2")
	b := base.InPipelines("p3")

	assert.Equal(t, []string{"p1"}, base.PipelineKeys)
	assert.Equal(t, []string{"p1", "p2"}, a.PipelineKeys)
	assert.Equal(t, []string{"p1", "p3"}, b.PipelineKeys)
	assert.Nil(t, base.Page)
}

func TestRetryOnServiceUnavailable(t *testing.T) {
	t.Parallel()

	unavailable := testutil.Response{
		StatusCode:  http.StatusServiceUnavailable,
		Body:        "<html>503</html>",
		ContentType: "text/html",
	}

	t.Run("exhausted", func(t *testing.T) {
		t.Parallel()

		metrics := &testutil.Metrics{}
		server := testutil.NewMockServerSequence(t, testutil.Repeat(unavailable, 3)...)
		client := newTestClient(t, server.URL, func(cfg *streak.ClientConfig) {
			cfg.RetryCount = 2
			cfg.Metrics = metrics
		})

		_, err := client.ListPipelines(context.Background())
		testutil.AssertAPIError(t, err, streak.ErrServiceUnavailable)
		assert.Equal(t, 3, server.Hits())
		assert.Equal(t, []int{1, 2}, metrics.Retries())
	})

	t.Run("default retry count", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerSequence(t, testutil.Repeat(unavailable, streak.DefaultRetryCount+1)...)
		client := newTestClient(t, server.URL)

		_, err := client.ListPipelines(context.Background())
		testutil.AssertAPIError(t, err, streak.ErrServiceUnavailable)
		assert.Equal(t, streak.DefaultRetryCount+1, server.Hits())
	})

	t.Run("recovers", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerSequence(t,
			unavailable,
			testutil.Response{StatusCode: http.StatusOK, Body: fixture(t, "contact.json")},
		)
		client := newTestClient(t, server.URL)

		contact, err := client.GetContact(context.Background(), "c1")
		require.NoError(t, err)
		assert.Equal(t, "Hopper", contact.FamilyName)
		assert.Equal(t, 2, server.Hits())
	})

	t.Run("negative wait retries immediately", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerSequence(t, testutil.Repeat(unavailable, 4)...)
		client := newTestClient(t, server.URL, func(cfg *streak.ClientConfig) {
			cfg.RetryCount = 3
			cfg.RetryWait = -1
		})

		start := time.Now()
		_, err := client.ListPipelines(context.Background())
		testutil.AssertAPIError(t, err, streak.ErrServiceUnavailable)
		assert.Equal(t, 4, server.Hits())
		assert.Less(t, time.Since(start), 3*streak.DefaultRetryWait)
	})

	t.Run("no retry", func(t *testing.T) {
		t.Parallel()

		server := testutil.NewMockServerSequence(t, unavailable)
		client := newTestClient(t, server.URL, func(cfg *streak.ClientConfig) {
			cfg.RetryCount = 5
			cfg.NoRetry = true
		})

		_, err := client.ListPipelines(context.Background())
		testutil.AssertAPIError(t, err, streak.ErrServiceUnavailable)
		assert.Equal(t, 1, server.Hits())
	})
}

func TestCreatedResponseIsNotAModel(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServerSequence(t, testutil.Response{
		StatusCode:  http.StatusOK,
		Body:        "ok",
		ContentType: "text/plain",
		Header:      map[string]string{"Location": "/v1/boxes/new"},
	})
	client := newTestClient(t, server.URL)

	_, err := client.GetBox(context.Background(), "new")
	testutil.AssertAPIError(t, err, streak.ErrJSONParse)
}

func TestContextCanceled(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/v1/pipelines", testAPIKey, `[]`, http.StatusOK)
	client := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListPipelines(ctx)
	testutil.AssertAPIError(t, err, streak.ErrRequest)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	server := testutil.NewMockServer(t, "/v1/pipelines", testAPIKey, listOf(t, "pipeline.json"), http.StatusOK)
	client := newTestClient(t, server.URL)

	errs := make(chan error, 10)
	for range 10 {
		go func() {
			_, err := client.ListPipelines(context.Background())
			errs <- err
		}()
	}
	for range 10 {
		assert.NoError(t, <-errs)
	}
}
