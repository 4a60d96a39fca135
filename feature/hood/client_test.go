package hood_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hood-sync/feature/hood"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*hood.HTTPClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.Endpoint = srv.URL

	return hood.NewClient(cfg, zap.NewNop(), nil), srv
}

func TestItemExists(t *testing.T) {
	t.Run("Success indicator means Found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
			assert.Contains(t, string(body), "<function>itemDetail</function>")
			assert.Contains(t, string(body), "<articleID>12345</articleID>")

			_, _ = w.Write([]byte(`<response><status>ok</status></response>`))
		})

		assert.Equal(t, hood.Found, client.ItemExists(context.Background(), "12345"))
	})

	t.Run("Error element means NotFound", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<response><error>item not found</error></response>`))
		})

		assert.Equal(t, hood.NotFound, client.ItemExists(context.Background(), "12345"))
	})

	t.Run("Error status token means NotFound", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<response><status>error</status></response>`))
		})

		assert.Equal(t, hood.NotFound, client.ItemExists(context.Background(), "12345"))
	})

	t.Run("Non-success HTTP status means CheckFailed", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		assert.Equal(t, hood.CheckFailed, client.ItemExists(context.Background(), "12345"))
	})

	t.Run("Unparsable body means CheckFailed", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`this is not xml <<<`))
		})

		assert.Equal(t, hood.CheckFailed, client.ItemExists(context.Background(), "12345"))
	})

	t.Run("Transport failure means CheckFailed, never an error", func(t *testing.T) {
		client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		assert.Equal(t, hood.CheckFailed, client.ItemExists(context.Background(), "12345"))
	})
}

func TestInsert(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			received = string(body)
			_, _ = w.Write([]byte(`<response><status>ok</status></response>`))
		})

		err := client.Insert(context.Background(), testProduct())
		require.NoError(t, err)
		assert.Contains(t, received, "<function>itemInsert</function>")
	})

	t.Run("Marketplace error element", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<response><status>error</status><error>invalid category</error></response>`))
		})

		err := client.Insert(context.Background(), testProduct())

		var apiErr *hood.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, hood.FunctionItemInsert, apiErr.Operation)
		assert.Equal(t, "12345", apiErr.ArticleID)
		assert.Contains(t, apiErr.Message, "invalid category")
	})

	t.Run("Non-success HTTP status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		})

		err := client.Insert(context.Background(), testProduct())

		var apiErr *hood.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})

	t.Run("Unparsable response body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<<< garbage`))
		})

		err := client.Insert(context.Background(), testProduct())

		var apiErr *hood.APIError
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("Transport failure", func(t *testing.T) {
		client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		srv.Close()

		err := client.Insert(context.Background(), testProduct())

		var apiErr *hood.APIError
		assert.ErrorAs(t, err, &apiErr)
	})
}

func TestUpdate(t *testing.T) {
	var received string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		_, _ = w.Write([]byte(`<response><status>ok</status></response>`))
	})

	err := client.Update(context.Background(), testProduct())
	require.NoError(t, err)
	assert.Contains(t, received, "<function>itemUpdate</function>")
}

type recordingSink struct {
	operations []string
}

func (s *recordingSink) Record(_ context.Context, operation, articleID string, request, response []byte) {
	s.operations = append(s.operations, operation+":"+articleID)
	if len(request) == 0 || len(response) == 0 {
		s.operations = append(s.operations, "empty-body")
	}
}

func TestAuditSink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><status>ok</status></response>`))
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.Endpoint = srv.URL
	sink := &recordingSink{}
	client := hood.NewClient(cfg, zap.NewNop(), sink)

	_ = client.ItemExists(context.Background(), "12345")
	require.NoError(t, client.Insert(context.Background(), testProduct()))

	assert.Equal(t, []string{"itemDetail:12345", "itemInsert:12345"}, sink.operations)
	assert.False(t, strings.Contains(strings.Join(sink.operations, ","), "empty-body"))
}
