package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, response string) (*Client, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*recorded = recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			header: r.Header.Clone(),
			body:   string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "service-key")
	require.NoError(t, err)
	return client, recorded
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("https://x.supabase.co", "")
	assert.Error(t, err)

	_, err = NewClient("ftp://x.supabase.co", "key")
	assert.Error(t, err)

	_, err = NewClient("://bad", "key")
	assert.Error(t, err)
}

func TestClient_Select(t *testing.T) {
	client, recorded := newTestServer(t, http.StatusOK, `[{"name":"Milk"}]`)

	params := url.Values{}
	params.Set("select", "*")
	params.Set("name", "ilike.*milk*")
	params.Set("order", "place.asc")

	var rows []map[string]any
	require.NoError(t, client.Select(context.Background(), "shopping", params, &rows))

	assert.Equal(t, http.MethodGet, recorded.method)
	assert.Equal(t, "/rest/v1/shopping", recorded.path)
	assert.Equal(t, "ilike.*milk*", recorded.query.Get("name"))
	assert.Equal(t, "place.asc", recorded.query.Get("order"))
	assert.Equal(t, "service-key", recorded.header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", recorded.header.Get("Authorization"))
	assert.Empty(t, recorded.header.Get("Prefer"))
	require.Len(t, rows, 1)
	assert.Equal(t, "Milk", rows[0]["name"])
}

func TestClient_Mutations(t *testing.T) {
	filter := url.Values{}
	filter.Set("id", "eq.4b6f1c2e-2f1a-4a57-9c1e-2f5d3c4b5a69")

	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantBody   string
		wantFilter bool
	}{
		{
			name: "insert",
			call: func(c *Client) error {
				return c.Insert(context.Background(), "shopping", []map[string]any{{"name": "Eggs"}})
			},
			wantMethod: http.MethodPost,
			wantBody:   `[{"name":"Eggs"}]`,
		},
		{
			name: "update",
			call: func(c *Client) error {
				return c.Update(context.Background(), "shopping", filter, map[string]any{"place": "Fridge"})
			},
			wantMethod: http.MethodPatch,
			wantBody:   `{"place":"Fridge"}`,
			wantFilter: true,
		},
		{
			name: "delete",
			call: func(c *Client) error {
				return c.Delete(context.Background(), "shopping", filter)
			},
			wantMethod: http.MethodDelete,
			wantFilter: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, recorded := newTestServer(t, http.StatusNoContent, "")

			require.NoError(t, tt.call(client))

			assert.Equal(t, tt.wantMethod, recorded.method)
			assert.Equal(t, "/rest/v1/shopping", recorded.path)
			assert.Equal(t, "return=minimal", recorded.header.Get("Prefer"))
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorded.body)
				assert.Equal(t, "application/json", recorded.header.Get("Content-Type"))
			} else {
				assert.Empty(t, recorded.body)
			}
			if tt.wantFilter {
				assert.Equal(t, filter.Get("id"), recorded.query.Get("id"))
			}
		})
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	client, _ := newTestServer(t, http.StatusNotFound,
		`{"code":"42P01","details":null,"hint":null,"message":"relation \"public.shopping\" does not exist"}`)

	err := client.Select(context.Background(), "shopping", nil, &[]map[string]any{})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "42P01", apiErr.Code)
	assert.Equal(t, `relation "public.shopping" does not exist`, err.Error())
	assert.Empty(t, apiErr.Details)
}

func TestClient_PlainErrorBody(t *testing.T) {
	client, _ := newTestServer(t, http.StatusBadGateway, "upstream unavailable\n")

	err := client.Ping(context.Background())

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestClient_EmptyErrorBody(t *testing.T) {
	client, _ := newTestServer(t, http.StatusUnauthorized, "")

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestClient_Ping(t *testing.T) {
	client, recorded := newTestServer(t, http.StatusOK, `{}`)

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "/rest/v1/", recorded.path)
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "key", WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	err = client.Ping(context.Background())
	assert.Error(t, err)
}

func TestError_DecodeObjectDetails(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(jsonBody(t, map[string]any{"message": "bad", "details": map[string]any{"x": 1}})),
	}

	err := decodeError(resp)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad", apiErr.Message)
	assert.JSONEq(t, `{"x":1}`, apiErr.Details)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	r, w := io.Pipe()
	go func() {
		_ = json.NewEncoder(w).Encode(v)
		_ = w.Close()
	}()
	return r
}
