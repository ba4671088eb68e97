// internal/directus/client_test.go
package directus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonhttp "tourism-chatbot/internal/common/http"
	"tourism-chatbot/internal/common/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "test-token", commonhttp.NewClient(0), logger.NewNoOpLogger())
}

func TestFetchCollection_Success(t *testing.T) {
	var gotPath, gotAuth, gotLimit, gotSearch string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotLimit = r.URL.Query().Get("limit")
		gotSearch = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"title":"Jeita Grotto"},{"id":2,"title":"Baalbek"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	records := client.FetchCollection(context.Background(), "Items", "grotto & caves")

	assert.Equal(t, "/items/Items", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "100", gotLimit)
	assert.Equal(t, "grotto & caves", gotSearch)
	require.Len(t, records, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(records[0], &first))
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Jeita Grotto", first["title"])
}

func TestFetchCollection_EmptySearchOmitsParam(t *testing.T) {
	var hasSearch bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSearch = r.URL.Query()["search"]
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	records := client.FetchCollection(context.Background(), "Items", "")

	assert.False(t, hasSearch)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestFetchCollection_AbsorbsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "unauthorized status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"errors":[{"message":"Invalid token"}]}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data": not-json`))
			},
		},
		{
			name: "null data field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":null}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(srv.URL)
			records := client.FetchCollection(context.Background(), "Drivers", "beirut")

			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestFetchCollection_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(srv.URL)
	records := client.FetchCollection(context.Background(), "Items", "")

	assert.NotNil(t, records)
	assert.Empty(t, records)
}
