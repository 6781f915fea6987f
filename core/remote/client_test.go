package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/doughepi/grain/core/payload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*HTTPClient, *payload.FileStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := payload.NewFileStore(t.TempDir())
	client, err := NewHTTPClient(Config{BaseURL: srv.URL + "/", APIVersion: "v2", TimeoutSeconds: 5}, store)
	require.NoError(t, err)
	return client, store
}

func TestNewHTTPClient_Validation(t *testing.T) {
	store := payload.NewFileStore(t.TempDir())

	_, err := NewHTTPClient(Config{BaseURL: "localhost:8000"}, store)
	assert.Error(t, err)

	_, err = NewHTTPClient(Config{BaseURL: "http://localhost:8000"}, nil)
	assert.Error(t, err)

	client, err := NewHTTPClient(Config{BaseURL: "http://localhost:8000/", APIVersion: "/v2/"}, store)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/v2/ingest_files", client.endpoint("ingest_files"))
}

func TestHTTPClient_IngestFilesAlignsParts(t *testing.T) {
	type received struct {
		ids       []string
		metadatas []map[string]any
		files     []string
		contents  []string
	}
	var got received

	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/ingest_files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.NoError(t, json.Unmarshal([]byte(r.FormValue("document_ids")), &got.ids))
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("metadatas")), &got.metadatas))
		for _, fh := range r.MultipartForm.File["files"] {
			got.files = append(got.files, fh.Filename)
			f, err := fh.Open()
			require.NoError(t, err)
			data, _ := io.ReadAll(f)
			f.Close()
			got.contents = append(got.contents, string(data))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"message":"ok"}]}`))
	})

	ctx := context.Background()
	a := store.Location("a.json")
	b := store.Location("b.html")
	require.NoError(t, store.Write(ctx, a, []byte(`{"a":1}`)))
	require.NoError(t, store.Write(ctx, b, []byte("<p>b</p>")))

	resp, err := client.IngestFiles(ctx, []File{
		{DocumentID: "id-a", Location: a, Metadata: map[string]any{"source": "messages"}},
		{DocumentID: "id-b", Location: b},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"message":"ok"}]`, string(resp.Results))

	assert.Equal(t, []string{"id-a", "id-b"}, got.ids)
	require.Len(t, got.metadatas, 2)
	assert.Equal(t, "messages", got.metadatas[0]["source"])
	assert.Empty(t, got.metadatas[1])
	assert.Equal(t, []string{"a.json", "b.html"}, got.files)
	assert.Equal(t, []string{`{"a":1}`, "<p>b</p>"}, got.contents)
}

func TestHTTPClient_UpdateFilesEndpoint(t *testing.T) {
	var path string
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"results":{}}`))
	})

	loc := store.Location("x.txt")
	require.NoError(t, store.Write(context.Background(), loc, []byte("x")))

	_, err := client.UpdateFiles(context.Background(), []File{{DocumentID: "x", Location: loc}})
	require.NoError(t, err)
	assert.Equal(t, "/v2/update_files", path)
}

func TestHTTPClient_EmptyBatchMakesNoRequest(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.IngestFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestHTTPClient_MissingPayload(t *testing.T) {
	called := false
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.IngestFiles(context.Background(), []File{
		{DocumentID: "gone", Location: filepath.Join(store.Dir(), "missing.txt")},
	})
	assert.ErrorContains(t, err, "gone")
	assert.False(t, called)
}

func TestHTTPClient_APIError(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	loc := store.Location("x.txt")
	require.NoError(t, store.Write(context.Background(), loc, []byte("x")))

	_, err := client.IngestFiles(context.Background(), []File{{DocumentID: "x", Location: loc}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "ingest_files", apiErr.Endpoint)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestHTTPClient_DocumentsOverview(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/documents_overview", r.URL.Path)
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["document_ids"])
		assert.Equal(t, "100", r.URL.Query().Get("offset"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"results":[
			{"id":"a","ingestion_status":"success"},
			{"document_id":"b","status":"processing"}
		],"total_entries":2}`))
	})

	page, err := client.DocumentsOverview(context.Background(), []string{"a", "b"}, 100, 50)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "a", page.Results[0].Key())
	assert.Equal(t, "success", page.Results[0].StatusValue())
	assert.Equal(t, "b", page.Results[1].Key())
	assert.Equal(t, "processing", page.Results[1].StatusValue())
	assert.Equal(t, 2, page.TotalEntries)
}

func TestHTTPClient_LoginSetsBearerToken(t *testing.T) {
	var authHeader string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/login":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "me@example.com", r.PostForm.Get("username"))
			assert.Equal(t, "hunter2", r.PostForm.Get("password"))
			_, _ = w.Write([]byte(`{"results":{"access_token":{"token":"tok-1","token_type":"access"}}}`))
		case "/v2/documents_overview":
			authHeader = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"results":[]}`))
		}
	})

	token, err := client.Login(context.Background(), "me@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.AccessToken)

	_, err = client.DocumentsOverview(context.Background(), nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", authHeader)
}

func TestHTTPClient_LoginWithoutToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":{}}`))
	})

	_, err := client.Login(context.Background(), "a", "b")
	assert.Error(t, err)
}
