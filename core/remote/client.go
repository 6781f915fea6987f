package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/doughepi/grain/core/payload"
)

// maxErrorBody caps how much of an error response is kept in APIError.Message.
const maxErrorBody = 4096

// HTTPClient talks to the ingestion service over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	version string
	http    *http.Client
	opener  payload.Opener

	mu    sync.RWMutex
	token string
}

// NewHTTPClient creates a client for the service at cfg.BaseURL.
// Payload bytes are read through opener when files are uploaded.
func NewHTTPClient(cfg Config, opener payload.Opener) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid remote base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if opener == nil {
		return nil, fmt.Errorf("payload opener is required")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		// Ingestion responses can take a while on large uploads, so the header
		// timeout is more generous than the dial timeout.
		ResponseHeaderTimeout: 5 * timeoutDuration,
	}

	return &HTTPClient{
		baseURL: base,
		version: strings.Trim(cfg.APIVersion, "/"),
		http:    &http.Client{Transport: transport},
		opener:  opener,
	}, nil
}

// SetToken sets the bearer token sent with every request.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// IngestFiles implements Client.
func (c *HTTPClient) IngestFiles(ctx context.Context, files []File) (*Response, error) {
	return c.sendFiles(ctx, "ingest_files", files)
}

// UpdateFiles implements Client.
func (c *HTTPClient) UpdateFiles(ctx context.Context, files []File) (*Response, error) {
	return c.sendFiles(ctx, "update_files", files)
}

// DocumentsOverview implements Client.
func (c *HTTPClient) DocumentsOverview(ctx context.Context, ids []string, offset, limit int) (*OverviewPage, error) {
	query := url.Values{}
	for _, id := range ids {
		query.Add("document_ids", id)
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	endpoint := c.endpoint("documents_overview")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build documents_overview request: %w", err)
	}

	var page OverviewPage
	if err := c.do(req, "documents_overview", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Login implements Client. The returned token is kept for subsequent requests.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("login"), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var body struct {
		Results struct {
			AccessToken Token `json:"access_token"`
		} `json:"results"`
	}
	if err := c.do(req, "login", &body); err != nil {
		return nil, err
	}

	token := body.Results.AccessToken
	if token.AccessToken == "" {
		return nil, fmt.Errorf("login: response did not contain an access token")
	}
	c.SetToken(token.AccessToken)
	return &token, nil
}

// sendFiles uploads a bulk request. document_ids, metadatas and the file parts are
// all built from the same files slice, so position i refers to the same item in each.
func (c *HTTPClient) sendFiles(ctx context.Context, name string, files []File) (*Response, error) {
	if len(files) == 0 {
		return &Response{}, nil
	}

	ids := make([]string, len(files))
	metadatas := make([]any, len(files))
	for i, f := range files {
		ids[i] = f.DocumentID
		metadatas[i] = f.Metadata
		if metadatas[i] == nil {
			metadatas[i] = map[string]any{}
		}
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range files {
		if err := c.writeFilePart(ctx, w, f); err != nil {
			return nil, err
		}
	}

	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document ids: %w", err)
	}
	metadatasJSON, err := json.Marshal(metadatas)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadatas: %w", err)
	}
	if err := w.WriteField("document_ids", string(idsJSON)); err != nil {
		return nil, fmt.Errorf("failed to write document ids: %w", err)
	}
	if err := w.WriteField("metadatas", string(metadatasJSON)); err != nil {
		return nil, fmt.Errorf("failed to write metadatas: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(name), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp Response
	if err := c.do(req, name, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) writeFilePart(ctx context.Context, w *multipart.Writer, f File) error {
	rc, err := c.opener.Open(ctx, f.Location)
	if err != nil {
		return fmt.Errorf("failed to open payload for %s: %w", f.DocumentID, err)
	}
	defer rc.Close()

	part, err := w.CreateFormFile("files", fileName(f.Location))
	if err != nil {
		return fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("failed to read payload %s: %w", f.Location, err)
	}
	return nil
}

func (c *HTTPClient) do(req *http.Request, name string, out any) error {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   name,
			Message:    strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode %s response: %w", name, err)
	}
	return nil
}

func (c *HTTPClient) endpoint(name string) string {
	u := *c.baseURL
	if c.version != "" {
		u.Path = u.Path + "/" + c.version + "/" + name
	} else {
		u.Path = u.Path + "/" + name
	}
	return u.String()
}

// fileName returns the upload name of a location, for both paths and object keys.
func fileName(location string) string {
	if i := strings.LastIndex(location, "/"); i >= 0 {
		return location[i+1:]
	}
	return filepath.Base(location)
}
