package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tcreview/internal/debug"
	"tcreview/internal/domain"
	appErrors "tcreview/internal/errors"
)

// DefaultUserAgent identifies the client to the server.
const DefaultUserAgent = "tcreview"

// DefaultCaseCount is the number of test cases requested per upload when the
// caller does not choose.
const DefaultCaseCount = 100

// HTTPClient implements Client against a running review server.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded, which is
// the default: a hung request keeps the loader up until the server answers.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewHTTPClient builds a client for the server rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "server url is required", nil)
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("invalid server url: %q", baseURL), err)
	}
	c := &HTTPClient{
		baseURL:    u,
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server root the client targets.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

func (c *HTTPClient) Batch(ctx context.Context, batchID int) (BatchDetail, error) {
	var detail BatchDetail
	path := fmt.Sprintf("/api/testcase/batch/%d", batchID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "", &detail); err != nil {
		return BatchDetail{}, err
	}
	if detail.TestCases == nil {
		detail.TestCases = []domain.TestCase{}
	}
	return detail, nil
}

func (c *HTTPClient) Batches(ctx context.Context) ([]domain.BatchSummary, error) {
	var batches []domain.BatchSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/testcase/batches", nil, "", &batches); err != nil {
		return nil, err
	}
	if batches == nil {
		batches = []domain.BatchSummary{}
	}
	return batches, nil
}

func (c *HTTPClient) DeleteBatch(ctx context.Context, batchID int) error {
	path := fmt.Sprintf("/api/testcase/batch/%d", batchID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *HTTPClient) Review(ctx context.Context, testCaseID int, action domain.Action) (domain.TestCase, error) {
	if _, err := domain.ParseAction(string(action)); err != nil {
		return domain.TestCase{}, err
	}
	var resp reviewResponse
	path := fmt.Sprintf("/api/testcase/%d/%s", testCaseID, action)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, "", &resp); err != nil {
		return domain.TestCase{}, err
	}
	return resp.TestCase, nil
}

func (c *HTTPClient) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if len(req.Files) == 0 {
		return UploadResult{}, appErrors.New(appErrors.CodeInvalidArgument, "no files selected", nil)
	}
	for _, f := range req.Files {
		if !domain.UploadableDocument(f) {
			return UploadResult{}, appErrors.New(appErrors.CodeInvalidArgument,
				fmt.Sprintf("unsupported file type: %s (only PDF, DOCX and MD)", filepath.Base(f)), nil)
		}
	}
	count := req.CaseCount
	if count <= 0 {
		count = DefaultCaseCount
	}
	fields := map[string]string{
		"batch_name":        req.Name,
		"batch_description": req.Description,
		"case_count":        strconv.Itoa(count),
	}
	body, contentType, err := multipartBody("file", req.Files, fields)
	if err != nil {
		return UploadResult{}, err
	}
	var result UploadResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/testcase/upload", body, contentType, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) Export(ctx context.Context, batchID int, status domain.Status, dst io.Writer) (string, error) {
	path := fmt.Sprintf("/api/testcase/batch/%d/export", batchID)
	if status != domain.StatusUnknown {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	resp, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", statusError(http.MethodGet, path, resp.StatusCode, body)
	}
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return "", transportError(http.MethodGet, path, err)
	}
	return exportFilename(resp.Header.Get("Content-Disposition"), batchID, status), nil
}

func (c *HTTPClient) KnowledgeFiles(ctx context.Context) ([]domain.KnowledgeFile, error) {
	var resp knowledgeListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/knowledge/files", nil, "", &resp); err != nil {
		return nil, err
	}
	files := make([]domain.KnowledgeFile, 0, len(resp.Data))
	for _, doc := range resp.Data {
		files = append(files, doc.toDomain())
	}
	return files, nil
}

func (c *HTTPClient) UploadKnowledge(ctx context.Context, path string) (KnowledgeUpload, error) {
	if strings.TrimSpace(path) == "" {
		return KnowledgeUpload{}, appErrors.New(appErrors.CodeInvalidArgument, "no file selected", nil)
	}
	body, contentType, err := multipartBody("file", []string{path}, nil)
	if err != nil {
		return KnowledgeUpload{}, err
	}
	var result KnowledgeUpload
	if err := c.doJSON(ctx, http.MethodPost, "/api/knowledge/upload", body, contentType, &result); err != nil {
		return KnowledgeUpload{}, err
	}
	return result, nil
}

func (c *HTTPClient) DeleteKnowledge(ctx context.Context, fileID string) error {
	path := "/api/knowledge/delete/" + url.PathEscape(fileID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *HTTPClient) IndexingStatus(ctx context.Context, uploadBatch string) ([]IndexingProgress, error) {
	var resp indexingStatusResponse
	path := "/api/knowledge/status/" + url.PathEscape(uploadBatch)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []IndexingProgress{}
	}
	return resp.Data, nil
}

// do sends a request and returns the raw response. Failures to reach the
// server are tagged as transport errors; status handling is left to callers.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("invalid request path %q", path), err)
	}
	target := *c.baseURL
	target.Path = strings.TrimRight(c.baseURL.Path, "/") + ref.Path
	target.RawPath = ""
	if ref.RawPath != "" {
		target.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + ref.RawPath
	}
	target.RawQuery = ref.RawQuery

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, transportError(method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		debug.Error().Str("method", method).Str("path", path).Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return nil, transportError(method, path, err)
	}
	debug.Info().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("request finished")
	return resp, nil
}

// doJSON performs a request and decodes the JSON response into out (which may
// be nil). Non-2xx statuses and 2xx bodies carrying an "error" field are both
// reported as errors.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, path, resp.StatusCode, data)
	}
	if msg := serverMessage(data); msg != "" {
		return applicationError(method, path, msg)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return parseError(method, path, data, err)
	}
	return nil
}

func multipartBody(field string, paths []string, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range paths {
		if err := attachFile(w, field, p); err != nil {
			return nil, "", err
		}
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func attachFile(w *multipart.Writer, field, path string) error {
	//nolint:gosec // G304: uploading a user-chosen file is the point
	f, err := os.Open(path)
	if err != nil {
		return appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("cannot read %s", path), err)
	}
	defer func() { _ = f.Close() }()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s: %w", path, err)
	}
	return nil
}

// exportFilename prefers the server-suggested attachment name.
func exportFilename(disposition string, batchID int, status domain.Status) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := filepath.Base(params["filename"]); name != "" && name != "." && name != "/" {
				return name
			}
		}
	}
	label := "all"
	if status != domain.StatusUnknown {
		label = string(status)
	}
	return fmt.Sprintf("batch_%d_%s.xlsx", batchID, label)
}
