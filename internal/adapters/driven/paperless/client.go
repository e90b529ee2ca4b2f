package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PaperlessAPI = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the number of items requested per listing page.
	DefaultPageSize = 100

	// TokenType is the authorization scheme Paperless expects for API tokens.
	TokenType = "Token"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 4096
)

// Client talks to a Paperless-ngx server.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	rateLimiter *RateLimiter
	pageSize    int

	transport http.RoundTripper
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTransport sets the round tripper underneath the auth transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit overrides the proactive request rate.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.rateLimiter = NewRateLimiter(limit, burst) }
}

// WithPageSize overrides the listing page size.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a client for the server and token in cfg.
func NewClient(cfg domain.Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid server url %q", domain.ErrConfig, cfg.URL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	c := &Client{
		baseURL:     base,
		rateLimiter: NewRateLimiter(DefaultRate, DefaultBurst),
		pageSize:    DefaultPageSize,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	ctx := context.Background()
	if c.transport != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: c.transport})
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.AuthToken, TokenType: TokenType},
	)
	c.http = oauth2.NewClient(ctx, ts)
	c.http.Timeout = c.timeout

	return c, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()
	return u.String()
}

// do performs one request and decodes a 2xx JSON body into out when non-nil.
func (c *Client) do(ctx context.Context, req *http.Request, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	logger.Debug("%s %s", req.Method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckResponse(resp); err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
			URL:        req.URL.String(),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrTransport, req.URL.Path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(ctx, req, out)
}

func errorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	if msg := strings.TrimSpace(string(body)); msg != "" && len(msg) <= 200 {
		return msg
	}
	return http.StatusText(resp.StatusCode)
}

func (c *Client) pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(c.pageSize))
	return q
}

// ListCorrespondents implements driven.CorrespondentAPI.
func (c *Client) ListCorrespondents(
	ctx context.Context, q driven.CorrespondentQuery,
) (*driven.Page[domain.Correspondent], error) {
	query := c.pageQuery(q.Page)
	if q.NameContains != "" {
		query.Set("name__icontains", q.NameContains)
	}

	var resp listResponse[correspondentJSON]
	if err := c.get(ctx, "/api/correspondents/", query, &resp); err != nil {
		return nil, fmt.Errorf("list correspondents: %w", err)
	}

	next, err := nextPage(resp.Next)
	if err != nil {
		return nil, err
	}

	page := &driven.Page[domain.Correspondent]{
		Items: make([]domain.Correspondent, 0, len(resp.Results)),
		Count: resp.Count,
		Next:  next,
	}
	for _, r := range resp.Results {
		page.Items = append(page.Items, r.toDomain())
	}
	return page, nil
}

// GetCorrespondent implements driven.CorrespondentAPI.
func (c *Client) GetCorrespondent(ctx context.Context, id int) (*domain.Correspondent, error) {
	var resp correspondentJSON
	if err := c.get(ctx, fmt.Sprintf("/api/correspondents/%d/", id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get correspondent %d: %w", id, err)
	}
	corr := resp.toDomain()
	return &corr, nil
}

// DeleteCorrespondent implements driven.CorrespondentAPI.
func (c *Client) DeleteCorrespondent(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/correspondents/%d/", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(path, nil), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if err := c.do(ctx, req, nil); err != nil {
		return fmt.Errorf("delete correspondent %d: %w", id, err)
	}
	return nil
}

// ListDocuments implements driven.DocumentAPI.
func (c *Client) ListDocuments(ctx context.Context, q driven.DocumentQuery) (*driven.Page[domain.Document], error) {
	query := c.pageQuery(q.Page)
	if q.CorrespondentID != nil {
		query.Set("correspondent__id", strconv.Itoa(*q.CorrespondentID))
	}
	if q.IDsOnly {
		query.Set("fields", "id")
	}

	var resp listResponse[documentJSON]
	if err := c.get(ctx, "/api/documents/", query, &resp); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	next, err := nextPage(resp.Next)
	if err != nil {
		return nil, err
	}

	page := &driven.Page[domain.Document]{
		Items: make([]domain.Document, 0, len(resp.Results)),
		Count: resp.Count,
		Next:  next,
	}
	for _, r := range resp.Results {
		page.Items = append(page.Items, r.toDomain())
	}
	return page, nil
}

// BulkSetCorrespondent implements driven.DocumentAPI.
// An empty id list succeeds without contacting the server.
func (c *Client) BulkSetCorrespondent(ctx context.Context, documentIDs []int, correspondentID int) error {
	if len(documentIDs) == 0 {
		logger.Debug("No documents to move to correspondent %d", correspondentID)
		return nil
	}

	body, err := json.Marshal(bulkEditRequest{
		Documents:  documentIDs,
		Method:     "set_correspondent",
		Parameters: map[string]any{"correspondent": correspondentID},
	})
	if err != nil {
		return fmt.Errorf("encode bulk edit: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint("/api/documents/bulk_edit/", nil), bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(ctx, req, nil); err != nil {
		return fmt.Errorf("bulk edit: %w", err)
	}
	return nil
}

// UploadDocument implements driven.DocumentAPI.
func (c *Client) UploadDocument(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, domain.ErrFileNotFound)
		}
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	written := make(chan error, 1)
	go func() {
		err := writeForm(mw, f, filepath.Base(path))
		pw.CloseWithError(err)
		written <- err
	}()

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint("/api/documents/post_document/", nil), pr,
	)
	if err != nil {
		pr.Close()
		<-written
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var handle string
	err = c.do(ctx, req, &handle)
	// Unblocks the writer when the body was never fully read.
	pr.Close()
	writeErr := <-written
	if err != nil {
		return "", fmt.Errorf("post document: %w", err)
	}
	if writeErr != nil && !errors.Is(writeErr, io.ErrClosedPipe) {
		return "", fmt.Errorf("read %s: %w", path, writeErr)
	}
	if _, err := uuid.Parse(handle); err != nil {
		return "", fmt.Errorf("%w: unexpected task handle %q", domain.ErrTransport, handle)
	}
	return handle, nil
}

// writeForm streams the file as the "document" field of a multipart form.
func writeForm(mw *multipart.Writer, r io.Reader, name string) error {
	part, err := mw.CreateFormFile("document", name)
	if err != nil {
		return fmt.Errorf("create form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}

// GetTask implements driven.TaskAPI.
func (c *Client) GetTask(ctx context.Context, handle string) (*domain.Task, error) {
	query := url.Values{}
	query.Set("task_id", handle)

	var resp []taskJSON
	if err := c.get(ctx, "/api/tasks/", query, &resp); err != nil {
		return nil, fmt.Errorf("get task %s: %w", handle, err)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("task %s: %w", handle, domain.ErrNotFound)
	}

	task := resp[0].toDomain()
	if task.Handle == "" {
		task.Handle = handle
	}
	return &task, nil
}
