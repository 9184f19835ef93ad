// Package api implements the typed REST client for the sample
// management backend, plus the WebSocket import-task watcher.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/tessellate-ai/samplerev/internal/model"
	"github.com/tessellate-ai/samplerev/internal/sampling"
)

const (
	defaultPageSize    = 200
	defaultCacheTTL    = 30 * time.Second
	defaultRateLimit   = 20 // requests per second
	defaultRateBurst   = 40
	defaultHTTPTimeout = 30 * time.Second
)

// Client talks to the backend REST API. Safe for concurrent use.
type Client struct {
	base     *url.URL
	httpc    *http.Client
	token    string
	limiter  *rate.Limiter
	cache    *gocache.Cache
	pageSize int
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithPageSize overrides the listing page size.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q in base URL", u.Scheme)
	}
	c := &Client{
		base:     u,
		httpc:    &http.Client{Timeout: defaultHTTPTimeout},
		limiter:  rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		cache:    gocache.New(defaultCacheTTL, time.Minute),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do performs one request. body (if non-nil) is JSON encoded; out (if
// non-nil) receives the decoded JSON response. Returns the HTTP status
// and an error carrying the backend's detail message for non-2xx.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, fmt.Errorf("%s", readDetail(resp.Body))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// readDetail extracts the backend's error detail, falling back to the
// raw body.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no error detail"
	}
	var e apiError
	if json.Unmarshal(raw, &e) == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(raw))
}

// mutate wraps a non-2xx outcome into a RemoteMutationError.
func (c *Client) mutate(ctx context.Context, op, itemID, method, path string, body, out any) error {
	status, err := c.do(ctx, method, path, nil, body, out)
	if err != nil {
		if status == 0 {
			return fmt.Errorf("%s %s: %w", op, itemID, err)
		}
		return &RemoteMutationError{Op: op, ItemID: itemID, StatusCode: status, Message: err.Error()}
	}
	return nil
}

// --- Health ---

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
	return err
}

// --- Datasets ---

// ListDatasets returns all datasets visible to the caller.
func (c *Client) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	var resp DatasetsResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/datasets/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	return resp.Data, nil
}

// GetDataset fetches one dataset. Results are cached briefly.
func (c *Client) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	key := "dataset:" + id
	if v, ok := c.cache.Get(key); ok {
		ds := v.(model.Dataset)
		return &ds, nil
	}
	var ds model.Dataset
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/datasets/"+id, nil, nil, &ds); err != nil {
		return nil, fmt.Errorf("fetching dataset %s: %w", id, err)
	}
	c.cache.SetDefault(key, ds)
	return &ds, nil
}

// CreateDataset creates an empty dataset.
func (c *Client) CreateDataset(ctx context.Context, name, description string) (*model.Dataset, error) {
	var ds model.Dataset
	err := c.mutate(ctx, "create dataset", name, http.MethodPost, "/api/v1/datasets/",
		createDatasetRequest{Name: name, Description: description}, &ds)
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// ListDatasetSampleIDs pages through a dataset's samples and returns
// the full ordered ID list. The backend's listing order is the review
// navigation order.
func (c *Client) ListDatasetSampleIDs(ctx context.Context, datasetID string) ([]string, error) {
	var ids []string
	for skip := 0; ; skip += c.pageSize {
		q := url.Values{}
		q.Set("skip", strconv.Itoa(skip))
		q.Set("limit", strconv.Itoa(c.pageSize))

		var page SampleListResponse
		if _, err := c.do(ctx, http.MethodGet, "/api/v1/datasets/"+datasetID+"/samples", q, nil, &page); err != nil {
			return nil, fmt.Errorf("listing samples of dataset %s: %w", datasetID, err)
		}
		for _, s := range page.Data {
			ids = append(ids, s.ID)
		}
		if len(page.Data) == 0 || len(ids) >= page.Count {
			break
		}
	}
	return ids, nil
}

// --- MinIO instances ---

// ListInstances returns the registered MinIO instances. The import
// and watch commands need an instance id; this is how operators find
// it.
func (c *Client) ListInstances(ctx context.Context) ([]model.MinIOInstance, error) {
	var resp InstancesResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/minio-instances/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing minio instances: %w", err)
	}
	return resp.Data, nil
}

// --- Samples ---

// SampleListOptions filters a sample listing.
type SampleListOptions struct {
	Status model.SampleStatus
	Bucket string
	Search string
	Skip   int
	Limit  int
}

// ListSamples returns one page of samples matching the options.
func (c *Client) ListSamples(ctx context.Context, opts SampleListOptions) (*SampleListResponse, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", string(opts.Status))
	}
	if opts.Bucket != "" {
		q.Set("bucket", opts.Bucket)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	q.Set("skip", strconv.Itoa(opts.Skip))
	limit := opts.Limit
	if limit <= 0 {
		limit = c.pageSize
	}
	q.Set("limit", strconv.Itoa(limit))

	var resp SampleListResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/samples/", q, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing samples: %w", err)
	}
	return &resp, nil
}

// GetSample fetches one sample with tags and annotation expanded.
// Results are cached briefly and invalidated by mutations on the same
// sample.
func (c *Client) GetSample(ctx context.Context, id string) (*model.Sample, error) {
	key := "sample:" + id
	if v, ok := c.cache.Get(key); ok {
		s := v.(model.Sample)
		return &s, nil
	}
	var s model.Sample
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/samples/"+id, nil, nil, &s); err != nil {
		return nil, fmt.Errorf("fetching sample %s: %w", id, err)
	}
	c.cache.SetDefault(key, s)
	return &s, nil
}

// ReviewSample stores a kept/skipped verdict for a sample.
func (c *Client) ReviewSample(ctx context.Context, id string, verdict model.ReviewVerdict) error {
	c.cache.Delete("sample:" + id)
	return c.mutate(ctx, "review", id, http.MethodPost, "/api/v1/samples/"+id+"/review",
		reviewRequest{Decision: verdict}, nil)
}

// ClearReview removes a stored verdict (the compensating call for an
// undone keep or skip).
func (c *Client) ClearReview(ctx context.Context, id string) error {
	c.cache.Delete("sample:" + id)
	return c.mutate(ctx, "clear review", id, http.MethodDelete, "/api/v1/samples/"+id+"/review", nil, nil)
}

// DeleteSample soft-deletes a sample.
func (c *Client) DeleteSample(ctx context.Context, id string) error {
	c.cache.Delete("sample:" + id)
	return c.mutate(ctx, "delete", id, http.MethodDelete, "/api/v1/samples/"+id, nil, nil)
}

// RestoreSample reverses a soft delete.
func (c *Client) RestoreSample(ctx context.Context, id string) error {
	c.cache.Delete("sample:" + id)
	return c.mutate(ctx, "restore", id, http.MethodPost, "/api/v1/samples/"+id+"/restore", nil, nil)
}

// --- Build pipeline ---

// FilterPreview reports how many samples match the filter; with
// includeCandidates it also returns the matches with class counts so
// the sampling preview can run locally.
func (c *Client) FilterPreview(ctx context.Context, filters sampling.FilterParams, includeCandidates bool) (*FilterPreviewResponse, error) {
	var resp FilterPreviewResponse
	req := FilterPreviewRequest{Filters: filters, IncludeCandidates: includeCandidates}
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/datasets/filter-preview", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("filter preview: %w", err)
	}
	return &resp, nil
}

// ClassStats aggregates per-class counts for a filter. Cached briefly
// keyed by the filter itself; build wizards call this repeatedly while
// the user tweaks targets.
func (c *Client) ClassStats(ctx context.Context, filters sampling.FilterParams) (*ClassStatsResponse, error) {
	raw, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("encoding filter: %w", err)
	}
	key := "class-stats:" + string(raw)
	if v, ok := c.cache.Get(key); ok {
		stats := v.(ClassStatsResponse)
		return &stats, nil
	}

	var resp ClassStatsResponse
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/datasets/filter-class-stats", nil,
		FilterPreviewRequest{Filters: filters}, &resp); err != nil {
		return nil, fmt.Errorf("class stats: %w", err)
	}
	c.cache.SetDefault(key, resp)
	return &resp, nil
}

// BuildDataset creates a dataset from a filter and sampling config.
func (c *Client) BuildDataset(ctx context.Context, req BuildRequest) (*BuildResponse, error) {
	var resp BuildResponse
	if err := c.mutate(ctx, "build dataset", req.Name, http.MethodPost, "/api/v1/datasets/build", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddSamples adds filtered, sampled samples to an existing dataset.
func (c *Client) AddSamples(ctx context.Context, datasetID string, req AddSamplesRequest) (*BuildResponse, error) {
	c.cache.Delete("dataset:" + datasetID)
	var resp BuildResponse
	if err := c.mutate(ctx, "add samples", datasetID, http.MethodPost,
		"/api/v1/datasets/"+datasetID+"/add-samples", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- CSV import ---

// ImportPreview uploads a CSV for server-side preview.
func (c *Client) ImportPreview(ctx context.Context, filename string, csvData []byte) (*CSVPreview, error) {
	var resp CSVPreview
	if err := c.upload(ctx, "/api/v1/samples/import/preview", filename, csvData, nil, &resp); err != nil {
		return nil, fmt.Errorf("import preview: %w", err)
	}
	return &resp, nil
}

// StartImport submits a CSV for asynchronous import.
func (c *Client) StartImport(ctx context.Context, filename string, csvData []byte, instanceID, bucket string) (*model.ImportTask, error) {
	fields := map[string]string{"minio_instance_id": instanceID}
	if bucket != "" {
		fields["bucket"] = bucket
	}
	var task model.ImportTask
	if err := c.upload(ctx, "/api/v1/samples/import", filename, csvData, fields, &task); err != nil {
		return nil, fmt.Errorf("starting import: %w", err)
	}
	return &task, nil
}

// GetImportTask fetches the state of an import task.
func (c *Client) GetImportTask(ctx context.Context, id string) (*model.ImportTask, error) {
	var task model.ImportTask
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/samples/import/"+id, nil, nil, &task); err != nil {
		return nil, fmt.Errorf("fetching import task %s: %w", id, err)
	}
	return &task, nil
}

// upload sends a multipart form with one CSV file part plus extra
// fields.
func (c *Client) upload(ctx context.Context, path, filename string, data []byte, fields map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.setAuth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteMutationError{Op: "upload", ItemID: filename, StatusCode: resp.StatusCode, Message: readDetail(resp.Body)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
