package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/debresearch/licensetrend/internal/model"
)

// Service paths and defaults.
const (
	// DefaultSnapshotBaseURL serves the package universe.
	DefaultSnapshotBaseURL = "http://snapshot.debian.org"

	// DefaultMetadataBaseURL serves per-package copyright documents.
	DefaultMetadataBaseURL = "http://metadata.ftp-master.debian.org"

	// packageListPath is the snapshot service path listing every source
	// package ever archived.
	packageListPath = "mr/package/"

	// copyrightPrefix is the metadata service path prefix for copyright
	// documents of packages in the main archive area.
	copyrightPrefix = "changelogs/main/"
)

// ResponseCache memoizes fetched documents keyed by request path.
// *database.ResponseCache implements it; tests substitute an in-memory
// fake.
type ResponseCache interface {
	// Get returns the cached document for a path, or nil on a miss.
	Get(ctx context.Context, path string) (*model.Document, error)

	// Put stores a document for a path, replacing any previous entry.
	Put(ctx context.Context, path string, doc model.Document) error
}

// Client fetches package metadata from the snapshot and metadata
// services, with write-through response caching and pacing of live
// requests. A failed or non-2xx response is a permanent "not found" for
// the life of the cache entry: there are no retries.
type Client struct {
	// httpClient performs the actual requests.
	httpClient *http.Client

	// snapshotBaseURL and metadataBaseURL locate the two services.
	snapshotBaseURL string
	metadataBaseURL string

	// cache memoizes responses. Never nil; defaults to a no-op cache.
	cache ResponseCache

	// pacer throttles live fetches. Cached hits bypass it.
	pacer *Pacer

	// logger receives fetch diagnostics.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
// Tests use this to point the Client at an httptest server transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSnapshotBaseURL overrides the snapshot service base URL.
func WithSnapshotBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.snapshotBaseURL = u
	}
}

// WithMetadataBaseURL overrides the metadata service base URL.
func WithMetadataBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.metadataBaseURL = u
	}
}

// WithCache sets the response cache.
func WithCache(cache ResponseCache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithPacer sets the live-fetch pacer.
func WithPacer(p *Pacer) ClientOption {
	return func(c *Client) {
		c.pacer = p
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:      &http.Client{Timeout: 60 * time.Second},
		snapshotBaseURL: DefaultSnapshotBaseURL,
		metadataBaseURL: DefaultMetadataBaseURL,
		cache:           nullCache{},
		pacer:           NewPacer(0),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// packageListResponse is the snapshot service's JSON envelope.
type packageListResponse struct {
	Result []struct {
		Package string `json:"package"`
	} `json:"result"`
}

// PackageList fetches the universe of package names: the snapshot
// service's full list, de-duplicated and sorted. The raw response is
// cached under its request path like any other fetch.
func (c *Client) PackageList(ctx context.Context) ([]string, error) {
	doc, err := c.fetch(ctx, packageListPath, c.snapshotBaseURL+"/"+packageListPath)
	if err != nil {
		return nil, err
	}
	if !doc.Found {
		return nil, fmt.Errorf("package list unavailable from %s", c.snapshotBaseURL)
	}

	var resp packageListResponse
	if err := json.Unmarshal([]byte(doc.Body), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode package list: %w", err)
	}

	seen := make(map[string]struct{}, len(resp.Result))
	names := make([]string, 0, len(resp.Result))
	for _, r := range resp.Result {
		if r.Package == "" {
			continue
		}
		if _, dup := seen[r.Package]; dup {
			continue
		}
		seen[r.Package] = struct{}{}
		names = append(names, r.Package)
	}
	sort.Strings(names)
	return names, nil
}

// Copyright fetches one copyright document by its archive path, e.g.
// "b/bash/stable_copyright". Found=false means the package does not
// exist in that channel.
func (c *Client) Copyright(ctx context.Context, path string) (model.Document, error) {
	doc, err := c.fetch(ctx, path, c.metadataBaseURL+"/"+copyrightPrefix+path)
	if err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

// fetch returns the document for a request path, from cache when
// possible. Live fetches are paced; their outcome, found or not, is
// written through to the cache.
func (c *Client) fetch(ctx context.Context, key, url string) (model.Document, error) {
	cached, err := c.cache.Get(ctx, key)
	if err != nil {
		return model.Document{}, fmt.Errorf("cache lookup for %s: %w", key, err)
	}
	if cached != nil {
		c.logger.Debug("cache hit", "path", key, "found", cached.Found)
		return *cached, nil
	}

	if err := c.pacer.Pace(ctx); err != nil {
		return model.Document{}, err
	}

	c.logger.Info("fetching", "url", url)
	doc, err := c.get(ctx, url)
	if err != nil {
		return model.Document{}, err
	}

	if err := c.cache.Put(ctx, key, doc); err != nil {
		return model.Document{}, fmt.Errorf("cache store for %s: %w", key, err)
	}
	return doc, nil
}

// get performs one HTTP GET. Any non-2xx status, including 404, maps to
// Found=false rather than an error.
func (c *Client) get(ctx context.Context, url string) (model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("document absent", "url", url, "status", resp.StatusCode)
		return model.Document{Found: false}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return model.Document{Found: true, Body: string(body)}, nil
}

// nullCache is the default no-op ResponseCache: every Get is a miss and
// Put discards the document.
type nullCache struct{}

func (nullCache) Get(context.Context, string) (*model.Document, error) { return nil, nil }
func (nullCache) Put(context.Context, string, model.Document) error    { return nil }
