package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phil777/curiefense/internal/types"
)

// BranchLister lists the configuration branches known to the backend.
type BranchLister interface {
	ListBranches(ctx context.Context) ([]types.Branch, error)
}

// DocumentFetcher retrieves all documents of one type from a branch.
type DocumentFetcher interface {
	FetchDocuments(ctx context.Context, branch string, docType types.DocType) ([]types.RawDocument, error)
}

// Client talks to the versioned configuration backend over HTTP. It is
// read-only: the engine never writes documents back.
type Client struct {
	logger     *zap.Logger
	baseURL    string
	httpClient *http.Client
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the backend root, e.g. "http://localhost:5000/api/v3".
	BaseURL string
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
}

// NewClient creates a backend client.
func NewClient(logger *zap.Logger, opts ClientOptions) *Client {
	return &Client{
		logger:     logger.Named("fetch"),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
	}
}

// ListBranches fetches the branch listing (GET /configs/).
func (c *Client) ListBranches(ctx context.Context) ([]types.Branch, error) {
	var branches []types.Branch
	if err := c.getJSON(ctx, c.baseURL+"/configs/", &branches); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// FetchDocuments fetches every document of the given type from the branch
// (GET /configs/{branch}/d/{docType}/).
func (c *Client) FetchDocuments(ctx context.Context, branch string, docType types.DocType) ([]types.RawDocument, error) {
	url := fmt.Sprintf("%s/configs/%s/d/%s/", c.baseURL, branch, docType)
	var docs []types.RawDocument
	if err := c.getJSON(ctx, url, &docs); err != nil {
		return nil, fmt.Errorf("fetch %s for branch %s: %w", docType, branch, err)
	}
	return docs, nil
}

// getJSON performs a GET and decodes the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
