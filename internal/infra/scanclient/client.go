package scanclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

// Client is the HTTP implementation of the platform client port.
// Credentials are injected at construction; nothing leaks through process
// environment.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	org     string
}

func New(serverURL, token, org string) *Client {
	return &Client{
		// no global timeout: RunScan with wait blocks for up to the
		// configured scan timeout, per-call contexts bound everything
		http:    &http.Client{},
		baseURL: strings.TrimSuffix(strings.TrimSpace(serverURL), "/"),
		token:   token,
		org:     org,
	}
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var ae apiError
		if json.Unmarshal(data, &ae) == nil {
			if msg := firstOf(ae.Error, ae.Message); msg != "" {
				return fmt.Errorf("%s %s: %s (status %d)", method, path, msg, resp.StatusCode)
			}
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ValidateAuth checks the token against the platform.
func (c *Client) ValidateAuth(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v1/auth/validate", nil, nil)
}

type importResponse struct {
	Repository    domain.Repository `json:"repository"`
	AlreadyExists bool              `json:"already_exists"`
}

// ImportRepository is idempotent on the platform side: an existing repo in
// the org comes back unchanged, a new one is registered on the fly.
func (c *Client) ImportRepository(ctx context.Context, req domain.ImportRequest) (*domain.Repository, bool, error) {
	scanTypes := req.ScanTypes
	if scanTypes == nil {
		scanTypes = []string{}
	}
	body := map[string]any{
		"url":            req.URL,
		"name":           req.Name,
		"branch":         req.Branch,
		"provider":       req.Provider,
		"auto_scan":      req.AutoScan,
		"scan_types":     scanTypes,
		"is_private":     req.IsPrivate,
		"skip_if_exists": req.SkipIfExists,
	}
	var out importResponse
	path := fmt.Sprintf("/api/v1/orgs/%s/repositories/import", c.org)
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, false, err
	}
	return &out.Repository, out.AlreadyExists, nil
}

type scanResponse struct {
	Scan struct {
		ID            string                 `json:"id"`
		Status        string                 `json:"status"`
		DurationMS    int64                  `json:"duration_ms"`
		Summary       *domain.SeverityCounts `json:"summary"`
		SecurityScore *float64               `json:"security_score"`
	} `json:"scan"`
}

// RunScan triggers a scan. With Wait set the request blocks until the scan
// completes server-side or the timeout elapses; the platform owns the poll
// cadence using the supplied interval.
func (c *Client) RunScan(ctx context.Context, req domain.ScanRequest) (*domain.Scan, error) {
	scanTypes := req.ScanTypes
	if scanTypes == nil {
		scanTypes = []string{}
	}
	body := map[string]any{
		"repository_id": req.RepositoryID,
		"branch":        req.Branch,
		"scan_types":    scanTypes,
		"wait":          req.Wait,
		"timeout":       req.TimeoutSec,
		"poll_interval": req.PollIntervalSec,
		"trigger":       req.Trigger,
		"commit_sha":    req.CommitSHA,
		"metadata":      req.Metadata,
	}

	// beri grace di atas timeout scan supaya deadline remote yang menang
	callCtx := ctx
	if req.Wait {
		var cancel context.CancelFunc
		grace := time.Duration(req.TimeoutSec)*time.Second + 2*time.Duration(req.PollIntervalSec)*time.Second
		callCtx, cancel = context.WithTimeout(ctx, grace)
		defer cancel()
	}

	var out scanResponse
	path := fmt.Sprintf("/api/v1/orgs/%s/scans", c.org)
	if err := c.do(callCtx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &domain.Scan{
		ID:            domain.ScanID(out.Scan.ID),
		Completed:     out.Scan.Status == "completed",
		DurationMS:    out.Scan.DurationMS,
		Summary:       out.Scan.Summary,
		SecurityScore: out.Scan.SecurityScore,
	}, nil
}

type detailsResponse struct {
	ViolationTypes map[string]int `json:"violation_types"`
}

// ScanDetails fetches the per-violation-type breakdown.
func (c *Client) ScanDetails(ctx context.Context, id domain.ScanID) (map[string]int, error) {
	var out detailsResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/scans/%s/details", id), nil, &out); err != nil {
		return nil, err
	}
	return out.ViolationTypes, nil
}

// ExportScanResults returns the findings document verbatim as the platform
// serialized it.
func (c *Client) ExportScanResults(ctx context.Context, req domain.ExportRequest) ([]byte, error) {
	path := fmt.Sprintf("/api/v1/scans/%s/export?format=%s&include_metadata=%t&include_fixed=%t&include_suppressed=%t",
		req.ScanID, req.Format, req.IncludeMetadata, req.IncludeFixed, req.IncludeSuppressed)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("export scan %s: status %d", req.ScanID, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
