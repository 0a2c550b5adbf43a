package codescanning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

// toolName is fixed so repeated uploads land on the same code-scanning tool
// entry instead of fanning out per run.
const toolName = "scanbridge"

// disabledMarker is the upstream substring that identifies the one failure
// mode users can actually fix themselves.
const disabledMarker = "code scanning is not enabled"

// Publisher pushes exported SARIF to the code-scanning ingestion endpoint of
// the repository the workflow runs in.
type Publisher struct {
	http    *http.Client
	apiBase string
	token   string

	owner  string
	repo   string
	commit string
	ref    string
}

func NewPublisher(apiBase, token, owner, repo, commit, ref string) *Publisher {
	return &Publisher{
		http:    &http.Client{},
		apiBase: strings.TrimSuffix(apiBase, "/"),
		token:   token,
		owner:   owner,
		repo:    repo,
		commit:  commit,
		ref:     ref,
	}
}

type uploadResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Upload validates the local SARIF file and submits it. The "feature
// disabled" upstream error becomes an actionable configuration error; every
// other failure wraps generically.
func (p *Publisher) Upload(ctx context.Context, path string) (*domain.UploadReceipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sarif file %s: %w", path, err)
	}
	warnings, err := ValidateSARIF(data)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w)
	}

	body, err := json.Marshal(map[string]string{
		"commit_sha": p.commit,
		"ref":        p.ref,
		"sarif":      base64.StdEncoding.EncodeToString(data),
		"tool_name":  toolName,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/code-scanning/sarifs", p.apiBase, p.owner, p.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sarif upload: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(raw, resp.StatusCode)
		if strings.Contains(strings.ToLower(msg), disabledMarker) {
			return nil, fmt.Errorf("%w: code scanning is not enabled for %s/%s; enable it under Settings > Code security, or set upload-sarif to false",
				domain.ErrConfiguration, p.owner, p.repo)
		}
		return nil, fmt.Errorf("sarif upload failed: %s", msg)
	}

	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("sarif upload: decode response: %w", err)
	}
	receipt := &domain.UploadReceipt{ID: out.ID, URL: out.URL}
	if receipt.URL == "" {
		receipt.URL = fmt.Sprintf("https://github.com/%s/%s/security/code-scanning", p.owner, p.repo)
	}
	return receipt, nil
}

// Probe infers whether code scanning is enabled by attempting a lightweight
// listing call. Fail-open: only the distinguished "disabled" error counts as
// disabled, any other failure is indistinguishable from an enabled repo with
// no prior findings.
func (p *Publisher) Probe(ctx context.Context) bool {
	url := fmt.Sprintf("%s/repos/%s/%s/code-scanning/analyses?per_page=1", p.apiBase, p.owner, p.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return true
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.http.Do(req)
	if err != nil {
		return true
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return true
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	return !strings.Contains(strings.ToLower(upstreamMessage(raw, resp.StatusCode)), disabledMarker)
}

func upstreamMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("status %d", status)
}
