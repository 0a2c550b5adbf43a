package ghactions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/widget")
	t.Setenv("GITHUB_REF", "refs/heads/main")
	t.Setenv("GITHUB_SHA", "abc123")
	t.Setenv("GITHUB_ACTOR", "octocat")
	t.Setenv("GITHUB_WORKFLOW", "ci")
	t.Setenv("GITHUB_RUN_ID", "99")
	t.Setenv("GITHUB_EVENT_NAME", "push")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("GITHUB_SERVER_URL", "")

	ctx := FromEnv()
	assert.Equal(t, "acme", ctx.Owner)
	assert.Equal(t, "widget", ctx.Repo)
	assert.Equal(t, "refs/heads/main", ctx.Ref)
	assert.Equal(t, "abc123", ctx.CommitSHA)
	assert.Equal(t, "octocat", ctx.Actor)
	assert.Equal(t, "99", ctx.RunID)
	assert.Equal(t, "push", ctx.EventName)
	// API base falls back to the public endpoint
	assert.Equal(t, "https://api.github.com", ctx.APIBase)
}

func TestFromEnv_OutsideRunner(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "")
	ctx := FromEnv()
	assert.Empty(t, ctx.Owner)
	assert.Empty(t, ctx.Repo)
}

func TestEmit(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_OUTPUT", outPath)

	score := 82.5
	e := NewEmitter(false)
	err := e.Emit(&domain.Outputs{
		ScanID:        "scan-1",
		RepositoryID:  "repo-1",
		ResultsFile:   "scan-results.sarif",
		Counts:        domain.SeverityCounts{Critical: 0, High: 1, Medium: 2, Low: 2, Total: 5},
		SecurityScore: &score,
		DurationMS:    61000,
		DashboardURL:  "https://app.scanplatform.io/orgs/acme/scans/scan-1",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "scan-id=scan-1\n")
	assert.Contains(t, content, "repository-id=repo-1\n")
	assert.Contains(t, content, "violation-count=5\n")
	assert.Contains(t, content, "critical-count=0\n")
	assert.Contains(t, content, "high-count=1\n")
	assert.Contains(t, content, "results-file=scan-results.sarif\n")
	assert.Contains(t, content, "security-score=82.5\n")
	assert.Contains(t, content, "scan-duration=61000\n")
	assert.Contains(t, content, "dashboard-url=https://app.scanplatform.io/orgs/acme/scans/scan-1\n")
}

func TestEmit_OptionalSlotsOmitted(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_OUTPUT", outPath)

	e := NewEmitter(false)
	err := e.Emit(&domain.Outputs{ScanID: "scan-2", RepositoryID: "repo-1"})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	content := string(data)

	assert.NotContains(t, content, "security-score=")
	assert.NotContains(t, content, "scan-duration=")
	assert.NotContains(t, content, "dashboard-url=")
	assert.NotContains(t, content, "results-file=")
	assert.Contains(t, content, "violation-count=0\n")
}

func TestEmit_NoOutputFileIsNotAnError(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	e := NewEmitter(false)
	assert.NoError(t, e.Emit(&domain.Outputs{ScanID: "scan-3"}))
}
