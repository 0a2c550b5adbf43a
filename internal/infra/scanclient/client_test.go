package scanclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

func TestValidateAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/validate", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "invalid token"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL, "good-token", "acme").ValidateAuth(context.Background()))

	err := New(srv.URL, "bad-token", "acme").ValidateAuth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestImportRepository(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orgs/acme/repositories/import", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"repository": {"id": "repo-9", "name": "widget", "provider": "github", "url": "https://github.com/acme/widget.git"},
			"already_exists": true
		}`))
	}))
	defer srv.Close()

	repo, existed, err := New(srv.URL, "tok", "acme").ImportRepository(context.Background(), domain.ImportRequest{
		URL:       "https://github.com/acme/widget.git",
		Name:      "widget",
		Branch:    "main",
		Provider:  "github",
		ScanTypes: []string{},
		IsPrivate: true,
	})
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, "repo-9", repo.ID)

	assert.Equal(t, false, gotBody["auto_scan"])
	assert.Equal(t, []any{}, gotBody["scan_types"])
}

func TestRunScan_SynchronousCompletion(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orgs/acme/scans", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"scan": {
				"id": "scan-3",
				"status": "completed",
				"duration_ms": 61000,
				"summary": {"critical": 1, "high": 2, "medium": 0, "low": 3, "total": 6},
				"security_score": 71.5
			}
		}`))
	}))
	defer srv.Close()

	scan, err := New(srv.URL, "tok", "acme").RunScan(context.Background(), domain.ScanRequest{
		RepositoryID:    "repo-9",
		Branch:          "main",
		ScanTypes:       []string{},
		Wait:            true,
		TimeoutSec:      1800,
		PollIntervalSec: 30,
		Trigger:         "push",
		CommitSHA:       "abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ScanID("scan-3"), scan.ID)
	assert.True(t, scan.Completed)
	require.NotNil(t, scan.Summary)
	assert.Equal(t, 6, scan.Summary.Total)
	require.NotNil(t, scan.SecurityScore)
	assert.InDelta(t, 71.5, *scan.SecurityScore, 0.001)

	assert.Equal(t, true, gotBody["wait"])
	assert.Equal(t, float64(1800), gotBody["timeout"])
	assert.Equal(t, float64(30), gotBody["poll_interval"])
}

func TestRunScan_AsynchronousPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scan": {"id": "scan-4", "status": "running"}}`))
	}))
	defer srv.Close()

	scan, err := New(srv.URL, "tok", "acme").RunScan(context.Background(), domain.ScanRequest{
		RepositoryID: "repo-9",
		Wait:         false,
	})
	require.NoError(t, err)
	assert.False(t, scan.Completed)
	assert.Nil(t, scan.Summary)
}

func TestScanDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/scans/scan-3/details", r.URL.Path)
		_, _ = w.Write([]byte(`{"violation_types": {"sast": 2, "secrets": 1}}`))
	}))
	defer srv.Close()

	details, err := New(srv.URL, "tok", "acme").ScanDetails(context.Background(), "scan-3")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sast": 2, "secrets": 1}, details)
}

func TestExportScanResults_ReturnsBodyVerbatim(t *testing.T) {
	raw := `{"$schema": "s", "version": "2.1.0", "runs": []}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/scans/scan-3/export", r.URL.Path)
		assert.Equal(t, "sarif", r.URL.Query().Get("format"))
		assert.Equal(t, "true", r.URL.Query().Get("include_metadata"))
		assert.Equal(t, "false", r.URL.Query().Get("include_fixed"))
		assert.Equal(t, "false", r.URL.Query().Get("include_suppressed"))
		_, _ = w.Write([]byte(raw))
	}))
	defer srv.Close()

	data, err := New(srv.URL, "tok", "acme").ExportScanResults(context.Background(), domain.ExportRequest{
		ScanID:          "scan-3",
		Format:          "sarif",
		IncludeMetadata: true,
	})
	require.NoError(t, err)
	assert.Equal(t, raw, string(data))
}
