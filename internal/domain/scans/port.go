package scans

import "context"

// Client port (interface untuk platform scan remote)
type Client interface {
	// ValidateAuth checks the configured credential against the platform.
	ValidateAuth(ctx context.Context) error

	// ImportRepository finds or registers the repository in the organization.
	// The bool reports whether the repository already existed.
	ImportRepository(ctx context.Context, req ImportRequest) (*Repository, bool, error)

	// RunScan triggers a scan. With Wait set the call blocks inside the
	// platform client until the scan finishes or the timeout elapses; poll
	// cadence is owned by the remote side.
	RunScan(ctx context.Context, req ScanRequest) (*Scan, error)

	// ScanDetails fetches the per-violation-type breakdown. Best-effort
	// callers may ignore its failure.
	ScanDetails(ctx context.Context, id ScanID) (map[string]int, error)

	// ExportScanResults returns the findings document in the given format,
	// verbatim as the platform serialized it.
	ExportScanResults(ctx context.Context, req ExportRequest) ([]byte, error)
}

// Publisher port (interface untuk findings-ingestion endpoint)
type Publisher interface {
	// Upload validates then pushes a previously exported SARIF file.
	Upload(ctx context.Context, path string) (*UploadReceipt, error)

	// Probe best-effort checks whether the ingestion feature is enabled.
	Probe(ctx context.Context) bool
}

// ArtifactStore port (interface untuk penyimpanan artefak)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
