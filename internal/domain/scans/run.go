package scans

// ImportRequest untuk import/lookup repo di organization.
// Import di sisi platform idempotent: repo yang sudah ada dikembalikan
// apa adanya, yang belum ada didaftarkan on the fly.
type ImportRequest struct {
	URL          string
	Name         string
	Branch       string
	Provider     string
	AutoScan     bool
	ScanTypes    []string
	IsPrivate    bool
	SkipIfExists bool
}

// ScanRequest untuk trigger scan.
// ScanTypes selalu kosong: organization policy yang menentukan scan types.
type ScanRequest struct {
	RepositoryID    string
	Branch          string
	ScanTypes       []string
	Wait            bool
	TimeoutSec      int
	PollIntervalSec int
	Trigger         string
	CommitSHA       string
	Metadata        map[string]string
}

// ExportRequest untuk export hasil scan.
type ExportRequest struct {
	ScanID            ScanID
	Format            string
	IncludeMetadata   bool
	IncludeFixed      bool
	IncludeSuppressed bool
}
