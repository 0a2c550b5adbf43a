package scans

// ID tipe untuk Scan
type ScanID string

// SeverityCounts value object
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Total    int `json:"total"`
}

// Repository adalah record repo di sisi platform, hasil import/lookup.
type Repository struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// Scan hasil trigger di sisi platform. Summary nil kalau platform belum
// punya rekap (misalnya scan masih jalan asynchronous).
type Scan struct {
	ID            ScanID          `json:"id"`
	Completed     bool            `json:"completed"`
	DurationMS    int64           `json:"duration_ms"`
	Summary       *SeverityCounts `json:"summary,omitempty"`
	SecurityScore *float64        `json:"security_score,omitempty"`
}

// Outputs is the terminal record of one run. It is only built after both the
// scan and its export succeeded.
type Outputs struct {
	ScanID        string         `json:"scan_id"`
	RepositoryID  string         `json:"repository_id"`
	ResultsFile   string         `json:"results_file,omitempty"`
	Counts        SeverityCounts `json:"counts"`
	SecurityScore *float64       `json:"security_score,omitempty"`
	DurationMS    int64          `json:"duration_ms,omitempty"`
	DashboardURL  string         `json:"dashboard_url,omitempty"`
}

// UploadReceipt is what the findings-ingestion endpoint hands back after a
// successful SARIF upload.
type UploadReceipt struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
