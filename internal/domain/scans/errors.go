package scans

import "errors"

// Error taxonomy untuk pipeline. Semua fatal error dibungkus salah satu
// sentinel di bawah supaya caller bisa errors.Is tanpa lihat message.
var (
	// ErrConfiguration indicates bad or missing input, caught before any
	// remote call (also used for actionable remote misconfiguration).
	ErrConfiguration = errors.New("configuration error")

	// ErrAuthentication indicates the platform rejected the credential.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRepositoryResolution indicates the import/lookup call failed.
	ErrRepositoryResolution = errors.New("repository resolution failed")

	// ErrScanExecution indicates the scan trigger or its wait failed.
	ErrScanExecution = errors.New("scan execution failed")

	// ErrExport indicates the result export or the local write failed.
	ErrExport = errors.New("result export failed")

	// ErrFormat indicates an exported findings document with a bad shape.
	ErrFormat = errors.New("invalid findings document")

	// ErrThreshold indicates a post-scan policy violation. Raised only
	// after a successful scan and export.
	ErrThreshold = errors.New("failure threshold exceeded")
)
