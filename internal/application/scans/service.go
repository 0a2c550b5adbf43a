package scans

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/bryanwahyu/scanbridge/internal/application"
	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

// Summarizer is the optional AI remediation summary. Best-effort only.
type Summarizer interface {
	Summarize(ctx context.Context, counts domain.SeverityCounts, breakdown map[string]int) (string, error)
}

// Service runs the whole pipeline: authenticate, resolve repository, execute
// scan, export results, publish findings, evaluate thresholds. Ports are
// injected so the pipeline is testable with substitute clients.
// Publisher, Artifacts and Summarizer may be nil; their steps are skipped.
type Service struct {
	Client     domain.Client
	Publisher  domain.Publisher
	Artifacts  domain.ArtifactStore
	Summarizer Summarizer
	Clock      application.Clock
}

// RunCommand carries everything one run needs: the resolved configuration
// plus the correlation fields from the invoking workflow context.
type RunCommand struct {
	Org     string
	RepoURL string
	Branch  string

	Wait            bool
	TimeoutSec      int
	PollIntervalSec int

	OutputFormat string
	OutputFile   string
	ServerURL    string

	UploadSARIF        bool
	FailOnCritical     bool
	FailOnHigh         bool
	MaxViolations      int
	SkipImportIfExists bool
	Verbose            bool

	// invoking context
	Actor     string
	Workflow  string
	RunID     string
	EventName string
	CommitSHA string
}

// Run executes the six pipeline stages in order. A failure in stages 1-4
// aborts the rest and propagates; publish/mirror/summary failures are
// absorbed; threshold failures are raised last, after all informational
// logging, together with the already-built outputs.
func (s *Service) Run(ctx context.Context, cmd RunCommand) (*domain.Outputs, error) {
	start := s.Clock.Now()

	// 1. authenticate
	if err := s.Client.ValidateAuth(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	if cmd.Verbose {
		log.Printf("authenticated against %s", cmd.ServerURL)
	}

	// 2. resolve repository
	repo, err := s.resolveRepository(ctx, cmd)
	if err != nil {
		return nil, err
	}

	// 3. execute scan
	scan, breakdown, err := s.executeScan(ctx, cmd, repo)
	if err != nil {
		return nil, err
	}

	// 4. export results
	outputs, err := s.exportResults(ctx, cmd, repo, scan)
	if err != nil {
		return nil, err
	}

	// 5. publish findings — failure is a warning, never fatal; the exported
	// file stays the authoritative artifact
	s.publishFindings(ctx, cmd, outputs)

	// supplemented best-effort steps: artifact mirror and AI summary
	s.mirrorArtifact(ctx, cmd, outputs)
	s.summarize(ctx, outputs.Counts, breakdown)

	log.Printf("pipeline finished in %s", s.Clock.Now().Sub(start))

	// 6. evaluate failure conditions
	if err := s.evaluateThresholds(cmd, outputs.Counts); err != nil {
		return outputs, err
	}
	return outputs, nil
}

func (s *Service) resolveRepository(ctx context.Context, cmd RunCommand) (*domain.Repository, error) {
	canonical := domain.NormalizeRepoURL(cmd.RepoURL)
	name := domain.RepoNameFromURL(canonical)
	provider := domain.DetectProvider(canonical)

	repo, existed, err := s.Client.ImportRepository(ctx, domain.ImportRequest{
		URL:          canonical,
		Name:         name,
		Branch:       cmd.Branch,
		Provider:     provider,
		AutoScan:     false,
		ScanTypes:    []string{},
		IsPrivate:    true,
		SkipIfExists: cmd.SkipImportIfExists,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: import %s into org %s: %v; check that the organization id is correct and the token may register repositories",
			domain.ErrRepositoryResolution, canonical, cmd.Org, err)
	}
	if existed {
		log.Printf("repository %s already exists in org %s, reusing id=%s", name, cmd.Org, repo.ID)
	} else {
		log.Printf("repository %s auto-imported into org %s, id=%s", name, cmd.Org, repo.ID)
	}
	return repo, nil
}

func (s *Service) executeScan(ctx context.Context, cmd RunCommand, repo *domain.Repository) (*domain.Scan, map[string]int, error) {
	// scan types sengaja selalu kosong: organization policy yang pilih
	scan, err := s.Client.RunScan(ctx, domain.ScanRequest{
		RepositoryID:    repo.ID,
		Branch:          cmd.Branch,
		ScanTypes:       []string{},
		Wait:            cmd.Wait,
		TimeoutSec:      cmd.TimeoutSec,
		PollIntervalSec: cmd.PollIntervalSec,
		Trigger:         cmd.EventName,
		CommitSHA:       cmd.CommitSHA,
		Metadata: map[string]string{
			"actor":          cmd.Actor,
			"workflow":       cmd.Workflow,
			"run_id":         cmd.RunID,
			"correlation_id": uuid.New().String(),
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrScanExecution, err)
	}

	var breakdown map[string]int
	if scan.Completed {
		if sum := scan.Summary; sum != nil {
			log.Printf("scan %s completed: total=%d critical=%d high=%d medium=%d low=%d",
				scan.ID, sum.Total, sum.Critical, sum.High, sum.Medium, sum.Low)
		}
		// breakdown fetch is best-effort: log and keep going
		raw, err := s.Client.ScanDetails(ctx, scan.ID)
		if err != nil {
			log.Printf("warning: could not fetch violation breakdown for scan %s: %v", scan.ID, err)
		} else if len(raw) > 0 {
			breakdown = make(map[string]int, len(raw))
			for t, n := range raw {
				breakdown[domain.BucketViolationType(t)] += n
			}
			for category, n := range breakdown {
				log.Printf("  %s: %d", category, n)
			}
		}
	} else {
		log.Printf("scan %s is running asynchronously; for automated pipelines set wait to true so thresholds see real counts", scan.ID)
	}
	return scan, breakdown, nil
}

func (s *Service) exportResults(ctx context.Context, cmd RunCommand, repo *domain.Repository, scan *domain.Scan) (*domain.Outputs, error) {
	data, err := s.Client.ExportScanResults(ctx, domain.ExportRequest{
		ScanID:          scan.ID,
		Format:          cmd.OutputFormat,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: export scan %s as %s: %v", domain.ErrExport, scan.ID, cmd.OutputFormat, err)
	}
	if err := os.WriteFile(cmd.OutputFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: write %s: %v", domain.ErrExport, cmd.OutputFile, err)
	}
	log.Printf("results written to %s (%d bytes, format %s)", cmd.OutputFile, len(data), cmd.OutputFormat)

	// summary absent (async scan) berarti semua count nol
	counts := domain.SeverityCounts{}
	if scan.Summary != nil {
		counts = *scan.Summary
	}

	return &domain.Outputs{
		ScanID:        string(scan.ID),
		RepositoryID:  repo.ID,
		ResultsFile:   cmd.OutputFile,
		Counts:        counts,
		SecurityScore: scan.SecurityScore,
		DurationMS:    scan.DurationMS,
		DashboardURL:  domain.DashboardURL(cmd.ServerURL, cmd.Org, scan.ID),
	}, nil
}

func (s *Service) publishFindings(ctx context.Context, cmd RunCommand, outputs *domain.Outputs) {
	if !cmd.UploadSARIF || cmd.OutputFormat != "sarif" || outputs.ResultsFile == "" {
		return
	}
	if s.Publisher == nil {
		log.Printf("warning: sarif upload requested but no ingestion credential is configured, skipping")
		return
	}
	// probe fail-open: hanya marker "disabled" yang dipercaya
	if !s.Publisher.Probe(ctx) {
		log.Printf("warning: code scanning looks disabled on the target repository; attempting upload anyway")
	}
	receipt, err := s.Publisher.Upload(ctx, outputs.ResultsFile)
	if err != nil {
		log.Printf("warning: sarif upload failed, exported file remains authoritative: %v", err)
		return
	}
	log.Printf("sarif uploaded: id=%s url=%s", receipt.ID, receipt.URL)
}

func (s *Service) mirrorArtifact(ctx context.Context, cmd RunCommand, outputs *domain.Outputs) {
	if s.Artifacts == nil || outputs.ResultsFile == "" {
		return
	}
	key := fmt.Sprintf("%s/%s/%s", cmd.Org, outputs.ScanID, outputs.ResultsFile)
	url, err := s.Artifacts.Upload(ctx, outputs.ResultsFile, key)
	if err != nil {
		log.Printf("warning: artifact mirror upload failed: %v", err)
		return
	}
	log.Printf("artifact mirrored to %s", url)
}

func (s *Service) summarize(ctx context.Context, counts domain.SeverityCounts, breakdown map[string]int) {
	if s.Summarizer == nil || counts.Total == 0 {
		return
	}
	text, err := s.Summarizer.Summarize(ctx, counts, breakdown)
	if err != nil {
		log.Printf("warning: remediation summary unavailable: %v", err)
		return
	}
	log.Printf("remediation summary:\n%s", text)
}

func (s *Service) evaluateThresholds(cmd RunCommand, counts domain.SeverityCounts) error {
	if cmd.FailOnCritical && counts.Critical > 0 {
		return fmt.Errorf("%w: %d critical violations found and fail-on-critical is set", domain.ErrThreshold, counts.Critical)
	}
	if cmd.FailOnCritical {
		log.Printf("no critical violations, fail-on-critical check passed")
	}
	if cmd.FailOnHigh && counts.High > 0 {
		return fmt.Errorf("%w: %d high violations found and fail-on-high is set", domain.ErrThreshold, counts.High)
	}
	if cmd.FailOnHigh {
		log.Printf("no high violations, fail-on-high check passed")
	}
	if cmd.MaxViolations > 0 && counts.Total > cmd.MaxViolations {
		return fmt.Errorf("%w: %d total violations exceed the limit of %d", domain.ErrThreshold, counts.Total, cmd.MaxViolations)
	}
	if cmd.MaxViolations > 0 {
		log.Printf("%d total violations within the limit of %d", counts.Total, cmd.MaxViolations)
	}
	return nil
}
