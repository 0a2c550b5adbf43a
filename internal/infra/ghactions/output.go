package ghactions

import (
	"fmt"
	"log"
	"os"
	"strconv"

	domain "github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

// Emitter maps terminal run outputs onto the runner's step-output mechanism
// ($GITHUB_OUTPUT, one name=value line per slot) plus human-readable logs.
type Emitter struct {
	path    string
	verbose bool
}

func NewEmitter(verbose bool) *Emitter {
	return &Emitter{path: os.Getenv("GITHUB_OUTPUT"), verbose: verbose}
}

// Emit writes one output slot per field. Optional fields are omitted when
// absent. Without $GITHUB_OUTPUT (local run) only the log lines appear.
func (e *Emitter) Emit(out *domain.Outputs) error {
	slots := [][2]string{
		{"scan-id", out.ScanID},
		{"repository-id", out.RepositoryID},
		{"violation-count", strconv.Itoa(out.Counts.Total)},
		{"critical-count", strconv.Itoa(out.Counts.Critical)},
		{"high-count", strconv.Itoa(out.Counts.High)},
		{"medium-count", strconv.Itoa(out.Counts.Medium)},
		{"low-count", strconv.Itoa(out.Counts.Low)},
	}
	if out.ResultsFile != "" {
		slots = append(slots, [2]string{"results-file", out.ResultsFile})
	}
	if out.SecurityScore != nil {
		slots = append(slots, [2]string{"security-score", strconv.FormatFloat(*out.SecurityScore, 'f', -1, 64)})
	}
	if out.DurationMS > 0 {
		slots = append(slots, [2]string{"scan-duration", strconv.FormatInt(out.DurationMS, 10)})
	}
	if out.DashboardURL != "" {
		slots = append(slots, [2]string{"dashboard-url", out.DashboardURL})
	}

	log.Printf("scan finished: id=%s repo=%s total=%d critical=%d high=%d medium=%d low=%d",
		out.ScanID, out.RepositoryID, out.Counts.Total, out.Counts.Critical,
		out.Counts.High, out.Counts.Medium, out.Counts.Low)
	if out.DashboardURL != "" {
		log.Printf("dashboard: %s", out.DashboardURL)
	}

	if e.path == "" {
		return nil
	}
	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, s := range slots {
		if _, err := fmt.Fprintf(f, "%s=%s\n", s[0], s[1]); err != nil {
			return err
		}
	}
	return nil
}

// Fail records the process as failed using the runner's error annotation.
// Verbose mode surfaces the full wrapped chain.
func (e *Emitter) Fail(err error) {
	fmt.Printf("::error::%s\n", err.Error())
	if e.verbose {
		log.Printf("diagnostic: %+v", err)
	}
}
