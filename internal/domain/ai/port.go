package ai

import (
	"context"

	"github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

type Client interface {
	Summarize(ctx context.Context, counts scans.SeverityCounts, breakdown map[string]int) (string, error)
}
