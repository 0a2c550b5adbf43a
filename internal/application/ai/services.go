package ai

import (
	"context"

	"github.com/bryanwahyu/scanbridge/internal/domain/ai"
	"github.com/bryanwahyu/scanbridge/internal/domain/scans"
)

type Service struct {
	client ai.Client
}

func NewService(client ai.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Summarize(ctx context.Context, counts scans.SeverityCounts, breakdown map[string]int) (string, error) {
	return s.client.Summarize(ctx, counts, breakdown)
}
