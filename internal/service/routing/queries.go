package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/correspondence-backend/internal/domain"
)

// Get returns a distribution by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Distribution, error) {
	d, err := s.dists.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get distribution: %w", err)
	}
	return d, nil
}

// History returns the log of a distribution, oldest entry first.
func (s *Service) History(ctx context.Context, id uuid.UUID) ([]domain.DistributionLogEntry, error) {
	if _, err := s.dists.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get distribution: %w", err)
	}
	entries, err := s.logs.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("distribution history: %w", err)
	}
	return entries, nil
}

// ListByDocument returns every distribution of a document, oldest first.
func (s *Service) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error) {
	list, err := s.dists.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("list distributions: %w", err)
	}
	return list, nil
}
