// ABOUTME: Batch search over independent assemblies
// ABOUTME: Runs one sequential sweep per assembly with bounded concurrency

package services

import (
	"context"
	"fmt"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"golang.org/x/sync/errgroup"
)

// SearchBatch searches every assembly and returns results in input order.
// At most limit sweeps run at once; limit <= 0 means one per assembly.
// The first failing sweep cancels the rest.
func (s *SpringSearcher) SearchBatch(ctx context.Context, inputs []models.AssemblyInput, limit int) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, in := range inputs {
		g.Go(func() error {
			res, err := s.Search(gctx, in)
			if err != nil {
				return fmt.Errorf("assembly %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
