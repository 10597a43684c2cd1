package usecase

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jakubvalenta/github-metrics/internal/domain"
	"github.com/jakubvalenta/github-metrics/internal/gateway"
)

// Collector is the use case that turns the raw paginated listing into the
// collection of merged pull request records.
type Collector struct {
	lister gateway.Lister
	logger *log.Logger
}

// NewCollector creates a new Collector instance.
func NewCollector(lister gateway.Lister, logger *log.Logger) *Collector {
	return &Collector{
		lister: lister,
		logger: logger,
	}
}

// Collect streams every closed pull request of the repository through
// Transform and materializes the merged ones, in fetch order. Pages are
// consumed one at a time; only the resulting records are held, since
// aggregation needs the full collection anyway.
func (c *Collector) Collect(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	c.logger.Printf("Collecting merged pull requests for %s/%s...", owner, repo)
	var records []domain.PullRequest
	err := c.lister.ListClosedPullRequests(ctx, owner, repo, func(item json.RawMessage) error {
		record, err := Transform(item)
		if err != nil {
			return err
		}
		if record != nil {
			records = append(records, *record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Collected %d merged pull requests.", len(records))
	return records, nil
}
