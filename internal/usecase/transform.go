// Package usecase contains the business logic of the application.
package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/jakubvalenta/github-metrics/internal/domain"
)

// apiPullRequest holds the only fields consumed from a raw API item.
type apiPullRequest struct {
	Title     string  `json:"title"`
	HTMLURL   string  `json:"html_url"`
	CreatedAt string  `json:"created_at"`
	MergedAt  *string `json:"merged_at"`
}

// Transform maps one raw API item to a domain record. Items whose merged_at
// is null were closed without merging and yield (nil, nil). Timestamps parse
// as RFC 3339 with offset; the elapsed minutes are rounded half away from
// zero and not validated further, so inconsistent upstream data passes
// through as computed.
func Transform(raw json.RawMessage) (*domain.PullRequest, error) {
	var item apiPullRequest
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decoding pull request item: %w", err)
	}
	if item.MergedAt == nil {
		return nil, nil
	}
	createdAt, err := time.Parse(time.RFC3339, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	mergedAt, err := time.Parse(time.RFC3339, *item.MergedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing merged_at: %w", err)
	}
	return &domain.PullRequest{
		Title:                  item.Title,
		URL:                    item.HTMLURL,
		CreatedAt:              createdAt,
		MergedAt:               mergedAt,
		CreatedToMergedMinutes: int(math.Round(mergedAt.Sub(createdAt).Minutes())),
	}, nil
}
