package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/jakubvalenta/github-metrics/internal/domain"
)

// Aggregate buckets the records into fixed calendar windows and computes per
// bucket how many records were created, how many were merged, and the mean
// created-to-merged minutes over the records merged in it. The created and
// merged series are accumulated independently, by created_at and merged_at
// respectively, then joined by bucket so that a bucket with activity on only
// one side still appears. Rows are ordered by ascending bucket start.
func Aggregate(records []domain.PullRequest, granularity domain.Granularity) []domain.AggregateRow {
	createdCounts := make(map[time.Time]int)
	mergedCounts := make(map[time.Time]int)
	mergedMinutes := make(map[time.Time][]float64)
	for _, r := range records {
		createdCounts[granularity.Truncate(r.CreatedAt)]++
		bucket := granularity.Truncate(r.MergedAt)
		mergedCounts[bucket]++
		mergedMinutes[bucket] = append(mergedMinutes[bucket], float64(r.CreatedToMergedMinutes))
	}

	buckets := make(map[time.Time]struct{})
	for b := range createdCounts {
		buckets[b] = struct{}{}
	}
	for b := range mergedCounts {
		buckets[b] = struct{}{}
	}

	rows := make([]domain.AggregateRow, 0, len(buckets))
	for b := range buckets {
		row := domain.AggregateRow{
			Date:    b,
			Created: createdCounts[b],
			Merged:  mergedCounts[b],
		}
		if minutes := mergedMinutes[b]; len(minutes) > 0 {
			// stats.Mean only fails on empty input, which the bucket
			// construction rules out.
			row.MeanMinutes, _ = stats.Mean(minutes)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}
