package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakubvalenta/github-metrics/internal/domain"
)

func pr(created, merged time.Time) domain.PullRequest {
	return domain.PullRequest{
		Title:                  "pr",
		URL:                    "https://github.com/o/r/pull/1",
		CreatedAt:              created,
		MergedAt:               merged,
		CreatedToMergedMinutes: int(merged.Sub(created).Minutes()),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate_Daily(t *testing.T) {
	records := []domain.PullRequest{
		// Created and merged on Jan 1, 90 minutes apart.
		pr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 1, 30, 0, 0, time.UTC)),
		// Created and merged on Jan 1, 30 minutes apart.
		pr(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)),
		// Created on Jan 2, merged on Jan 4.
		pr(time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)),
	}

	rows := Aggregate(records, domain.Daily)

	expected := []domain.AggregateRow{
		{Date: day(2024, 1, 1), Created: 2, Merged: 2, MeanMinutes: 60},
		{Date: day(2024, 1, 2), Created: 1, Merged: 0},
		{Date: day(2024, 1, 4), Created: 0, Merged: 1, MeanMinutes: 2 * 24 * 60},
	}
	assert.Equal(t, expected, rows)
}

// The created and merged series are independent: the per-bucket counts of each
// series must sum to the total record count.
func TestAggregate_CountTotals(t *testing.T) {
	var records []domain.PullRequest
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 17; i++ {
		c := created.Add(time.Duration(i*11) * time.Hour)
		records = append(records, pr(c, c.Add(time.Duration(i)*7*time.Hour)))
	}

	for _, granularity := range []domain.Granularity{domain.Daily, domain.Weekly} {
		rows := Aggregate(records, granularity)
		totalCreated, totalMerged := 0, 0
		for _, row := range rows {
			totalCreated += row.Created
			totalMerged += row.Merged
		}
		assert.Equal(t, len(records), totalCreated, granularity.String())
		assert.Equal(t, len(records), totalMerged, granularity.String())
	}
}

// Weeks end on Sunday: a merge on a Sunday and one on the following Monday
// belong to two distinct buckets.
func TestAggregate_WeeklyBoundary(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 1, 8, 1, 0, 0, 0, time.UTC)
	records := []domain.PullRequest{
		pr(sunday.Add(-time.Hour), sunday),
		pr(monday.Add(-time.Hour), monday),
	}

	rows := Aggregate(records, domain.Weekly)

	require.Len(t, rows, 2)
	assert.Equal(t, day(2024, 1, 7), rows[0].Date)
	assert.Equal(t, day(2024, 1, 14), rows[1].Date)
	assert.Equal(t, 1, rows[0].Merged)
	assert.Equal(t, 1, rows[1].Merged)
}

func TestAggregate_BucketsInUTC(t *testing.T) {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	// 2024-01-02 01:00 +02:00 is still 2024-01-01 in UTC.
	created := time.Date(2024, 1, 2, 1, 0, 0, 0, plusTwo)
	records := []domain.PullRequest{pr(created, created.Add(time.Hour))}

	rows := Aggregate(records, domain.Daily)

	require.Len(t, rows, 1)
	assert.Equal(t, day(2024, 1, 1), rows[0].Date)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, domain.Daily))
}

func TestGranularity_Truncate(t *testing.T) {
	testCases := []struct {
		name        string
		granularity domain.Granularity
		in          time.Time
		expected    time.Time
	}{
		{
			name:        "daily truncates to midnight",
			granularity: domain.Daily,
			in:          time.Date(2024, 5, 14, 17, 45, 12, 0, time.UTC),
			expected:    day(2024, 5, 14),
		},
		{
			name:        "weekly maps a Wednesday to the closing Sunday",
			granularity: domain.Weekly,
			in:          time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			expected:    day(2024, 1, 14),
		},
		{
			name:        "weekly keeps a Sunday on itself",
			granularity: domain.Weekly,
			in:          time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC),
			expected:    day(2024, 1, 14),
		},
		{
			name:        "weekly maps a Monday to the next Sunday",
			granularity: domain.Weekly,
			in:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			expected:    day(2024, 1, 21),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.granularity.Truncate(tc.in))
		})
	}
}
