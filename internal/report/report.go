// Package report renders pull request records and aggregate rows as CSV.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jakubvalenta/github-metrics/internal/domain"
)

// timestampLayout renders a full date-time with a numeric offset; UTC prints
// as +00:00, never Z.
const timestampLayout = "2006-01-02T15:04:05-07:00"

const dateLayout = "2006-01-02"

// WritePullRequests writes one CSV row per record, in the given order,
// preceded by a header row.
func WritePullRequests(w io.Writer, records []domain.PullRequest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "url", "created_at", "created_to_merged_minutes"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Title,
			r.URL,
			r.CreatedAt.Format(timestampLayout),
			strconv.Itoa(r.CreatedToMergedMinutes),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAggregates writes one CSV row per bucket. Column names carry the
// granularity as a suffix. A side of a bucket without records renders blank,
// as does the mean when nothing was merged in the bucket.
func WriteAggregates(w io.Writer, rows []domain.AggregateRow, granularity domain.Granularity) error {
	cw := csv.NewWriter(w)
	g := granularity.String()
	header := []string{"date", "created_" + g, "merged_" + g, "created_to_merged_minutes_" + g}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{r.Date.Format(dateLayout), formatCount(r.Created), formatCount(r.Merged), ""}
		if r.Merged > 0 {
			row[3] = strconv.FormatFloat(r.MeanMinutes, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatCount renders a zero count blank: a bucket only exists because some
// record fell into it on one side, so zero means no data, not a measured 0.
func formatCount(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
