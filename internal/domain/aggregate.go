package domain

import "time"

// Granularity is the length of the calendar window records are bucketed into.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
)

func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	default:
		return "daily"
	}
}

// Truncate maps a timestamp to the start of its bucket. Bucketing is done in
// UTC so that records carrying different offsets land in well-defined calendar
// buckets. Weeks run Monday through Sunday and are labeled by their closing
// Sunday, so two records merged on a Sunday and the following Monday fall into
// distinct buckets.
func (g Granularity) Truncate(t time.Time) time.Time {
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	if g == Weekly {
		d = d.AddDate(0, 0, (7-int(d.Weekday()))%7)
	}
	return d
}

// AggregateRow holds the metrics of one time bucket. A count of zero means no
// record fell into the bucket on that side; the mean is only defined when
// Merged is positive.
type AggregateRow struct {
	Date        time.Time
	Created     int
	Merged      int
	MeanMinutes float64
}
