package importing

import (
	"time"

	"github.com/google/uuid"
)

// ImportAnalytics is a coarse daily aggregate keyed by
// (date, import method, source domain). It is a best-effort side channel:
// its writes must never fail the import that produced them.
type ImportAnalytics struct {
	ID                uuid.UUID
	Date              time.Time
	ImportMethod      ImportMethod
	SourceDomain      string
	TotalImports      int
	SuccessfulImports int
	FailedImports     int
	AverageConfidence float64
}

// AnalyticsDay truncates a timestamp to the UTC calendar date used as
// the aggregate key.
func AnalyticsDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
