package domain

import "time"

// Period represents one accounting period. Exactly one period is current at a
// time; a closed period rejects new or edited entries.
type Period struct {
	PeriodID  string    `json:"periodID"` // Primary key (UUID)
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsCurrent bool      `json:"isCurrent"`
	IsClosed  bool      `json:"isClosed"`
	AuditFields
}

// Contains reports whether d falls inside the period's date range, inclusive
// on both ends. Only the calendar date matters.
func (p Period) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(p.StartDate.Truncate(24*time.Hour)) && !day.After(p.EndDate.Truncate(24*time.Hour))
}
