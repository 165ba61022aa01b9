package domain

import (
	"fmt"
	"time"
)

// Journal collects human readable operation lines for a caller.
// It is append-only and independent of the operational logger.
type Journal struct {
	entries []string
}

func NewJournal() *Journal {
	return &Journal{}
}

// Record appends a timestamped line. A nil Journal discards it.
func (j *Journal) Record(at time.Time, format string, args ...any) {
	if j == nil {
		return
	}
	j.entries = append(j.entries, fmt.Sprintf("%s: %s", at.Format("2006-01-02 15:04:05.000000"), fmt.Sprintf(format, args...)))
}

// Entries returns a copy of the recorded lines in order.
func (j *Journal) Entries() []string {
	if j == nil {
		return nil
	}
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) Len() int {
	if j == nil {
		return 0
	}
	return len(j.entries)
}
