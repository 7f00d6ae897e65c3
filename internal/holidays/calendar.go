package holidays

import (
	"context"
	"fmt"

	"github.com/vigilant-ops/cuadrante-api/pkg/db/models"
)

type holidayLister interface {
	ListAll(ctx context.Context) ([]models.Holiday, error)
}

// Calendar answers holiday lookups for concrete dates. Stored festivos come in
// two shapes: MM-DD entries recur every year, YYYY-MM-DD entries match a
// single day. Any scope counts.
type Calendar struct {
	repo holidayLister
}

// NewCalendar builds a calendar over the holidays repository.
func NewCalendar(repo holidayLister) (*Calendar, error) {
	if repo == nil {
		return nil, fmt.Errorf("holidays repository required")
	}
	return &Calendar{repo: repo}, nil
}

// Lookup is a loaded holiday set supporting date checks without further queries.
type Lookup struct {
	dates map[string]struct{}
}

// Load snapshots the festivo table into a lookup.
func (c *Calendar) Load(ctx context.Context) (*Lookup, error) {
	stored, err := c.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]struct{}, len(stored))
	for _, h := range stored {
		dates[h.Date] = struct{}{}
	}
	return &Lookup{dates: dates}, nil
}

// IsHoliday reports whether year-month-day matches a stored festivo.
func (l *Lookup) IsHoliday(year, month, day int) bool {
	if l == nil || len(l.dates) == 0 {
		return false
	}
	full := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, ok := l.dates[full]; ok {
		return true
	}
	recurring := fmt.Sprintf("%02d-%02d", month, day)
	_, ok := l.dates[recurring]
	return ok
}
