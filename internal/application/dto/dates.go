package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventory-management-api/internal/domain"
)

// ParseDateRange interpreta start_date/end_date en ISO-8601 (RFC3339 o YYYY-MM-DD).
// Una fecha sin hora en end_date cubre el día completo. Vacío = sin límite.
func ParseDateRange(start, end string) (from, to *time.Time, err error) {
	if start != "" {
		t, _, err := parseISO(start)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date '%s' no es una fecha ISO-8601", domain.ErrInvalidInput, start)
		}
		from = &t
	}
	if end != "" {
		t, dateOnly, err := parseISO(end)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date '%s' no es una fecha ISO-8601", domain.ErrInvalidInput, end)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: end_date es anterior a start_date", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func parseISO(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}
