package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate interpreta uma data YYYY-MM-DD; string vazia devolve nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// DateRange devolve os dias de start até end, inclusive, no formato YYYY-MM-DD
func DateRange(start, end time.Time) []string {
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days
}

// Yesterday devolve o dia anterior a now no fuso loc
func Yesterday(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

// PreviousDay devolve o dia anterior a day (YYYY-MM-DD)
func PreviousDay(day string) (string, error) {
	d, err := time.Parse(dateLayout, day)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, -1).Format(dateLayout), nil
}
