package schedule

import (
	"errors"
	"time"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// MonthRange возвращает первую и последнюю календарные даты месяца
// (обе включительно) как полуночи UTC. Нулевые year/month заменяются
// текущим годом/месяцем по UTC.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	if year <= 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to, nil
}
