package timeutil

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidRange возвращается, когда конец интервала не позже начала
var ErrInvalidRange = errors.New("timeutil: end must be after start")

// DurationMinutes возвращает длительность интервала [start, end) в целых минутах
// Дробные минуты округляются до ближайшего целого. Интервал короче половины минуты
// считается пустым и тоже возвращает ErrInvalidRange
func DurationMinutes(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, ErrInvalidRange
	}

	minutes := int(math.Round(end.Sub(start).Minutes()))
	if minutes <= 0 {
		return 0, ErrInvalidRange
	}

	return minutes, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы, которые только касаются концами, не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Calendar календарные операции в часовом поясе системы
type Calendar struct {
	loc *time.Location
}

// NewCalendar создает календарь для часового пояса по имени IANA ("Europe/Moscow", "UTC")
func NewCalendar(timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("timeutil: unknown timezone %q: %w", timezone, err)
	}
	return &Calendar{loc: loc}, nil
}

// NewCalendarIn создает календарь для уже загруженной локации
func NewCalendarIn(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc}
}

// Location возвращает часовой пояс календаря
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// SameCalendarDay проверяет, что a и b попадают в один и тот же локальный календарный день
func (c *Calendar) SameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.In(c.loc).Date()
	y2, m2, d2 := b.In(c.loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DayBounds возвращает локальную полночь дня t и полночь следующего дня
// Следующий день считается через календарь, а не прибавлением 24 часов,
// поэтому дни перехода на летнее/зимнее время обрабатываются корректно
func (c *Calendar) DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.In(c.loc).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	end = time.Date(y, m, d+1, 0, 0, 0, 0, c.loc)
	return start, end
}

// ParseDate разбирает дату "YYYY-MM-DD" как локальный день календаря
func (c *Calendar) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, value, c.loc)
}
