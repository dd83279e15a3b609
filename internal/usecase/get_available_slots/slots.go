package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CoworkingBooking/internal/domain"
	"github.com/m04kA/SMC-CoworkingBooking/pkg/timeutil"
)

// generateGrid строит сетку слотов [dayStartHour, dayEndHour) с шагом step минут
// в часовом поясе loc. Последний слот не выходит за конец рабочего дня
func generateGrid(day time.Time, loc *time.Location, opts Options) []domain.AvailableSlot {
	y, m, d := day.In(loc).Date()
	gridStart := time.Date(y, m, d, opts.DayStartHour, 0, 0, 0, loc)
	gridEnd := time.Date(y, m, d, opts.DayEndHour, 0, 0, 0, loc)
	step := time.Duration(opts.SlotStepMinutes) * time.Minute

	slots := make([]domain.AvailableSlot, 0)
	for start := gridStart; !start.Add(step).After(gridEnd); start = start.Add(step) {
		slots = append(slots, domain.AvailableSlot{
			Start:     start,
			End:       start.Add(step),
			Available: true,
		})
	}

	return slots
}

// markOccupied снимает доступность со слотов, которые пересекаются с бронированиями
// или блокировками либо уже начались к моменту now
// Касание концами пересечением не считается
func markOccupied(
	slots []domain.AvailableSlot,
	bookings []*domain.Booking,
	blocks []*domain.BlockedSlot,
	now time.Time,
) []domain.AvailableSlot {
	for i := range slots {
		slot := &slots[i]

		if slot.Start.Before(now) {
			slot.Available = false
		}

		for _, block := range blocks {
			if timeutil.Overlaps(slot.Start, slot.End, block.Start, block.End) {
				slot.Available = false
				slot.Blocked = true
				break
			}
		}

		if !slot.Available {
			continue
		}

		for _, booking := range bookings {
			if booking.HoldsSlot() && timeutil.Overlaps(slot.Start, slot.End, booking.Start, booking.End) {
				slot.Available = false
				break
			}
		}
	}

	return slots
}
