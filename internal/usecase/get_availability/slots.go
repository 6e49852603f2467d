package get_availability

import (
	"fmt"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/pkg/types"
)

// generateTimeGrid генерирует сетку слотов по конфигурации расписания
// Сетка строится в целых минутах от начала дня: слот [t, t+duration) входит
// в выдачу, только если его конец не выходит за конец рабочего окна.
// Слоты, пересекающиеся с обеденным перерывом хотя бы частично, исключаются.
func generateTimeGrid(config *domain.ScheduleConfig) ([]domain.Slot, error) {
	startMinutes, err := config.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", config.StartTime, err)
	}

	endMinutes, err := config.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", config.EndTime, err)
	}

	duration := config.SlotDurationMinutes
	if duration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", duration)
	}

	lunchStart, lunchEnd := -1, -1
	if config.HasLunchBreak() {
		lunchStart, err = config.LunchStart.Minutes()
		if err != nil {
			return nil, fmt.Errorf("invalid lunch start %q: %w", *config.LunchStart, err)
		}
		lunchEnd, err = config.LunchEnd.Minutes()
		if err != nil {
			return nil, fmt.Errorf("invalid lunch end %q: %w", *config.LunchEnd, err)
		}
	}

	slots := make([]domain.Slot, 0)
	for t := startMinutes; t+duration <= endMinutes; t += duration {
		slotStart, slotEnd := t, t+duration

		// Любое пересечение с обедом выводит слот из сетки
		if lunchStart >= 0 && slotStart < lunchEnd && slotEnd > lunchStart {
			continue
		}

		start, err := types.NewTimeStringFromMinutes(slotStart)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromMinutes(slotEnd % (24 * 60))
		if err != nil {
			return nil, err
		}
		if slotEnd == 24*60 {
			end = types.TimeString("24:00")
		}

		slots = append(slots, domain.Slot{Start: start, End: end})
	}

	return slots, nil
}

// applyExceptions фильтрует сетку по активным исключениям на дату
// Полнодневное исключение обнуляет выдачу целиком. Частичное исключение
// убирает слот, если его НАЧАЛО попадает в интервал [start, end) исключения:
// слот, начавшийся до блокировки, остается в выдаче.
// Возвращает отфильтрованную сетку и полнодневное исключение, если оно есть.
func applyExceptions(slots []domain.Slot, exceptions []*domain.ScheduleException) ([]domain.Slot, *domain.ScheduleException) {
	for _, exc := range exceptions {
		if exc.IsFullDay() {
			return []domain.Slot{}, exc
		}
	}

	if len(exceptions) == 0 {
		return slots, nil
	}

	filtered := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		blocked := false
		for _, exc := range exceptions {
			if exc.BlocksTime(slot.Start) {
				blocked = true
				break
			}
		}
		if !blocked {
			filtered = append(filtered, slot)
		}
	}

	return filtered, nil
}

// splitOccupied делит сетку на свободные и занятые слоты по активным бронированиям
// Занятость определяется точным совпадением времени начала (HH:MM)
func splitOccupied(slots []domain.Slot, bookings []*domain.Booking) ([]domain.Slot, []types.TimeString) {
	occupied := make([]types.TimeString, 0, len(bookings))
	occupiedSet := make(map[types.TimeString]struct{}, len(bookings))

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if _, ok := occupiedSet[booking.StartTime]; ok {
			continue
		}
		occupiedSet[booking.StartTime] = struct{}{}
		occupied = append(occupied, booking.StartTime)
	}

	available := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := occupiedSet[slot.Start]; ok {
			continue
		}
		available = append(available, slot)
	}

	return available, occupied
}

// legacySlotsToGrid конвертирует материализованные слоты старой модели в сетку
func legacySlotsToGrid(legacySlots []*domain.LegacySlot) []domain.Slot {
	slots := make([]domain.Slot, 0, len(legacySlots))
	for _, ls := range legacySlots {
		slots = append(slots, domain.Slot{Start: ls.StartTime, End: ls.EndTime})
	}
	return slots
}
