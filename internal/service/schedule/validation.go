package schedule

import (
	"fmt"

	"github.com/clinicore/CBS-BookingService/internal/domain"
	"github.com/clinicore/CBS-BookingService/internal/service/schedule/models"
)

// validateConfigRequest проверяет инварианты конфигурации расписания
func validateConfigRequest(req *models.UpsertConfigRequest) error {
	if req.ClinicID <= 0 || req.SpecializationID <= 0 {
		return fmt.Errorf("%w: clinicID and specializationID must be positive", ErrInvalidInput)
	}

	if len(req.Weekdays) == 0 {
		return fmt.Errorf("%w: weekdays must not be empty", ErrInvalidInput)
	}

	seen := make(map[int]struct{}, len(req.Weekdays))
	for _, day := range req.Weekdays {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: weekday %d is out of range [0..6]", ErrInvalidInput, day)
		}
		if _, ok := seen[day]; ok {
			return fmt.Errorf("%w: weekday %d is duplicated", ErrInvalidInput, day)
		}
		seen[day] = struct{}{}
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start time %s must be before end time %s",
			ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be in [%d..%d] minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	// Обед: оба времени заданы или оба опущены, интервал внутри рабочего окна
	if (req.LunchStart == nil) != (req.LunchEnd == nil) {
		return fmt.Errorf("%w: lunch start and lunch end must be set together", ErrInvalidInput)
	}
	if req.LunchStart != nil {
		if err := req.LunchStart.Validate(); err != nil {
			return fmt.Errorf("%w: lunch start: %v", ErrInvalidInput, err)
		}
		if err := req.LunchEnd.Validate(); err != nil {
			return fmt.Errorf("%w: lunch end: %v", ErrInvalidInput, err)
		}
		if !req.LunchStart.IsBefore(*req.LunchEnd) {
			return fmt.Errorf("%w: lunch start %s must be before lunch end %s",
				ErrInvalidTimeRange, *req.LunchStart, *req.LunchEnd)
		}
		if req.LunchStart.IsBefore(req.StartTime) || req.LunchEnd.IsAfter(req.EndTime) {
			return fmt.Errorf("%w: lunch break must be inside working window %s-%s",
				ErrInvalidTimeRange, req.StartTime, req.EndTime)
		}
	}

	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return fmt.Errorf("%w: validUntil must not be before validFrom", ErrInvalidInput)
	}

	return nil
}

// validateExceptionRequest проверяет инварианты блокировки времени
func validateExceptionRequest(req *models.CreateExceptionRequest) error {
	if req.ClinicID <= 0 || req.SpecializationID <= 0 {
		return fmt.Errorf("%w: clinicID and specializationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Оба времени заданы (частичная блокировка) или оба опущены (весь день)
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return fmt.Errorf("%w: start time and end time must be set together", ErrInvalidInput)
	}
	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
		}
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: start time %s must be before end time %s",
				ErrInvalidTimeRange, *req.StartTime, *req.EndTime)
		}
	}

	switch domain.ExceptionKind(req.Kind) {
	case domain.ExceptionBlackout, domain.ExceptionHoliday, domain.ExceptionEvent, domain.ExceptionCustom:
	default:
		return fmt.Errorf("%w: unknown exception kind %q", ErrInvalidInput, req.Kind)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
