// File: services/catalog/validation.go
package catalog

import (
	"fmt"
	"time"

	"reservekit/models"
	"reservekit/utils"
)

// validateTimezone accepts only recognized IANA zone names.
func validateTimezone(tz string) error {
	if tz == "" {
		return utils.NewValidationError(utils.CodeMissingRequiredField, "timezone is required")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return utils.NewValidationError(utils.CodeInvalidFieldFormat,
			fmt.Sprintf("unrecognized IANA timezone %q", tz))
	}
	return nil
}

// validateSlotInput checks one batch entry; the returned error carries the
// slot's index so the whole batch can be rejected with per-slot details.
func validateSlotInput(index int, in models.TimeSlotInput) *models.TimeSlotError {
	if in.DayOfWeek == nil {
		return &models.TimeSlotError{Index: index, Field: "day_of_week", Message: "day_of_week is required"}
	}
	if *in.DayOfWeek < 0 || *in.DayOfWeek > 6 {
		return &models.TimeSlotError{Index: index, Field: "day_of_week", Message: "day_of_week must be between 0 and 6"}
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return &models.TimeSlotError{Index: index, Field: "start_time", Message: "start_time and end_time are required"}
	}
	if models.MinuteOfDay(in.StartTime) >= models.MinuteOfDay(in.EndTime) {
		return &models.TimeSlotError{Index: index, Field: "start_time", Message: "start_time must be before end_time"}
	}
	if in.MaxBookings < 1 {
		return &models.TimeSlotError{Index: index, Field: "max_bookings", Message: "max_bookings must be at least 1"}
	}
	return nil
}

// validateSlotInputs checks the whole batch and collects every failure.
func validateSlotInputs(inputs []models.TimeSlotInput) []models.TimeSlotError {
	var errs []models.TimeSlotError
	for i, in := range inputs {
		if slotErr := validateSlotInput(i, in); slotErr != nil {
			errs = append(errs, *slotErr)
		}
	}
	return errs
}

func slotFromInput(in models.TimeSlotInput) models.TimeSlot {
	return models.TimeSlot{
		ID:          in.ID,
		DayOfWeek:   *in.DayOfWeek,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		MaxBookings: in.MaxBookings,
		Version:     in.Version,
	}
}
