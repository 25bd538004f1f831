// File: services/catalog/validation_test.go
package catalog

import (
	"testing"
	"time"

	"reservekit/models"
)

func intPtr(v int) *int { return &v }

func clockTime(hour, min int) time.Time {
	return time.Date(0, time.January, 1, hour, min, 0, 0, time.UTC)
}

func validInput(day int) models.TimeSlotInput {
	return models.TimeSlotInput{
		DayOfWeek:   intPtr(day),
		StartTime:   clockTime(9, 0),
		EndTime:     clockTime(10, 0),
		MaxBookings: 3,
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, tz := range []string{"UTC", "Europe/Berlin", "America/New_York"} {
		if err := validateTimezone(tz); err != nil {
			t.Fatalf("expected %q to be valid: %v", tz, err)
		}
	}
	for _, tz := range []string{"", "CEST", "Mars/Olympus"} {
		if err := validateTimezone(tz); err == nil {
			t.Fatalf("expected %q to be rejected", tz)
		}
	}
}

func TestValidateSlotInputAcceptsValid(t *testing.T) {
	if slotErr := validateSlotInput(0, validInput(5)); slotErr != nil {
		t.Fatalf("expected valid slot, got %+v", slotErr)
	}
}

func TestValidateSlotInputChecksDayRange(t *testing.T) {
	in := validInput(0)
	in.DayOfWeek = nil
	if slotErr := validateSlotInput(0, in); slotErr == nil || slotErr.Field != "day_of_week" {
		t.Fatalf("expected day_of_week error, got %+v", slotErr)
	}
	for _, day := range []int{-1, 7, 12} {
		if slotErr := validateSlotInput(0, validInput(day)); slotErr == nil || slotErr.Field != "day_of_week" {
			t.Fatalf("expected day_of_week error for %d, got %+v", day, slotErr)
		}
	}
}

func TestValidateSlotInputChecksTimeOrder(t *testing.T) {
	in := validInput(3)
	in.StartTime = clockTime(14, 0)
	in.EndTime = clockTime(13, 0)
	if slotErr := validateSlotInput(0, in); slotErr == nil || slotErr.Field != "start_time" {
		t.Fatalf("expected start_time error, got %+v", slotErr)
	}

	// Zero-length windows are rejected too.
	in.EndTime = clockTime(14, 0)
	if slotErr := validateSlotInput(0, in); slotErr == nil {
		t.Fatal("expected error for start_time == end_time")
	}
}

func TestValidateSlotInputChecksCapacity(t *testing.T) {
	in := validInput(3)
	in.MaxBookings = 0
	if slotErr := validateSlotInput(0, in); slotErr == nil || slotErr.Field != "max_bookings" {
		t.Fatalf("expected max_bookings error, got %+v", slotErr)
	}
}

// A batch with several bad entries reports every failure with its index so
// the caller can reject the whole request at once.
func TestValidateSlotInputsCollectsAllFailures(t *testing.T) {
	badDay := validInput(9)
	badCap := validInput(2)
	badCap.MaxBookings = -1

	errs := validateSlotInputs([]models.TimeSlotInput{
		validInput(1),
		badDay,
		validInput(3),
		badCap,
	})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %+v", len(errs), errs)
	}
	if errs[0].Index != 1 || errs[0].Field != "day_of_week" {
		t.Fatalf("wrong first error: %+v", errs[0])
	}
	if errs[1].Index != 3 || errs[1].Field != "max_bookings" {
		t.Fatalf("wrong second error: %+v", errs[1])
	}
}

func TestSlotFromInputCarriesFields(t *testing.T) {
	in := validInput(4)
	in.ID = "slot-1"
	in.Version = 7

	slot := slotFromInput(in)
	if slot.ID != "slot-1" || slot.DayOfWeek != 4 || slot.MaxBookings != 3 || slot.Version != 7 {
		t.Fatalf("fields lost in conversion: %+v", slot)
	}
}
