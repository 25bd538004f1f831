// File: services/booking/state_test.go
package booking

import (
	"context"
	"testing"

	bookingRepo "reservekit/database/repository/booking"
	"reservekit/models"
	"reservekit/utils"
)

func strPtr(s string) *string { return &s }

func mustBook(t *testing.T, svc *DefaultBookingService, provider *models.Provider, email string) *models.Booking {
	t.Helper()
	b, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: email},
	})
	if err != nil {
		t.Fatalf("booking setup failed: %v", err)
	}
	return b
}

func TestConfirmBooking(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	updated, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status: strPtr(models.BookingStatusConfirmed),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %q", updated.Status)
	}
}

func TestCancelRequiresReason(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	_, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status: strPtr(models.BookingStatusCancelled),
	})
	if code := apiCode(t, err); code != utils.CodeMissingRequiredField {
		t.Fatalf("expected %s, got %s", utils.CodeMissingRequiredField, code)
	}
}

func TestCancelReleasesSeatForRebooking(t *testing.T) {
	svc, provider, store, _ := newTestService(1)
	b := mustBook(t, svc, provider, "ada@example.com")

	if _, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status:       strPtr(models.BookingStatusCancelled),
		CancelReason: strPtr("customer request"),
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got := store.seatCount("slot-fri", "2026-08-28"); got != 0 {
		t.Fatalf("expected seat released, counter is %d", got)
	}

	// The freed seat must be immediately bookable by someone else.
	if _, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "bob@example.com"},
	}); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
}

func TestCancelledCustomerCanRebookSameOccurrence(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	if _, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status:       strPtr(models.BookingStatusCancelled),
		CancelReason: strPtr("changed plans"),
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// A cancelled booking no longer counts toward the duplicate guard.
	if _, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	}); err != nil {
		t.Fatalf("rebooking after own cancel failed: %v", err)
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	if _, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status:       strPtr(models.BookingStatusCancelled),
		CancelReason: strPtr("changed plans"),
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	for _, to := range []string{models.BookingStatusPending, models.BookingStatusConfirmed} {
		_, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
			Status: strPtr(to),
		})
		if code := apiCode(t, err); code != utils.CodeInvalidTransition {
			t.Fatalf("expected %s for cancelled->%s, got %s", utils.CodeInvalidTransition, to, code)
		}
	}
}

func TestConfirmedCannotRevertToPending(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	if _, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status: strPtr(models.BookingStatusConfirmed),
	}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	_, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status: strPtr(models.BookingStatusPending),
	})
	if code := apiCode(t, err); code != utils.CodeInvalidTransition {
		t.Fatalf("expected %s, got %s", utils.CodeInvalidTransition, code)
	}
}

func TestMoveBookingDate(t *testing.T) {
	svc, provider, store, _ := newTestService(1)
	b := mustBook(t, svc, provider, "ada@example.com")

	moved, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Date: strPtr("2026-09-04"),
	})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if moved.Date != "2026-09-04" {
		t.Fatalf("expected moved date, got %q", moved.Date)
	}
	if got := store.seatCount("slot-fri", "2026-08-28"); got != 0 {
		t.Fatalf("old seat not released: %d", got)
	}
	if got := store.seatCount("slot-fri", "2026-09-04"); got != 1 {
		t.Fatalf("new seat not taken: %d", got)
	}
}

func TestMoveBookingDateToWrongWeekday(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	// 2026-08-31 is a Monday; the slot runs Fridays.
	_, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Date: strPtr("2026-08-31"),
	})
	if code := apiCode(t, err); code != utils.CodeTimeSlotNotFound {
		t.Fatalf("expected %s, got %s", utils.CodeTimeSlotNotFound, code)
	}
}

func TestMoveBookingDateAndStatusTogetherRejected(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	_, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Date:   strPtr("2026-09-04"),
		Status: strPtr(models.BookingStatusConfirmed),
	})
	if code := apiCode(t, err); code != utils.CodeInvalidRequest {
		t.Fatalf("expected %s, got %s", utils.CodeInvalidRequest, code)
	}
}

func TestUpdateMessageOnly(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	updated, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Message: strPtr("bring own towel"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Message != "bring own towel" {
		t.Fatalf("message not updated: %q", updated.Message)
	}
	if updated.Status != models.BookingStatusPending {
		t.Fatalf("status must not change on message edit, got %q", updated.Status)
	}
}

func TestDeleteBookingReleasesSeat(t *testing.T) {
	svc, provider, store, _ := newTestService(1)
	b := mustBook(t, svc, provider, "ada@example.com")

	if err := svc.DeleteBooking(context.Background(), provider, b.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := store.seatCount("slot-fri", "2026-08-28"); got != 0 {
		t.Fatalf("expected seat released, counter is %d", got)
	}
}

func TestDeleteCancelledBookingDoesNotReleaseTwice(t *testing.T) {
	svc, provider, store, _ := newTestService(2)
	b := mustBook(t, svc, provider, "ada@example.com")
	mustBook(t, svc, provider, "bob@example.com")

	if _, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status:       strPtr(models.BookingStatusCancelled),
		CancelReason: strPtr("changed plans"),
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := svc.DeleteBooking(context.Background(), provider, b.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	// Cancel released ada's seat; delete must not also release bob's.
	if got := store.seatCount("slot-fri", "2026-08-28"); got != 1 {
		t.Fatalf("expected 1 seat still held, got %d", got)
	}
}

func TestConcurrentUpdateSurfacesVersionConflict(t *testing.T) {
	svc, provider, store, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	// Another writer bumped the version between our read and write.
	store.updateErr = bookingRepo.ErrVersionConflict
	_, err := svc.UpdateBooking(context.Background(), provider, b.ID, models.UpdateBookingRequest{
		Status: strPtr(models.BookingStatusConfirmed),
	})
	if code := apiCode(t, err); code != utils.CodeVersionConflict {
		t.Fatalf("expected %s, got %s", utils.CodeVersionConflict, code)
	}
}

func TestBookingInvisibleToOtherProviders(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b := mustBook(t, svc, provider, "ada@example.com")

	stranger := &models.Provider{ID: "prov-2"}
	_, err := svc.GetBooking(context.Background(), stranger, b.ID)
	if code := apiCode(t, err); code != utils.CodeBookingNotFound {
		t.Fatalf("expected %s, got %s", utils.CodeBookingNotFound, code)
	}
}
