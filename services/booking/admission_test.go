// File: services/booking/admission_test.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"reservekit/models"
	"reservekit/utils"
)

func apiCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *utils.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	return apiErr.Code
}

func TestCreateBooking(t *testing.T) {
	svc, provider, store, notifier := newTestService(3)

	b, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Name: "Ada", Email: "ada@example.com"},
		Message:    "first visit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("expected pending status, got %q", b.Status)
	}
	if b.CustomerID == "" || b.ID == "" {
		t.Fatal("expected booking and customer ids to be set")
	}
	if got := store.seatCount("slot-fri", "2026-08-28"); got != 1 {
		t.Fatalf("expected 1 seat taken, got %d", got)
	}
	if notifier.count() != 1 {
		t.Fatalf("expected 1 webhook notification, got %d", notifier.count())
	}
	if len(store.events) != 1 || store.events[0].Type != models.EventBookingCreated {
		t.Fatal("expected a booking.created event in the outbox")
	}
}

func TestCreateBookingRejectsDuplicate(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	req := models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	}

	if _, err := svc.CreateBooking(context.Background(), provider, "svc-1", req); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := svc.CreateBooking(context.Background(), provider, "svc-1", req)
	if code := apiCode(t, err); code != utils.CodeDuplicateBooking {
		t.Fatalf("expected %s, got %s", utils.CodeDuplicateBooking, code)
	}
}

func TestCreateBookingSameCustomerDifferentDate(t *testing.T) {
	svc, provider, _, _ := newTestService(5)

	first, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	second, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-09-04",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("second booking failed: %v", err)
	}
	if first.CustomerID != second.CustomerID {
		t.Fatal("expected both bookings to resolve to the same customer")
	}
}

func TestCreateBookingSlotFull(t *testing.T) {
	svc, provider, _, _ := newTestService(1)

	if _, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "bob@example.com"},
	})
	if code := apiCode(t, err); code != utils.CodeTimeSlotFull {
		t.Fatalf("expected %s, got %s", utils.CodeTimeSlotFull, code)
	}
}

func TestCreateBookingCapacityUnderConcurrency(t *testing.T) {
	const capacity = 5
	const contenders = 20
	svc, provider, store, _ := newTestService(capacity)

	var wg sync.WaitGroup
	errs := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
				TimeSlotID: "slot-fri",
				Date:       "2026-08-28",
				Customer:   models.CustomerInfo{Email: fmt.Sprintf("c%d@example.com", i)},
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var admitted, full int
	for err := range errs {
		if err == nil {
			admitted++
			continue
		}
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) && apiErr.Code == utils.CodeTimeSlotFull {
			full++
			continue
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if admitted != capacity {
		t.Fatalf("expected exactly %d admitted, got %d", capacity, admitted)
	}
	if full != contenders-capacity {
		t.Fatalf("expected %d rejections, got %d", contenders-capacity, full)
	}
	if got := store.seatCount("slot-fri", "2026-08-28"); got != capacity {
		t.Fatalf("seat counter drifted: %d", got)
	}
}

func TestCreateBookingWrongWeekday(t *testing.T) {
	svc, provider, _, _ := newTestService(5)

	// 2026-08-31 is a Monday; slot-fri only runs on Fridays.
	_, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-31",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if code := apiCode(t, err); code != utils.CodeTimeSlotNotFound {
		t.Fatalf("expected %s, got %s", utils.CodeTimeSlotNotFound, code)
	}
}

func TestCreateBookingInvalidDate(t *testing.T) {
	svc, provider, _, _ := newTestService(5)

	_, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-02-30",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if code := apiCode(t, err); code != utils.CodeInvalidFieldFormat {
		t.Fatalf("expected %s, got %s", utils.CodeInvalidFieldFormat, code)
	}
}

func TestCreateBookingInvalidCustomerEmail(t *testing.T) {
	svc, provider, _, _ := newTestService(5)

	_, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "not-an-email"},
	})
	if code := apiCode(t, err); code != utils.CodeInvalidFieldFormat {
		t.Fatalf("expected %s, got %s", utils.CodeInvalidFieldFormat, code)
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	svc, provider, _, _ := newTestService(5)

	_, err := svc.CreateBooking(context.Background(), provider, "svc-missing", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
	})
	if code := apiCode(t, err); code != utils.CodeServiceNotFound {
		t.Fatalf("expected %s, got %s", utils.CodeServiceNotFound, code)
	}
}

func TestCreateBookingRetriesTransientConflicts(t *testing.T) {
	svc, provider, store, notifier := newTestService(5)
	store.failBefore = 2

	b, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("expected admission to succeed after retries: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("unexpected status %q", b.Status)
	}
	if notifier.count() != 1 {
		t.Fatalf("expected exactly one notification, got %d", notifier.count())
	}
}

func TestCreateBookingGivesUpAfterTransientRetries(t *testing.T) {
	svc, provider, store, notifier := newTestService(5)
	store.failBefore = admissionRetries

	_, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if err == nil {
		t.Fatal("expected admission to fail")
	}
	if notifier.count() != 0 {
		t.Fatal("no notification should fire for a failed admission")
	}
	if got := store.seatCount("slot-fri", "2026-08-28"); got != 0 {
		t.Fatalf("failed admission must not hold a seat, got %d", got)
	}
}
