// File: services/booking/crud_test.go
package booking

import (
	"context"
	"testing"

	"reservekit/models"
	"reservekit/utils"
)

func TestGetBookingCustomer(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Name: "Ada", Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	customer, err := svc.GetBookingCustomer(context.Background(), provider, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.Email != "ada@example.com" || customer.Name != "Ada" {
		t.Fatalf("wrong customer returned: %+v", customer)
	}
}

func TestUpdateBookingCustomerPatchesContact(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Name: "Ada", Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	updated, err := svc.UpdateBookingCustomer(context.Background(), provider, b.ID, models.CustomerInfo{
		Phone: "+1 555 0100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Phone != "+1 555 0100" {
		t.Fatalf("phone not patched: %q", updated.Phone)
	}
	// Untouched fields survive the patch.
	if updated.Email != "ada@example.com" || updated.Name != "Ada" {
		t.Fatalf("existing contact fields lost: %+v", updated)
	}
}

func TestUpdateBookingCustomerRejectsBadPhone(t *testing.T) {
	svc, provider, _, _ := newTestService(5)
	b, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
		TimeSlotID: "slot-fri",
		Date:       "2026-08-28",
		Customer:   models.CustomerInfo{Email: "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err = svc.UpdateBookingCustomer(context.Background(), provider, b.ID, models.CustomerInfo{
		Phone: "call me",
	})
	if code := apiCode(t, err); code != utils.CodeInvalidFieldFormat {
		t.Fatalf("expected %s, got %s", utils.CodeInvalidFieldFormat, code)
	}
}

func TestListBookings(t *testing.T) {
	svc, provider, _, _ := newTestService(10)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.CreateBooking(context.Background(), provider, "svc-1", models.CreateBookingRequest{
			TimeSlotID: "slot-fri",
			Date:       "2026-08-28",
			Customer:   models.CustomerInfo{Email: email},
		}); err != nil {
			t.Fatalf("booking failed: %v", err)
		}
	}

	bookings, pagination, err := svc.ListBookings(context.Background(), provider, "svc-1", utils.PageRequest{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(bookings))
	}
	if pagination.TotalCount != 3 || pagination.CurrentPage != 1 {
		t.Fatalf("wrong pagination meta: %+v", pagination)
	}
}

func TestListBookingsUnknownService(t *testing.T) {
	svc, provider, _, _ := newTestService(5)

	_, _, err := svc.ListBookings(context.Background(), provider, "svc-missing", utils.PageRequest{Page: 1, PageSize: 20})
	if code := apiCode(t, err); code != utils.CodeServiceNotFound {
		t.Fatalf("expected %s, got %s", utils.CodeServiceNotFound, code)
	}
}
