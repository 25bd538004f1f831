// File: services/booking/harness_test.go
package booking

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	bookingRepo "reservekit/database/repository/booking"
	"reservekit/models"
)

// memCatalog is an in-memory SlotCatalog for pipeline tests.
type memCatalog struct {
	services map[string]*models.Service
	slots    map[string][]models.TimeSlot
}

func (m *memCatalog) GetService(_ context.Context, providerID, serviceID string) (*models.Service, error) {
	svc, ok := m.services[serviceID]
	if !ok || svc.ProviderID != providerID {
		return nil, mongo.ErrNoDocuments
	}
	cp := *svc
	return &cp, nil
}

func (m *memCatalog) SlotsForWeekday(_ context.Context, serviceID string, dayOfWeek int) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	for _, slot := range m.slots[serviceID] {
		if slot.DayOfWeek == dayOfWeek {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (m *memCatalog) GetSlot(_ context.Context, serviceID, slotID string) (*models.TimeSlot, error) {
	for _, slot := range m.slots[serviceID] {
		if slot.ID == slotID {
			cp := slot
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// memStore is an in-memory BookingStore that mirrors the mongo repository's
// semantics: duplicate guard, per-occurrence seat counting, and atomic
// admission. failBefore injects transient errors for retry tests; updateErr
// is returned once by the next Update call.
type memStore struct {
	mu         sync.Mutex
	bookings   map[string]*models.Booking
	seats      map[string]int
	events     []*models.WebhookEvent
	failBefore int
	updateErr  error
}

func newMemStore() *memStore {
	return &memStore{
		bookings: make(map[string]*models.Booking),
		seats:    make(map[string]int),
	}
}

func seatKey(slotID, date string) string { return slotID + "|" + date }

func transientErr() error {
	return mongo.CommandError{
		Code:    112,
		Message: "WriteConflict",
		Labels:  []string{"TransientTransactionError"},
	}
}

func (m *memStore) hasLiveDuplicate(b *models.Booking) bool {
	for _, other := range m.bookings {
		if other.ID == b.ID {
			continue
		}
		if other.CustomerID == b.CustomerID &&
			other.TimeSlotID == b.TimeSlotID &&
			other.Date == b.Date &&
			other.Status != models.BookingStatusCancelled {
			return true
		}
	}
	return false
}

func (m *memStore) AdmitBooking(_ context.Context, b *models.Booking, maxBookings int, event *models.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failBefore > 0 {
		m.failBefore--
		return transientErr()
	}
	if m.hasLiveDuplicate(b) {
		return bookingRepo.ErrDuplicateBooking
	}
	key := seatKey(b.TimeSlotID, b.Date)
	if m.seats[key] >= maxBookings {
		return bookingRepo.ErrSlotFull
	}
	m.seats[key]++
	cp := *b
	m.bookings[b.ID] = &cp
	m.events = append(m.events, event)
	return nil
}

func (m *memStore) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) ListByService(_ context.Context, serviceID string, skip, limit int64) ([]models.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ServiceID == serviceID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memStore) Update(_ context.Context, b *models.Booking, releaseSeat bool, event *models.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		err := m.updateErr
		m.updateErr = nil
		return err
	}
	if _, ok := m.bookings[b.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	if releaseSeat {
		key := seatKey(b.TimeSlotID, b.Date)
		if m.seats[key] > 0 {
			m.seats[key]--
		}
	}
	cp := *b
	m.bookings[b.ID] = &cp
	if event != nil {
		m.events = append(m.events, event)
	}
	return nil
}

func (m *memStore) MoveDate(_ context.Context, b *models.Booking, oldDate string, maxBookings int, event *models.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[b.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	if m.hasLiveDuplicate(b) {
		return bookingRepo.ErrDuplicateBooking
	}
	newKey := seatKey(b.TimeSlotID, b.Date)
	if m.seats[newKey] >= maxBookings {
		return bookingRepo.ErrSlotFull
	}
	m.seats[newKey]++
	oldKey := seatKey(b.TimeSlotID, oldDate)
	if m.seats[oldKey] > 0 {
		m.seats[oldKey]--
	}
	cp := *b
	m.bookings[b.ID] = &cp
	if event != nil {
		m.events = append(m.events, event)
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, b *models.Booking, releaseSeat bool, event *models.WebhookEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[b.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.bookings, b.ID)
	if releaseSeat {
		key := seatKey(b.TimeSlotID, b.Date)
		if m.seats[key] > 0 {
			m.seats[key]--
		}
	}
	if event != nil {
		m.events = append(m.events, event)
	}
	return nil
}

func (m *memStore) seatCount(slotID, date string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seats[seatKey(slotID, date)]
}

// memCustomers dedups by (service, email), then (service, phone), matching
// the mongo customer repository.
type memCustomers struct {
	mu        sync.Mutex
	customers map[string]*models.Customer
	nextID    int
}

func newMemCustomers() *memCustomers {
	return &memCustomers{customers: make(map[string]*models.Customer)}
}

func (m *memCustomers) UpsertByContact(_ context.Context, serviceID string, info models.CustomerInfo) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if info.Email != "" {
		for _, c := range m.customers {
			if c.ServiceID == serviceID && c.Email == info.Email {
				cp := *c
				return &cp, nil
			}
		}
	} else if info.Phone != "" {
		for _, c := range m.customers {
			if c.ServiceID == serviceID && c.Phone == info.Phone {
				cp := *c
				return &cp, nil
			}
		}
	}

	m.nextID++
	c := &models.Customer{
		ID:        fmt.Sprintf("cust-%d", m.nextID),
		ServiceID: serviceID,
		Name:      info.Name,
		Email:     info.Email,
		Phone:     info.Phone,
	}
	m.customers[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *memCustomers) GetByID(_ context.Context, customerID string) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[customerID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomers) Update(_ context.Context, customer *models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[customer.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *customer
	m.customers[customer.ID] = &cp
	return nil
}

// memNotifier records event ids handed to the dispatcher.
type memNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (m *memNotifier) Notify(_ context.Context, eventID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append(m.ids, eventID)
}

func (m *memNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ids)
}

// newTestService wires a pipeline over one provider, one service in UTC, and
// one Friday slot with the given capacity.
func newTestService(capacity int) (*DefaultBookingService, *models.Provider, *memStore, *memNotifier) {
	provider := &models.Provider{ID: "prov-1", Name: "Test Provider"}
	catalog := &memCatalog{
		services: map[string]*models.Service{
			"svc-1": {ID: "svc-1", ProviderID: "prov-1", Name: "Haircut", Timezone: "UTC"},
		},
		slots: map[string][]models.TimeSlot{
			"svc-1": {
				{ID: "slot-fri", ServiceID: "svc-1", DayOfWeek: 5, MaxBookings: capacity},
				{ID: "slot-mon", ServiceID: "svc-1", DayOfWeek: 1, MaxBookings: capacity},
			},
		},
	}
	store := newMemStore()
	notifier := &memNotifier{}
	svc := &DefaultBookingService{
		Catalog:   catalog,
		Bookings:  store,
		Customers: newMemCustomers(),
		Notifier:  notifier,
	}
	return svc, provider, store, notifier
}
