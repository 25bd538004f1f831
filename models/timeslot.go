package models

import "time"

// TimeSlot is a recurring weekly availability rule scoped to a service. The
// date portion of StartTime/EndTime is a placeholder; only the time of day is
// meaningful. DayOfWeek indexing follows the configured week start (see the
// clock resolver).
type TimeSlot struct {
	ID          string    `bson:"id" json:"id"`
	ServiceID   string    `bson:"service_id" json:"service_id"`
	DayOfWeek   int       `bson:"day_of_week" json:"day_of_week"`
	StartTime   time.Time `bson:"start_time" json:"start_time"`
	EndTime     time.Time `bson:"end_time" json:"end_time"`
	MaxBookings int       `bson:"max_bookings" json:"max_bookings"`
	Version     int       `bson:"version" json:"version"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// MinuteOfDay returns the minutes past midnight of t's wall clock, ignoring
// the placeholder date.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// TimeSlotInput is one entry of a batch upsert. A non-empty ID updates the
// existing slot in place; an empty ID inserts a new one.
type TimeSlotInput struct {
	ID          string    `json:"id"`
	DayOfWeek   *int      `json:"day_of_week"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MaxBookings int       `json:"max_bookings"`
	Version     int       `json:"version"`
}

// BatchUpsertTimeSlotsRequest is the payload for PATCH /v1/time-slots.
type BatchUpsertTimeSlotsRequest struct {
	ServiceID string          `json:"service_id"`
	TimeSlots []TimeSlotInput `json:"time_slots"`
}

// TimeSlotError reports a per-slot validation failure inside a rejected batch.
type TimeSlotError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Occurrence is the persisted capacity counter for one concrete
// (time_slot_id, date) instantiation of a TimeSlot. Booked counts
// non-cancelled bookings and is reconstructible from the bookings collection.
type Occurrence struct {
	TimeSlotID  string `bson:"time_slot_id" json:"time_slot_id"`
	Date        string `bson:"date" json:"date"`
	Booked      int    `bson:"booked" json:"booked"`
	MaxBookings int    `bson:"max_bookings" json:"max_bookings"`
}
