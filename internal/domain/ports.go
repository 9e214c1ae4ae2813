package domain

import "context"

// BookingRepository is the stateless gateway to booking storage. Read
// paths report absence as (nil, nil) / empty slice, never as an error;
// the service is the sole translator from absence to a domain failure.
//
// The write paths are conditional: inside one transaction the target
// room is locked, occupancy re-counted, and the write applied only if a
// slot remains. When a concurrent writer filled the room first they
// fail with ErrForbidden (ErrNotFound if the room vanished), so
// occupancy can never exceed capacity even though the service's own
// capacity check is a separate read.
type BookingRepository interface {
	// Read paths
	GetBookingByUserID(ctx context.Context, userID int64) (*BookingView, error)
	GetBookingByID(ctx context.Context, id int64) (*Booking, error)
	ListBookingsByRoomID(ctx context.Context, roomID int64) ([]Booking, error)
	GetRoomByID(ctx context.Context, id int64) (*Room, error)

	// Write paths
	InsertBooking(ctx context.Context, roomID, userID int64) (int64, error)
	UpdateBookingRoom(ctx context.Context, bookingID, roomID int64) error
}

// TicketRepository exposes the enrollment/ticket subsystems as
// read-only lookups. Absence is (nil, nil).
type TicketRepository interface {
	GetEnrollmentByUserID(ctx context.Context, userID int64) (*Enrollment, error)
	GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*Ticket, error)
}

// InventoryRepository is used by the seeding tool only; the booking
// core never writes rooms or hotels.
type InventoryRepository interface {
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertRoom(ctx context.Context, r Room) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
