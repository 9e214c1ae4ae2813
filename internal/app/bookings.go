package app

import (
	"context"
	"fmt"
	"time"

	"hotel_booking/internal/domain"
)

// BookingService holds the booking business rules: ticket eligibility
// on create, and the room capacity gate on create and update.
type BookingService struct {
	bookings domain.BookingRepository
	tickets  domain.TicketRepository
	cache    domain.Cache
	cacheTTL time.Duration

	// moveExcludesSelf, when set, excludes the booking being moved from
	// the occupancy count on update. Off by default: the stock rule
	// counts the booking's own row, so a move into the room it already
	// occupies can be rejected when that room is full.
	moveExcludesSelf bool
}

func NewBookingService(b domain.BookingRepository, t domain.TicketRepository, c domain.Cache, ttl time.Duration, moveExcludesSelf bool) *BookingService {
	return &BookingService{bookings: b, tickets: t, cache: c, cacheTTL: ttl, moveExcludesSelf: moveExcludesSelf}
}

func bookingKey(userID int64) string { return fmt.Sprintf("booking:%d", userID) }

func (s *BookingService) GetBookingByUserID(ctx context.Context, userID int64) (domain.BookingView, error) {
	key := bookingKey(userID)
	var bv domain.BookingView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &bv); ok {
			return bv, nil
		}
	}
	b, err := s.bookings.GetBookingByUserID(ctx, userID)
	if err != nil {
		return domain.BookingView{}, err
	}
	if b == nil {
		return domain.BookingView{}, domain.ErrNotFound
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, *b, int(s.cacheTTL.Seconds()))
	}
	return *b, nil
}

// CreateBooking books roomID for userID and returns the new booking id.
// Eligibility: the user's ticket must exist, be paid, be in-person and
// include hotel accommodation; any one failing condition forbids the
// booking. Then the room must exist and have a free slot.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int64) (int64, error) {
	enrollment, err := s.tickets.GetEnrollmentByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	var ticket *domain.Ticket
	if enrollment != nil {
		if ticket, err = s.tickets.GetTicketByEnrollmentID(ctx, enrollment.ID); err != nil {
			return 0, err
		}
	}
	if ticket == nil || ticket.Status == domain.TicketStatusReserved || ticket.Type.IsRemote || !ticket.Type.IncludesHotel {
		return 0, domain.ErrForbidden
	}

	room, err := s.bookings.GetRoomByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if room == nil {
		return 0, domain.ErrNotFound
	}
	occupants, err := s.bookings.ListBookingsByRoomID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if len(occupants) == room.Capacity {
		return 0, domain.ErrForbidden
	}

	id, err := s.bookings.InsertBooking(ctx, roomID, userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, bookingKey(userID))
	}
	return id, nil
}

// UpdateBooking moves an existing booking to roomID and returns the
// booking id. A missing booking is forbidden, not absent; eligibility
// is not re-checked on a move.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, roomID int64) (int64, error) {
	booking, err := s.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if booking == nil {
		return 0, domain.ErrForbidden
	}

	room, err := s.bookings.GetRoomByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if room == nil {
		return 0, domain.ErrNotFound
	}
	occupants, err := s.bookings.ListBookingsByRoomID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	count := len(occupants)
	if s.moveExcludesSelf {
		for _, o := range occupants {
			if o.ID == bookingID {
				count--
			}
		}
	}
	if count == room.Capacity {
		return 0, domain.ErrForbidden
	}

	if err := s.bookings.UpdateBookingRoom(ctx, bookingID, roomID); err != nil {
		return 0, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, bookingKey(booking.UserID))
	}
	return booking.ID, nil
}
