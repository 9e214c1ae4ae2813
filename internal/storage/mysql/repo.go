package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotel_booking/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// -----------------------------------------------------------------------------
// BookingRepository
// -----------------------------------------------------------------------------

func (r *Repo) GetBookingByUserID(ctx context.Context, userID int64) (*domain.BookingView, error) {
	row := r.db.QueryRowContext(ctx, getBookingByUserSQL, userID)

	var bv domain.BookingView
	err := row.Scan(
		&bv.ID, &bv.UserID, &bv.RoomID, &bv.CreatedAt, &bv.UpdatedAt,
		&bv.Room.ID, &bv.Room.Name, &bv.Room.Capacity, &bv.Room.HotelID,
		&bv.Room.CreatedAt, &bv.Room.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking by user: %w", err)
	}
	return &bv, nil
}

func (r *Repo) GetBookingByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, getBookingByIDSQL, id)

	var b domain.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *Repo) ListBookingsByRoomID(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsByRoomSQL, roomID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by room: %w", err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRowContext(ctx, getRoomSQL, id)

	var rm domain.Room
	err := row.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.HotelID, &rm.CreatedAt, &rm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &rm, nil
}

// InsertBooking creates a booking only if the room still has a free
// slot at commit time. The room row is locked for the duration of the
// transaction, so two requests racing for the last slot serialize here
// and the loser gets domain.ErrForbidden.
func (r *Repo) InsertBooking(ctx context.Context, roomID, userID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	capacity, occupied, err := lockAndCount(ctx, tx, roomID, countRoomOccupantsSQL, roomID)
	if err != nil {
		return 0, err
	}
	if occupied >= capacity {
		return 0, domain.ErrForbidden
	}

	res, err := tx.ExecContext(ctx, insertBookingSQL, userID, roomID)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("booking id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// UpdateBookingRoom moves a booking under the same room lock as
// InsertBooking. The moved booking itself is excluded from the count:
// a move within one room leaves occupancy unchanged.
func (r *Repo) UpdateBookingRoom(ctx context.Context, bookingID, roomID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	capacity, occupied, err := lockAndCount(ctx, tx, roomID, countRoomOccupantsExclSQL, roomID, bookingID)
	if err != nil {
		return err
	}
	if occupied >= capacity {
		return domain.ErrForbidden
	}

	if _, err := tx.ExecContext(ctx, updateBookingRoomSQL, roomID, bookingID); err != nil {
		return fmt.Errorf("update booking room: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func lockAndCount(ctx context.Context, tx *sql.Tx, roomID int64, countSQL string, countArgs ...any) (capacity, occupied int, err error) {
	err = tx.QueryRowContext(ctx, lockRoomSQL, roomID).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("lock room: %w", err)
	}
	if err = tx.QueryRowContext(ctx, countSQL, countArgs...).Scan(&occupied); err != nil {
		return 0, 0, fmt.Errorf("count occupants: %w", err)
	}
	return capacity, occupied, nil
}

// -----------------------------------------------------------------------------
// TicketRepository
// -----------------------------------------------------------------------------

func (r *Repo) GetEnrollmentByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	row := r.db.QueryRowContext(ctx, getEnrollmentByUserSQL, userID)

	var e domain.Enrollment
	err := row.Scan(&e.ID, &e.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return &e, nil
}

func (r *Repo) GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx, getTicketByEnrollmentSQL, enrollmentID)

	var t domain.Ticket
	err := row.Scan(
		&t.ID, &t.EnrollmentID, &t.Status,
		&t.Type.ID, &t.Type.Name, &t.Type.IsRemote, &t.Type.IncludesHotel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

// -----------------------------------------------------------------------------
// InventoryRepository (seed tool)
// -----------------------------------------------------------------------------

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL, h.ID, h.Name, h.Image)
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL, rm.ID, rm.Name, rm.Capacity, rm.HotelID)
	return err
}
