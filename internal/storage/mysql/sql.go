package mysql

// -----------------------------------------------------------------------------
// BOOKING READS
// -----------------------------------------------------------------------------

// First booking by owner, room joined. The domain treats the first
// booking found as canonical, so order by id and take one.
const getBookingByUserSQL = `
SELECT
  b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
  r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_id = ?
ORDER BY b.id
LIMIT 1
`

const getBookingByIDSQL = `
SELECT id, user_id, room_id, created_at, updated_at
FROM bookings
WHERE id = ?
`

const listBookingsByRoomSQL = `
SELECT id, user_id, room_id, created_at, updated_at
FROM bookings
WHERE room_id = ?
ORDER BY id
`

const getRoomSQL = `
SELECT id, name, capacity, hotel_id, created_at, updated_at
FROM rooms
WHERE id = ?
`

// -----------------------------------------------------------------------------
// BOOKING WRITES
// Writes run inside a transaction: the room row is locked, occupancy is
// re-counted, and the write applies only if a slot remains.
// -----------------------------------------------------------------------------

const lockRoomSQL = `
SELECT capacity FROM rooms WHERE id = ? FOR UPDATE
`

const countRoomOccupantsSQL = `
SELECT COUNT(*) FROM bookings WHERE room_id = ?
`

// Same count, minus the booking being moved: keeping a booking in its
// own room does not change occupancy.
const countRoomOccupantsExclSQL = `
SELECT COUNT(*) FROM bookings WHERE room_id = ? AND id <> ?
`

const insertBookingSQL = `
INSERT INTO bookings (user_id, room_id) VALUES (?, ?)
`

const updateBookingRoomSQL = `
UPDATE bookings SET room_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

// -----------------------------------------------------------------------------
// TICKET / ENROLLMENT LOOKUPS (read-only; owned by other subsystems)
// -----------------------------------------------------------------------------

const getEnrollmentByUserSQL = `
SELECT id, user_id FROM enrollments WHERE user_id = ? LIMIT 1
`

const getTicketByEnrollmentSQL = `
SELECT
  t.id, t.enrollment_id, t.status,
  tt.id, tt.name, tt.is_remote, tt.includes_hotel
FROM tickets t
JOIN ticket_types tt ON tt.id = t.ticket_type_id
WHERE t.enrollment_id = ?
LIMIT 1
`

// -----------------------------------------------------------------------------
// INVENTORY UPSERTS (seed tool only)
// -----------------------------------------------------------------------------

const upsertHotelSQL = `
INSERT INTO hotels (id, name, image)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  image      = VALUES(image),
  updated_at = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms (id, name, capacity, hotel_id)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  capacity   = VALUES(capacity),
  hotel_id   = VALUES(hotel_id),
  updated_at = CURRENT_TIMESTAMP
`
