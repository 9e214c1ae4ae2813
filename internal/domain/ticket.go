package domain

// Ticket statuses as stored by the ticketing subsystem.
const (
	TicketStatusReserved = "RESERVED"
	TicketStatusPaid     = "PAID"
)

type TicketType struct {
	ID            int64
	Name          string
	IsRemote      bool
	IncludesHotel bool
}

type Ticket struct {
	ID           int64
	EnrollmentID int64
	Status       string
	Type         TicketType
}

// Enrollment links a user to their registration. Only the id is needed
// here; it keys the ticket lookup.
type Enrollment struct {
	ID     int64
	UserID int64
}
