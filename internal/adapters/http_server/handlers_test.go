package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

var testSecret = []byte("handler-test-secret")

// ---- fakes over the domain ports ----

type store struct {
	rooms    map[int64]domain.Room
	bookings map[int64]domain.Booking
	nextID   int64
}

func (s *store) GetBookingByUserID(ctx context.Context, userID int64) (*domain.BookingView, error) {
	var first *domain.Booking
	for id := range s.bookings {
		b := s.bookings[id]
		if b.UserID != userID {
			continue
		}
		if first == nil || b.ID < first.ID {
			first = &b
		}
	}
	if first == nil {
		return nil, nil
	}
	return &domain.BookingView{Booking: *first, Room: s.rooms[first.RoomID]}, nil
}

func (s *store) GetBookingByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *store) ListBookingsByRoomID(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *store) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	r, ok := s.rooms[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *store) InsertBooking(ctx context.Context, roomID, userID int64) (int64, error) {
	id := s.nextID
	s.nextID++
	s.bookings[id] = domain.Booking{ID: id, UserID: userID, RoomID: roomID}
	return id, nil
}

func (s *store) UpdateBookingRoom(ctx context.Context, bookingID, roomID int64) error {
	b := s.bookings[bookingID]
	b.RoomID = roomID
	s.bookings[bookingID] = b
	return nil
}

type tickets struct{ ticket *domain.Ticket }

func (t *tickets) GetEnrollmentByUserID(ctx context.Context, userID int64) (*domain.Enrollment, error) {
	return &domain.Enrollment{ID: 1, UserID: userID}, nil
}

func (t *tickets) GetTicketByEnrollmentID(ctx context.Context, enrollmentID int64) (*domain.Ticket, error) {
	return t.ticket, nil
}

// ---- harness ----

func newTestServer(t *testing.T, st *store, tk *tickets) *httptest.Server {
	t.Helper()
	svc := app.NewBookingService(st, tk, nil, time.Minute, false)
	srv := httpserver.New(0)
	srv.MountHandlers(&httpserver.Handlers{B: svc}, testSecret)
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func newStore() *store {
	return &store{
		rooms:    map[int64]domain.Room{101: {ID: 101, Name: "101", Capacity: 2, HotelID: 1}, 104: {ID: 104, Name: "104", Capacity: 1, HotelID: 1}},
		bookings: map[int64]domain.Booking{},
		nextID:   1,
	}
}

func paidTicket() *tickets {
	return &tickets{ticket: &domain.Ticket{
		ID: 1, EnrollmentID: 1, Status: domain.TicketStatusPaid,
		Type: domain.TicketType{IncludesHotel: true},
	}}
}

func do(t *testing.T, method, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return res
}

func validToken(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := httpserver.SignToken(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// ---- tests ----

func TestBookingRoutes_InvalidToken(t *testing.T) {
	ts := newTestServer(t, newStore(), paidTicket())

	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/booking"},
		{http.MethodPost, "/booking"},
		{http.MethodPut, "/booking/1"},
	} {
		res := do(t, rt.method, ts.URL+rt.path, "not-a-jwt", `{"roomId":101}`)
		res.Body.Close()
		if res.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", rt.method, rt.path, res.StatusCode)
		}
	}
}

func TestGetBooking_NoBooking404(t *testing.T) {
	ts := newTestServer(t, newStore(), paidTicket())

	res := do(t, http.MethodGet, ts.URL+"/booking", validToken(t, 7), "")
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected problem+json, got %s", ct)
	}
}

func TestGetBooking_ReturnsBookingWithRoom(t *testing.T) {
	st := newStore()
	st.bookings[1] = domain.Booking{ID: 1, UserID: 7, RoomID: 101}
	st.nextID = 2
	ts := newTestServer(t, st, paidTicket())

	res := do(t, http.MethodGet, ts.URL+"/booking", validToken(t, 7), "")
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		ID     int64 `json:"id"`
		UserID int64 `json:"userId"`
		RoomID int64 `json:"roomId"`
		Room   struct {
			ID       int64 `json:"id"`
			Capacity int   `json:"capacity"`
		} `json:"Room"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ID != 1 || body.UserID != 7 || body.RoomID != 101 || body.Room.ID != 101 || body.Room.Capacity != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCreateBooking_Statuses(t *testing.T) {
	t.Run("ineligible ticket 403", func(t *testing.T) {
		reserved := &tickets{ticket: &domain.Ticket{Status: domain.TicketStatusReserved, Type: domain.TicketType{IncludesHotel: true}}}
		ts := newTestServer(t, newStore(), reserved)

		res := do(t, http.MethodPost, ts.URL+"/booking", validToken(t, 7), `{"roomId":101}`)
		res.Body.Close()
		if res.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", res.StatusCode)
		}
	})

	t.Run("unknown room 404", func(t *testing.T) {
		ts := newTestServer(t, newStore(), paidTicket())

		res := do(t, http.MethodPost, ts.URL+"/booking", validToken(t, 7), `{"roomId":999}`)
		res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", res.StatusCode)
		}
	})

	t.Run("full room 403", func(t *testing.T) {
		st := newStore()
		st.bookings[1] = domain.Booking{ID: 1, UserID: 8, RoomID: 104}
		st.nextID = 2
		ts := newTestServer(t, st, paidTicket())

		res := do(t, http.MethodPost, ts.URL+"/booking", validToken(t, 7), `{"roomId":104}`)
		res.Body.Close()
		if res.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", res.StatusCode)
		}
	})

	t.Run("success 200 with bookingId", func(t *testing.T) {
		ts := newTestServer(t, newStore(), paidTicket())

		res := do(t, http.MethodPost, ts.URL+"/booking", validToken(t, 7), `{"roomId":101}`)
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", res.StatusCode)
		}
		var body struct {
			BookingID int64 `json:"bookingId"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.BookingID <= 0 {
			t.Fatalf("expected positive bookingId, got %d", body.BookingID)
		}
	})
}

func TestUpdateBooking_Statuses(t *testing.T) {
	t.Run("missing booking 403", func(t *testing.T) {
		ts := newTestServer(t, newStore(), paidTicket())

		res := do(t, http.MethodPut, ts.URL+"/booking/42", validToken(t, 7), `{"roomId":101}`)
		res.Body.Close()
		if res.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", res.StatusCode)
		}
	})

	t.Run("unknown room 404", func(t *testing.T) {
		st := newStore()
		st.bookings[1] = domain.Booking{ID: 1, UserID: 7, RoomID: 101}
		st.nextID = 2
		ts := newTestServer(t, st, paidTicket())

		res := do(t, http.MethodPut, ts.URL+"/booking/1", validToken(t, 7), `{"roomId":999}`)
		res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", res.StatusCode)
		}
	})

	t.Run("malformed id 400", func(t *testing.T) {
		ts := newTestServer(t, newStore(), paidTicket())

		res := do(t, http.MethodPut, ts.URL+"/booking/abc", validToken(t, 7), `{"roomId":101}`)
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", res.StatusCode)
		}
	})

	t.Run("success 200 with bookingId", func(t *testing.T) {
		st := newStore()
		st.bookings[1] = domain.Booking{ID: 1, UserID: 7, RoomID: 104}
		st.nextID = 2
		ts := newTestServer(t, st, paidTicket())

		res := do(t, http.MethodPut, ts.URL+"/booking/1", validToken(t, 7), `{"roomId":101}`)
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", res.StatusCode)
		}
		var body struct {
			BookingID int64 `json:"bookingId"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.BookingID != 1 {
			t.Fatalf("expected bookingId 1, got %d", body.BookingID)
		}
	})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, newStore(), paidTicket())

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
