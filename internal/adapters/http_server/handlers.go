package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type Handlers struct{ B *app.BookingService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type roomRequest struct {
	RoomID int64 `json:"roomId"`
}

type bookingIDResponse struct {
	BookingID int64 `json:"bookingId"`
}

func (s *Server) MountHandlers(h *Handlers, jwtSecret []byte) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/booking", func(r chi.Router) {
		r.Use(Auth(jwtSecret))
		r.Get("/", h.getBooking)
		r.Post("/", h.createBooking)
		r.Put("/{bookingId}", h.updateBooking)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeServiceError translates a domain error kind to a transport
// status. The handler is the sole place this mapping happens.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		observability.ObserveDecision(op, "not_found")
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		observability.ObserveDecision(op, "forbidden")
		writeProblem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		observability.ObserveDecision(op, "error")
		log.Error().Err(err).Str("op", op).Msg("booking service failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	bv, err := h.B.GetBookingByUserID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "get", err)
		return
	}
	observability.ObserveDecision("get", "ok")
	writeJSON(w, http.StatusOK, bv)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with a roomId")
		return
	}
	id, err := h.B.CreateBooking(r.Context(), userID, req.RoomID)
	if err != nil {
		writeServiceError(w, "create", err)
		return
	}
	observability.ObserveDecision("create", "ok")
	writeJSON(w, http.StatusOK, bookingIDResponse{BookingID: id})
}

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserID(r.Context()); !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no identity")
		return
	}
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "bookingId must be a number")
		return
	}
	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be JSON with a roomId")
		return
	}
	id, err := h.B.UpdateBooking(r.Context(), bookingID, req.RoomID)
	if err != nil {
		writeServiceError(w, "update", err)
		return
	}
	observability.ObserveDecision("update", "ok")
	writeJSON(w, http.StatusOK, bookingIDResponse{BookingID: id})
}
