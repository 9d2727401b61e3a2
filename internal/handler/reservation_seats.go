package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JMDCLkr04/Cinema/internal/queue"
	"github.com/JMDCLkr04/Cinema/internal/repository"
)

// SeatAssignmentHandler exposes the reserva_asientos ledger over HTTP:
// attaching and detaching seats and the read-side listings. JWT
// middleware runs before the mutating endpoints; the listings are
// public.
type SeatAssignmentHandler struct {
	Assignments  *repository.AssignmentRepo
	Reservations *repository.ReservationRepo
	Seats        *repository.SeatRepo
	// Publish sends a seat event to the broker. Nil disables
	// publishing; errors are the publisher's problem, never the
	// request's.
	Publish func(ctx context.Context, ev queue.SeatEvent) error
}

// NewSeatAssignmentHandler constructs the handler. publish may be nil.
func NewSeatAssignmentHandler(assignments *repository.AssignmentRepo, reservations *repository.ReservationRepo, seats *repository.SeatRepo, publish func(ctx context.Context, ev queue.SeatEvent) error) *SeatAssignmentHandler {
	if assignments == nil || reservations == nil || seats == nil {
		panic("nil repository passed to NewSeatAssignmentHandler")
	}
	return &SeatAssignmentHandler{
		Assignments:  assignments,
		Reservations: reservations,
		Seats:        seats,
		Publish:      publish,
	}
}

// AttachSeat handles POST /reservas/:id_reserva/asientos/:id_asiento.
// On success it returns 201 with the new ledger row and a snapshot of
// the seat's numero/estado. Conflicts map to 400 with the same messages
// the clients already expect.
func (h *SeatAssignmentHandler) AttachSeat(c echo.Context) error {
	reservaID := strings.TrimSpace(c.Param("id_reserva"))
	asientoID := strings.TrimSpace(c.Param("id_asiento"))
	if reservaID == "" || asientoID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_reserva/id_asiento required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Assignments.Attach(ctx, reservaID, asientoID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva no encontrada"})
		case errors.Is(err, repository.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asiento no encontrado"})
		case errors.Is(err, repository.ErrSeatAlreadyInReservation):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "el asiento ya está en esta reserva"})
		case errors.Is(err, repository.ErrSeatTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "el asiento ya está reservado en otra reserva"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishAsync(queue.SeatEvent{
		Type:         queue.SeatAttached,
		AssignmentID: rec.ID,
		ReservaID:    rec.ReservaID,
		AsientoID:    rec.AsientoID,
		Numero:       rec.NumeroAsiento,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, rec)
}

// DetachSeat handles DELETE /reservas/:id_reserva/asientos/:id_asiento.
// Removing a pair that is not in the ledger is a 404, also on repeat
// calls.
func (h *SeatAssignmentHandler) DetachSeat(c echo.Context) error {
	reservaID := strings.TrimSpace(c.Param("id_reserva"))
	asientoID := strings.TrimSpace(c.Param("id_asiento"))
	if reservaID == "" || asientoID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_reserva/id_asiento required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Assignments.Detach(ctx, reservaID, asientoID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no se encontró el asiento en la reserva especificada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishAsync(queue.SeatEvent{
		Type:       queue.SeatReleased,
		ReservaID:  reservaID,
		AsientoID:  asientoID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.NoContent(http.StatusNoContent)
}

// ListReservationSeats handles GET /reservas/:id_reserva/asientos. An
// existing reservation with no seats returns an empty array; a missing
// reservation returns 404.
func (h *SeatAssignmentHandler) ListReservationSeats(c echo.Context) error {
	reservaID := strings.TrimSpace(c.Param("id_reserva"))
	if reservaID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_reserva required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seats, err := h.Assignments.SeatsByReservation(ctx, reservaID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reserva no encontrada"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, seats)
}

// publishAsync fires the event without blocking the response. The
// publisher dials per call, so a slow or absent broker must not hold
// the request open.
func (h *SeatAssignmentHandler) publishAsync(ev queue.SeatEvent) {
	if h.Publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
