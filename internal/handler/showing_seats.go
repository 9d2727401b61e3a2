package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// ListOccupiedSeats handles GET /funciones/:id_funcion/asientos-ocupados.
// It walks showing -> reservations -> ledger -> seats: the reservation
// ids of the función, the seat ids attached to them, then the seat rows
// themselves. A showing with no reservations is valid and returns an
// empty array; no existence check is made on the función itself.
func (h *SeatAssignmentHandler) ListOccupiedSeats(c echo.Context) error {
	funcionID := strings.TrimSpace(c.Param("id_funcion"))
	if funcionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id_funcion required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservaIDs, err := h.Reservations.IDsByFuncion(ctx, funcionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seatIDs, err := h.Assignments.SeatIDsByReservations(ctx, reservaIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.Seats.GetByIDs(ctx, seatIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, seats)
}
