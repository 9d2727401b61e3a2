package model

import "time"

// Reservation records a booking for a specific función (showing).
// Reservations are created and cancelled by the reservation-management
// service; this service only reads them to validate seat assignments.
type Reservation struct {
	ID        string    `json:"id_reserva"`  // reservas.id_reserva (UUID)
	FuncionID string    `json:"id_funcion"`  // showing the reservation belongs to
	UsuarioID string    `json:"id_usuario"`  // user who made the reservation
	CreatedAt time.Time `json:"fecha_reserva"`
}

// SeatAssignment is one row of the reserva_asientos ledger: a seat
// attached to a reservation. A seat appears in at most one row at any
// time; the database enforces this with a unique index on id_asiento.
type SeatAssignment struct {
	ID        string `json:"id"`
	ReservaID string `json:"id_reserva"`
	AsientoID string `json:"id_asiento"`
}
