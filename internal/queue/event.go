// Package queue defines the message payloads exchanged over the broker
// and the background consumer that audits them.
package queue

// Event types carried in SeatEvent.Type.
const (
	SeatAttached = "asiento.asignado"
	SeatReleased = "asiento.liberado"
)

// SeatEvent is published after a ledger mutation commits. It carries
// enough information for downstream consumers (audit, notifications,
// analytics) without querying the primary database. Numero is empty on
// release events.
type SeatEvent struct {
	Type         string `json:"type"`
	AssignmentID string `json:"id,omitempty"`
	ReservaID    string `json:"id_reserva"`
	AsientoID    string `json:"id_asiento"`
	Numero       string `json:"numero,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}
