package model

// Seat describes a physical seat in a sala. The estado column is a
// free-text administrative label ("disponible", "mantenimiento", ...);
// actual occupancy is derived from the reserva_asientos ledger, never
// from this field.
//
// Fields:
//  ID     – asientos.id_asiento (UUID).
//  Numero – display label of the seat, e.g. "A12".
//  Estado – administrative state label, defaults to "disponible".
//  SalaID – owning sala, nullable (seats may exist unassigned).
type Seat struct {
	ID     string  `json:"id_asiento"`
	Numero string  `json:"numero"`
	Estado string  `json:"estado"`
	SalaID *string `json:"id_sala"`
}
