// Package repository implements data access on top of the shared MySQL
// pool. Sentinel errors defined here let handlers distinguish failure
// scenarios and map them to stable HTTP status codes without inspecting
// driver errors themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrReservationNotFound is returned when a reserva lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrSeatNotFound is returned when an asiento lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrAssignmentNotFound is returned when no reserva_asientos row matches
// the requested (reserva, asiento) pair.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrSeatAlreadyInReservation is returned when the exact pair already
// exists in the ledger.
var ErrSeatAlreadyInReservation = errors.New("seat already in this reservation")

// ErrSeatTaken is returned when the seat is attached to a different
// reservation. The unique index on reserva_asientos.id_asiento raises
// the same condition at insert time; both paths report this error.
var ErrSeatTaken = errors.New("seat already reserved elsewhere")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062). When key is non-empty the violated index name must also
// appear in the message, which distinguishes the pair index from the
// global seat index.
func isDuplicateKey(err error, key string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return false
	}
	return key == "" || strings.Contains(msg, strings.ToLower(key))
}
