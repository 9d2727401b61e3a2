package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JMDCLkr04/Cinema/internal/model"
)

// ReservationRepo reads reservas. Reservation lifecycle (create,
// cancel) belongs to the reservation-management service; the seat
// ledger only needs existence checks and showing lookups.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// GetByID retrieves a reservation by its id.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	const q = `SELECT id_reserva, id_funcion, id_usuario, fecha_reserva
	           FROM reservas WHERE id_reserva = ?`
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&res.ID, &res.FuncionID, &res.UsuarioID, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Exists reports whether a reservation with the given id exists.
func (r *ReservationRepo) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT 1 FROM reservas WHERE id_reserva = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IDsByFuncion returns the ids of all reservations for a showing. A
// showing with no reservations yields an empty slice, not an error.
func (r *ReservationRepo) IDsByFuncion(ctx context.Context, funcionID string) ([]string, error) {
	const q = `SELECT id_reserva FROM reservas WHERE id_funcion = ?`
	rows, err := r.db.QueryContext(ctx, q, funcionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
