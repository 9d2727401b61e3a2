package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/JMDCLkr04/Cinema/internal/model"
)

// AssignmentRepo owns the reserva_asientos ledger: the join rows that
// attach seats to reservations. The ledger is the source of truth for
// occupancy; asientos.estado is never mutated here.
//
// Two unique indexes back the application-level checks:
//
//	uq_pair    (id_reserva, id_asiento) – no duplicate pairing
//	uq_asiento (id_asiento)            – a seat belongs to at most one
//	                                     reservation at any time
//
// Attach validates both conditions inside its transaction to produce
// friendly errors, but the indexes are the authoritative guard: a
// concurrent attach that slips past the reads fails at insert and is
// re-reported as the same conflict.
type AssignmentRepo struct {
	db *sql.DB
}

// NewAssignmentRepo constructs an AssignmentRepo with the given DB handle.
func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// AssignmentRecord is returned by Attach: the new ledger row plus a
// read-only snapshot of the seat's numero/estado at attach time.
type AssignmentRecord struct {
	model.SeatAssignment
	NumeroAsiento string `json:"numero_asiento"`
	EstadoAsiento string `json:"estado_asiento"`
}

// SeatView is one seat of a reservation as exposed by the read side.
type SeatView struct {
	AsientoID string `json:"id_asiento"`
	Numero    string `json:"numero"`
	Estado    string `json:"estado"`
}

// Attach links a seat to a reservation. The existence checks, the
// occupancy checks and the insert all run in one transaction so the
// ledger row is durable exactly when the caller sees success.
func (r *AssignmentRepo) Attach(ctx context.Context, reservaID, asientoID string) (*AssignmentRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM reservas WHERE id_reserva = ?`, reservaID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	var numero, estado string
	err = tx.QueryRowContext(ctx, `SELECT numero, estado FROM asientos WHERE id_asiento = ?`, asientoID).
		Scan(&numero, &estado)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}

	// Friendly pre-check; the unique indexes below are the real guard.
	var holder string
	err = tx.QueryRowContext(ctx, `SELECT id_reserva FROM reserva_asientos WHERE id_asiento = ? LIMIT 1`, asientoID).
		Scan(&holder)
	switch {
	case err == nil && holder == reservaID:
		return nil, ErrSeatAlreadyInReservation
	case err == nil:
		return nil, ErrSeatTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	rec := &AssignmentRecord{
		SeatAssignment: model.SeatAssignment{
			ID:        uuid.NewString(),
			ReservaID: reservaID,
			AsientoID: asientoID,
		},
		NumeroAsiento: numero,
		EstadoAsiento: estado,
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO reserva_asientos (id, id_reserva, id_asiento) VALUES (?, ?, ?)`,
		rec.ID, rec.ReservaID, rec.AsientoID)
	if err != nil {
		// A concurrent attach won the race between our reads and this
		// insert. Report the same conflicts the pre-check would have.
		if isDuplicateKey(err, "uq_pair") {
			return nil, ErrSeatAlreadyInReservation
		}
		if isDuplicateKey(err, "") {
			return nil, ErrSeatTaken
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return rec, nil
}

// Detach removes exactly the (reserva, asiento) pair row. Detaching a
// pair that is not in the ledger fails with ErrAssignmentNotFound; a
// second detach of the same pair therefore fails rather than silently
// succeeding.
func (r *AssignmentRepo) Detach(ctx context.Context, reservaID, asientoID string) error {
	const q = `DELETE FROM reserva_asientos WHERE id_reserva = ? AND id_asiento = ?`
	res, err := r.db.ExecContext(ctx, q, reservaID, asientoID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// SeatsByReservation returns the seats attached to a reservation,
// ordered by numero. A missing reservation is an error; an existing
// reservation with no seats yields an empty slice.
func (r *AssignmentRepo) SeatsByReservation(ctx context.Context, reservaID string) ([]SeatView, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reservas WHERE id_reserva = ?`, reservaID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	const q = `SELECT a.id_asiento, a.numero, a.estado
	           FROM reserva_asientos ra
	           JOIN asientos a ON a.id_asiento = ra.id_asiento
	           WHERE ra.id_reserva = ?
	           ORDER BY a.numero`
	rows, err := r.db.QueryContext(ctx, q, reservaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]SeatView, 0)
	for rows.Next() {
		var v SeatView
		if err := rows.Scan(&v.AsientoID, &v.Numero, &v.Estado); err != nil {
			return nil, err
		}
		seats = append(seats, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatIDsByReservations returns the id of every seat attached to any of
// the given reservations. An empty input returns an empty slice without
// touching the database.
func (r *AssignmentRepo) SeatIDsByReservations(ctx context.Context, reservaIDs []string) ([]string, error) {
	ids := make([]string, 0, len(reservaIDs))
	if len(reservaIDs) == 0 {
		return ids, nil
	}
	placeholders := make([]string, 0, len(reservaIDs))
	args := make([]interface{}, 0, len(reservaIDs))
	for _, id := range reservaIDs {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT id_asiento FROM reserva_asientos
	          WHERE id_reserva IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
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
