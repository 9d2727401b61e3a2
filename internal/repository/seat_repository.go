package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/JMDCLkr04/Cinema/internal/model"
)

// SeatRepo reads asientos. Seats are created administratively outside
// this service, so only lookups are exposed here.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id string) (*model.Seat, error) {
	const q = `SELECT id_asiento, numero, estado, id_sala
	           FROM asientos WHERE id_asiento = ?`
	var s model.Seat
	var sala sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.Numero, &s.Estado, &sala)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	if sala.Valid {
		v := sala.String
		s.SalaID = &v
	}
	return &s, nil
}

// GetByIDs retrieves all seats matching the given ids, ordered by
// numero. Unknown ids are silently omitted; an empty input returns an
// empty slice without touching the database.
func (r *SeatRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Seat, error) {
	result := make([]model.Seat, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT id_asiento, numero, estado, id_sala
	          FROM asientos
	          WHERE id_asiento IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY numero`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.Seat
		var sala sql.NullString
		if err := rows.Scan(&s.ID, &s.Numero, &s.Estado, &sala); err != nil {
			return nil, err
		}
		if sala.Valid {
			v := sala.String
			s.SalaID = &v
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
