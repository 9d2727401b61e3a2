package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	reservaA = "11111111-1111-1111-1111-111111111111"
	reservaB = "22222222-2222-2222-2222-222222222222"
	asientoS = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	funcionF = "ffffffff-ffff-ffff-ffff-ffffffffffff"
)

func newAssignmentRepo(t *testing.T) (*AssignmentRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAssignmentRepo(db), mock
}

func expectReservationExists(mock sqlmock.Sqlmock, id string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reservas WHERE id_reserva = ?")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
}

func expectSeatLookup(mock sqlmock.Sqlmock, id, numero, estado string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT numero, estado FROM asientos WHERE id_asiento = ?")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"numero", "estado"}).AddRow(numero, estado))
}

func TestAttachInsertsLedgerRow(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectBegin()
	expectReservationExists(mock, reservaA)
	expectSeatLookup(mock, asientoS, "A12", "disponible")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_reserva FROM reserva_asientos WHERE id_asiento = ?")).
		WithArgs(asientoS).
		WillReturnRows(sqlmock.NewRows([]string{"id_reserva"})) // seat free
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reserva_asientos (id, id_reserva, id_asiento) VALUES (?, ?, ?)")).
		WithArgs(sqlmock.AnyArg(), reservaA, asientoS).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := repo.Attach(context.Background(), reservaA, asientoS)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, reservaA, rec.ReservaID)
	assert.Equal(t, asientoS, rec.AsientoID)
	assert.Equal(t, "A12", rec.NumeroAsiento)
	assert.Equal(t, "disponible", rec.EstadoAsiento)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachMissingReservation(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reservas WHERE id_reserva = ?")).
		WithArgs(reservaA).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectRollback()

	_, err := repo.Attach(context.Background(), reservaA, asientoS)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachMissingSeat(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectBegin()
	expectReservationExists(mock, reservaA)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT numero, estado FROM asientos WHERE id_asiento = ?")).
		WithArgs(asientoS).
		WillReturnRows(sqlmock.NewRows([]string{"numero", "estado"}))
	mock.ExpectRollback()

	_, err := repo.Attach(context.Background(), reservaA, asientoS)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachPairAlreadyExists(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectBegin()
	expectReservationExists(mock, reservaA)
	expectSeatLookup(mock, asientoS, "A12", "disponible")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_reserva FROM reserva_asientos WHERE id_asiento = ?")).
		WithArgs(asientoS).
		WillReturnRows(sqlmock.NewRows([]string{"id_reserva"}).AddRow(reservaA))
	mock.ExpectRollback()

	_, err := repo.Attach(context.Background(), reservaA, asientoS)
	assert.ErrorIs(t, err, ErrSeatAlreadyInReservation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttachSeatHeldByOtherReservation(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectBegin()
	expectReservationExists(mock, reservaB)
	expectSeatLookup(mock, asientoS, "A12", "disponible")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_reserva FROM reserva_asientos WHERE id_asiento = ?")).
		WithArgs(asientoS).
		WillReturnRows(sqlmock.NewRows([]string{"id_reserva"}).AddRow(reservaA))
	mock.ExpectRollback()

	_, err := repo.Attach(context.Background(), reservaB, asientoS)
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent attach can pass the reads and lose the race at insert
// time. The duplicate-key violation from the unique indexes must be
// re-reported as the same conflicts the pre-check produces, so exactly
// one of two racing attaches succeeds and the loser sees a conflict.
func TestAttachDuplicateKeyRace(t *testing.T) {
	cases := []struct {
		name    string
		dbError string
		want    error
	}{
		{
			name:    "global seat index",
			dbError: "Error 1062 (23000): Duplicate entry 'aaa' for key 'reserva_asientos.uq_asiento'",
			want:    ErrSeatTaken,
		},
		{
			name:    "pair index",
			dbError: "Error 1062 (23000): Duplicate entry '111-aaa' for key 'reserva_asientos.uq_pair'",
			want:    ErrSeatAlreadyInReservation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newAssignmentRepo(t)

			mock.ExpectBegin()
			expectReservationExists(mock, reservaB)
			expectSeatLookup(mock, asientoS, "A12", "disponible")
			mock.ExpectQuery(regexp.QuoteMeta("SELECT id_reserva FROM reserva_asientos WHERE id_asiento = ?")).
				WithArgs(asientoS).
				WillReturnRows(sqlmock.NewRows([]string{"id_reserva"}))
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reserva_asientos")).
				WithArgs(sqlmock.AnyArg(), reservaB, asientoS).
				WillReturnError(errors.New(tc.dbError))
			mock.ExpectRollback()

			_, err := repo.Attach(context.Background(), reservaB, asientoS)
			assert.ErrorIs(t, err, tc.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDetachRemovesRow(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reserva_asientos WHERE id_reserva = ? AND id_asiento = ?")).
		WithArgs(reservaA, asientoS).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Detach(context.Background(), reservaA, asientoS))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetachUnknownPair(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	// Second detach of the same pair fails rather than silently succeeding.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reserva_asientos")).
		WithArgs(reservaA, asientoS).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Detach(context.Background(), reservaA, asientoS)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsByReservationEmpty(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	expectReservationExists(mock, reservaA)
	mock.ExpectQuery(regexp.QuoteMeta("FROM reserva_asientos ra")).
		WithArgs(reservaA).
		WillReturnRows(sqlmock.NewRows([]string{"id_asiento", "numero", "estado"}))

	seats, err := repo.SeatsByReservation(context.Background(), reservaA)
	require.NoError(t, err)
	assert.NotNil(t, seats)
	assert.Empty(t, seats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsByReservationMissingReservation(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reservas WHERE id_reserva = ?")).
		WithArgs(reservaA).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	_, err := repo.SeatsByReservation(context.Background(), reservaA)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsByReservationOrdered(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	expectReservationExists(mock, reservaA)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.numero")).
		WithArgs(reservaA).
		WillReturnRows(sqlmock.NewRows([]string{"id_asiento", "numero", "estado"}).
			AddRow("s1", "A1", "disponible").
			AddRow("s2", "A2", "disponible"))

	seats, err := repo.SeatsByReservation(context.Background(), reservaA)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, "A1", seats[0].Numero)
	assert.Equal(t, "A2", seats[1].Numero)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatIDsByReservationsEmptyInputSkipsQuery(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	ids, err := repo.SeatIDsByReservations(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatIDsByReservationsCollectsAcrossReservations(t *testing.T) {
	repo, mock := newAssignmentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_asiento FROM reserva_asientos")).
		WithArgs(reservaA, reservaB).
		WillReturnRows(sqlmock.NewRows([]string{"id_asiento"}).
			AddRow(asientoS).
			AddRow("other"))

	ids, err := repo.SeatIDsByReservations(context.Background(), []string{reservaA, reservaB})
	require.NoError(t, err)
	assert.Equal(t, []string{asientoS, "other"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
