package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focozero-data/internal/domain"
)

func setupBlocksMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresBlocksRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresBlocksRepository(db)
}

func blockRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"block_id", "area_id", "number",
		"total_properties", "total_r", "total_c", "total_tb", "total_pe", "total_out",
		"inhabitants", "dogs", "cats",
		"assigned_to", "work_date", "worked_by", "worked",
	})
}

func TestGetBlock_Success(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	rows := blockRows().
		AddRow("block-1", "area-1", 3, 10, 7, 2, 1, 0, 0, 25, 4, 2, "agent-1", nil, nil, false)

	mock.ExpectQuery(`SELECT`).
		WithArgs("block-1").
		WillReturnRows(rows)

	b, err := repo.GetBlock(context.Background(), "block-1")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Number)
	assert.Equal(t, 10, b.TotalProperties)
	assert.Equal(t, 7, b.TotalByType.R)
	assert.True(t, b.AssignedTo.Valid)
	assert.Equal(t, "agent-1", b.AssignedTo.String)
	assert.False(t, b.Worked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBlock_NotFound(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBlock(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlock_ShiftsLaterNumbers(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE blocks SET number = number \+ 1`).
		WithArgs("area-1", 2).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO blocks`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.CreateBlock(context.Background(), &domain.Block{
		AreaID: "area-1",
		Number: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlock_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE blocks SET number = number \+ 1`).
		WithArgs("area-1", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO blocks`).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.CreateBlock(context.Background(), &domain.Block{AreaID: "area-1", Number: 1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementCounters_WithTypeColumn(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE blocks SET total_properties = total_properties \+ \$2`).
		WithArgs("block-1", 1, 3, 1, 0, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementCounters(context.Background(), "block-1", BlockCounterDeltas{
		Properties:  1,
		PType:       domain.PropertyTypeResidence,
		TypeDelta:   1,
		Inhabitants: 3,
		Dogs:        1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementCounters_UnknownType(t *testing.T) {
	db, _, repo := setupBlocksMock(t)
	defer db.Close()

	err := repo.IncrementCounters(context.Background(), "block-1", BlockCounterDeltas{
		Properties: 1,
		PType:      "x",
		TypeDelta:  1,
	})
	assert.Error(t, err)
}

func TestAssignBlock_NotFound(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE blocks SET assigned_to`).
		WithArgs("missing", "agent-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AssignBlock(context.Background(), "missing", "agent-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkWorked_BulkUpdate(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE blocks`).
		WithArgs(pq.Array([]string{"b1", "b2"}), "agent-1", day).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.MarkWorked(context.Background(), []string{"b1", "b2"}, "agent-1", day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkWorked_EmptyInput(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	n, err := repo.MarkWorked(context.Background(), nil, "agent-1", time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetResponsibles_ReturnsCount(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE blocks SET assigned_to = NULL`).
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.ResetResponsibles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNumbersByIDs(t *testing.T) {
	db, mock, repo := setupBlocksMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"block_id", "number"}).
		AddRow("b1", 3).
		AddRow("b2", 7)
	mock.ExpectQuery(`SELECT block_id`).
		WithArgs(pq.Array([]string{"b1", "b2", "gone"})).
		WillReturnRows(rows)

	numbers, err := repo.GetNumbersByIDs(context.Background(), []string{"b1", "b2", "gone"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"b1": 3, "b2": 7}, numbers)
	assert.NoError(t, mock.ExpectationsWereMet())
}
