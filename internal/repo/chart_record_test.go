package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"xuanxin.dev/backend-next/internal/pkg/apperr"
)

func mockRepo(t *testing.T) (*ChartRecord, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewChartRecord(db), mock
}

func TestGetChartRecordByPublicID(t *testing.T) {
	r, mock := mockRepo(t)

	rows := sqlmock.NewRows([]string{"record_id", "public_id", "birth_key", "target_year", "result"}).
		AddRow(1, "01HQZ8", "9f86d081884c7d65", 2024, []byte(`{"targetYear":2024}`))
	mock.ExpectQuery(`SELECT .* FROM "chart_records" AS "cr" WHERE \(public_id = '01HQZ8'\)`).WillReturnRows(rows)

	record, err := r.GetChartRecordByPublicID(context.Background(), "01HQZ8")
	require.NoError(t, err)
	assert.Equal(t, "9f86d081884c7d65", record.BirthKey)
	assert.Equal(t, 2024, record.TargetYear)
	assert.JSONEq(t, `{"targetYear":2024}`, string(record.Result))
}

func TestGetChartRecordByPublicIDNotFound(t *testing.T) {
	r, mock := mockRepo(t)

	mock.ExpectQuery(`FROM "chart_records"`).WillReturnRows(sqlmock.NewRows([]string{"record_id"}))

	_, err := r.GetChartRecordByPublicID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetLatestChartRecordsByBirthKey(t *testing.T) {
	r, mock := mockRepo(t)

	rows := sqlmock.NewRows([]string{"record_id", "public_id", "birth_key"}).
		AddRow(2, "b", "9f86d081884c7d65").
		AddRow(1, "a", "9f86d081884c7d65")
	mock.ExpectQuery(`WHERE \(birth_key = '9f86d081884c7d65'\) ORDER BY computed_at DESC, record_id DESC LIMIT 5`).WillReturnRows(rows)

	records, err := r.GetLatestChartRecordsByBirthKey(context.Background(), "9f86d081884c7d65", 5)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].PublicID)
}

func TestCreateSchema(t *testing.T) {
	r, mock := mockRepo(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "chart_records"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS "idx_chart_records_birth_key_computed_at"`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, r.CreateSchema(context.Background()))
}
