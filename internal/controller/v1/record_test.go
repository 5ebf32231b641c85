package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/repo"
	"xuanxin.dev/backend-next/internal/service"
)

// capturingJetStream acknowledges every publish and hands the message over.
type capturingJetStream struct {
	nats.JetStreamContext

	msgs chan *nats.Msg
}

func (c *capturingJetStream) PublishMsg(m *nats.Msg, _ ...nats.PubOpt) (*nats.PubAck, error) {
	c.msgs <- m
	return &nats.PubAck{Stream: constant.ArchiveStreamName, Sequence: 1}, nil
}

func archiveOn(t *testing.T) (*service.Archive, *capturingJetStream, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	js := &capturingJetStream{msgs: make(chan *nats.Msg, 1)}
	return service.NewArchive(js, repo.NewChartRecord(db)), js, mock
}

func published(t *testing.T, js *capturingJetStream) *types.ChartComputed {
	t.Helper()
	select {
	case msg := <-js.msgs:
		var event types.ChartComputed
		require.NoError(t, json.Unmarshal(msg.Data, &event))
		return &event
	case <-time.After(2 * time.Second):
		t.Fatal("no archive event published")
		return nil
	}
}

func TestAnalyzeHeadersLeadToRecords(t *testing.T) {
	archive, js, mock := archiveOn(t)
	app := archivingApp(t, archive)

	resp, body := do(t, app, postJSON("/api/v1/bazi/analyze", referenceBody))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	birthKey := resp.Header.Get(constant.BirthKeyHeader)
	recordID := resp.Header.Get(constant.RecordIDHeader)
	require.Regexp(t, "^[0-9a-f]{16}$", birthKey)
	require.Len(t, recordID, 26)

	event := published(t, js)
	assert.Equal(t, recordID, event.ID)
	assert.Equal(t, birthKey, event.BirthKey)

	computedAt := event.ComputedAt.UTC()
	mock.ExpectQuery(`WHERE \(birth_key = '` + birthKey + `'\) ORDER BY computed_at DESC, record_id DESC LIMIT 20`).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "public_id", "birth_key", "target_year", "current_age", "computed_at"}).
			AddRow(1, recordID, birthKey, 2024, 35, computedAt))
	mock.ExpectQuery(`SELECT .* FROM "chart_records" AS "cr" WHERE \(public_id = '` + recordID + `'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"record_id", "public_id", "birth_key", "target_year", "result"}).
			AddRow(1, recordID, birthKey, 2024, []byte(event.Result)))

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/bazi/records?birthKey="+birthKey, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, birthKey, gjson.Get(body, "birthKey").String())
	assert.Equal(t, recordID, gjson.Get(body, "records.0.id").String())
	assert.EqualValues(t, 35, gjson.Get(body, "records.0.currentAge").Int())

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/bazi/records/"+recordID, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, recordID, gjson.Get(body, "id").String())
	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", gjson.Get(body, "result.layout.label").String())
}
