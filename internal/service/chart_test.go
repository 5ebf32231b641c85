package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/core/chart"
	"xuanxin.dev/backend-next/internal/core/cycle"
	modelcache "xuanxin.dev/backend-next/internal/model/cache"
	"xuanxin.dev/backend-next/internal/model/types"
	pkgcache "xuanxin.dev/backend-next/internal/pkg/cache"
)

type fakeArchive struct {
	events chan *types.ChartComputed
}

func (f *fakeArchive) Publish(_ context.Context, event *types.ChartComputed) error {
	f.events <- event
	return nil
}

func referenceRequest(t *testing.T) chart.Request {
	t.Helper()
	b, err := cycle.NewBirth(1990, 5, 15, 10, cycle.Male)
	require.NoError(t, err)
	return chart.Request{Birth: b, TargetYear: 2024}.WithDefaults(2024)
}

func newTestChart(t *testing.T) (*Chart, *fakeArchive, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	modelcache.Initialize(db, nil)
	pkgcache.Initialize(db, nil)

	archive := &fakeArchive{events: make(chan *types.ChartComputed, 1)}
	conf := &appconfig.Config{}
	conf.ChartCacheTTL = time.Hour
	conf.ArchiveEnabled = true

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Chart{Config: conf, archive: archive, now: func() time.Time { return at }}, archive, mock
}

func TestKeys(t *testing.T) {
	req := referenceRequest(t)

	key := CacheKey(req)
	assert.Len(t, key, 16)
	assert.Regexp(t, "^[0-9a-f]{16}$", key)
	assert.Equal(t, key, CacheKey(referenceRequest(t)))

	older := req
	older.TargetYear = 2023
	assert.NotEqual(t, key, CacheKey(older))

	aged := req
	aged.CurrentAge = 20
	assert.NotEqual(t, key, CacheKey(aged))

	// the birth key ignores the reading year
	assert.Equal(t, BirthKey(req.Birth), BirthKey(older.Birth))
	assert.NotEqual(t, key, BirthKey(req.Birth))

	female := req.Birth
	female.Gender = cycle.Female
	assert.NotEqual(t, BirthKey(req.Birth), BirthKey(female))
}

func receive(t *testing.T, ch <-chan *types.ChartComputed) *types.ChartComputed {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no archive event published")
		return nil
	}
}

func TestAnalyzeMissArchives(t *testing.T) {
	s, archive, mock := newTestChart(t)
	req := referenceRequest(t)
	key := "chartResult#birthKey:" + CacheKey(req)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectGet(key).RedisNil()

	r, outcome := s.Analyze(context.Background(), req)
	assert.False(t, outcome.Cached)
	assert.Equal(t, chart.Analyze(req), r)
	assert.Equal(t, BirthKey(req.Birth), outcome.BirthKey)

	e := receive(t, archive.events)
	assert.Equal(t, outcome.RecordID, e.ID)
	assert.Equal(t, BirthKey(req.Birth), e.BirthKey)
	assert.Equal(t, 2024, e.TargetYear)
	assert.Equal(t, 35, e.CurrentAge)
	assert.Len(t, e.ID, 26)
	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", gjson.GetBytes(e.Result, "layout.label").String())
}

func TestAnalyzeDegradesWithoutRedis(t *testing.T) {
	s, archive, mock := newTestChart(t)
	req := referenceRequest(t)

	mock.ExpectGet("chartResult#birthKey:" + CacheKey(req)).SetErr(errors.New("connection refused"))

	r, outcome := s.Analyze(context.Background(), req)
	assert.False(t, outcome.Cached)
	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", r.Layout.Label)
	assert.Equal(t, outcome.RecordID, receive(t, archive.events).ID)
}

func TestAnalyzeArchiveDisabled(t *testing.T) {
	s, archive, mock := newTestChart(t)
	s.Config.ArchiveEnabled = false
	req := referenceRequest(t)

	mock.ExpectGet("chartResult#birthKey:" + CacheKey(req)).SetErr(errors.New("connection refused"))

	_, outcome := s.Analyze(context.Background(), req)
	assert.False(t, outcome.Cached)
	assert.Empty(t, outcome.RecordID)
	assert.Equal(t, BirthKey(req.Birth), outcome.BirthKey)
	select {
	case <-archive.events:
		t.Fatal("archive disabled but an event was published")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAnalyzeSpans(t *testing.T) {
	recorder := spanRecorder()
	s, archive, mock := newTestChart(t)
	req := referenceRequest(t)

	mock.ExpectGet("chartResult#birthKey:" + CacheKey(req)).SetErr(errors.New("connection refused"))

	_, outcome := s.Analyze(context.Background(), req)
	receive(t, archive.events)

	analyze := endedSpan(t, recorder, "service.chart.analyze", outcome.BirthKey)
	compute := endedSpan(t, recorder, "service.chart.compute", "")
	assert.Equal(t, analyze.SpanContext().TraceID(), compute.SpanContext().TraceID())
	assert.Equal(t, analyze.SpanContext().SpanID(), compute.Parent().SpanID())
}

func TestPaipanAndAnnual(t *testing.T) {
	s, _, _ := newTestChart(t)
	req := referenceRequest(t)

	assert.Equal(t, chart.Paipan(req.Birth), s.Paipan(req.Birth))
	assert.Equal(t, chart.AnnualWindow(req.Birth, 2024), s.Annual(req.Birth, 2024))
}
