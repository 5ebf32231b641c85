package v1

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/constant"
	modelcache "xuanxin.dev/backend-next/internal/model/cache"
	pkgcache "xuanxin.dev/backend-next/internal/pkg/cache"
	"xuanxin.dev/backend-next/internal/pkg/middlewares"
	"xuanxin.dev/backend-next/internal/server/httpserver"
	"xuanxin.dev/backend-next/internal/server/svr"
	"xuanxin.dev/backend-next/internal/service"
)

// testApp serves the bazi routes with redis failing every command, so
// every analysis takes the uncached path.
func testApp(t *testing.T) *fiber.App {
	t.Helper()
	return archivingApp(t, nil)
}

// archivingApp is testApp with the record routes mounted on archive. A nil
// archive serves the bazi routes only, with archiving off.
func archivingApp(t *testing.T, archive *service.Archive) *fiber.App {
	t.Helper()
	// no expectations are set, the mock fails every command
	db, _ := redismock.NewClientMock()
	modelcache.Initialize(db, nil)
	pkgcache.Initialize(db, nil)

	conf := &appconfig.Config{}
	conf.ChartCacheTTL = time.Hour
	conf.ArchiveEnabled = archive != nil

	app := fiber.New(fiber.Config{ErrorHandler: httpserver.ErrorHandler})
	app.Use(middlewares.InjectI18n())
	v1, _ := svr.CreateEndpointGroups(app)
	RegisterBazi(v1, Bazi{
		ChartService:   service.NewChart(conf, archive),
		ElementService: service.NewElement(),
	})
	if archive != nil {
		RegisterRecord(v1, Record{ArchiveService: archive})
	}
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

const referenceBody = `{"year":1990,"month":5,"day":15,"hour":10,"gender":"male","targetYear":2024}`

func TestAnalyze(t *testing.T) {
	app := testApp(t)

	resp, body := do(t, app, postJSON("/api/v1/bazi/analyze", referenceBody))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "miss", resp.Header.Get(constant.CacheStatusHeader))
	assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "no-cache")
	assert.Regexp(t, "^[0-9a-f]{16}$", resp.Header.Get(constant.BirthKeyHeader))
	// archiving is off
	assert.Empty(t, resp.Header.Get(constant.RecordIDHeader))

	assert.Equal(t, "庚午 辛巳 庚辰 辛巳", gjson.Get(body, "layout.label").String())
	assert.EqualValues(t, 35, gjson.Get(body, "currentAge").Int())
	assert.Equal(t, "甲申", gjson.Get(body, "decades.current.pair").String())
	assert.Equal(t, "顺行", gjson.Get(body, "decades.directionLabel").String())
	assert.Equal(t, []string{"甲申"}, lo.Map(gjson.Get(body, "decades.decades.#(current==true)#.pair").Array(),
		func(r gjson.Result, _ int) string { return r.String() }))
	assert.Equal(t, "7-16岁", gjson.Get(body, "decades.decades.0.range").String())
	assert.Len(t, gjson.Get(body, "annual.years").Array(), 10)
}

func TestAnalyzeRejectsImpossibleDate(t *testing.T) {
	app := testApp(t)

	req := postJSON("/api/v1/bazi/analyze", `{"year":2023,"month":2,"day":29,"hour":10,"gender":"female"}`)
	req.Header.Set(fiber.HeaderAcceptLanguage, "zh-CN,zh;q=0.9")
	resp, body := do(t, app, req)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", gjson.Get(body, "code").String())
	assert.Equal(t, "calendarday", gjson.Get(body, "violations.0.violation").String())
	assert.Contains(t, gjson.Get(body, "violations.0.message").String(), "不存在")
}

func TestPaipan(t *testing.T) {
	app := testApp(t)

	resp, body := do(t, app, postJSON("/api/v1/bazi/paipan", referenceBody))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "马", gjson.Get(body, "zodiac").String())
	assert.Equal(t, "白蜡金", gjson.Get(body, "pillars.2.nayin").String())
	assert.False(t, gjson.Get(body, "elements").Exists())
}

func TestGetElement(t *testing.T) {
	app := testApp(t)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/bazi/elements/%E6%9C%A8", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "东方", gjson.Get(body, "direction").String())
	assert.Contains(t, resp.Header.Get(fiber.HeaderCacheControl), "public")

	_, byName := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/bazi/elements/wood", nil))
	assert.JSONEq(t, body, byName)

	resp, body = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/bazi/elements/aether", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", gjson.Get(body, "code").String())
}

func TestGetAnnual(t *testing.T) {
	app := testApp(t)

	resp, body := do(t, app, httptest.NewRequest(http.MethodGet,
		"/api/v1/bazi/annual?year=1990&month=5&day=15&hour=10&gender=male&targetYear=2024", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 2024, gjson.Get(body, "targetYear").Int())

	years := gjson.Get(body, "years").Array()
	require.Len(t, years, 10)
	assert.EqualValues(t, 2028, gjson.Get(body, `years.#(pair=="戊申").year`).Int())

	resp, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/bazi/annual?year=1990", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
