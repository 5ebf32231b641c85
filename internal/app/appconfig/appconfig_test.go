package appconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xuanxin.dev/backend-next/internal/app/appcontext"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("XUANXIN_V1_POSTGRES_DSN", "postgres://localhost:5432/xuanxin?sslmode=disable")
	t.Setenv("XUANXIN_V1_CHART_CACHE_TTL", "30m")

	conf, err := Parse(appcontext.Declare(appcontext.EnvCLI))
	require.NoError(t, err)

	assert.Equal(t, appcontext.EnvCLI, conf.AppContext.Env)
	assert.Equal(t, 30*time.Minute, conf.ChartCacheTTL)
	assert.Equal(t, []string{"::1", "127.0.0.1", "10.0.0.0/8"}, conf.TrustedProxies)
	assert.True(t, conf.ArchiveEnabled)
	assert.Equal(t, 2, conf.ArchiveWorkerCount)
	assert.False(t, conf.TracingEnabled)
	assert.Equal(t, []string{"stdout"}, conf.TracingExporters)
	assert.Equal(t, 1.0, conf.TracingSampleRate)
}
