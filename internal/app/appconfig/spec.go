package appconfig

import (
	"time"

	"xuanxin.dev/backend-next/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// log at trace level.
	DevMode bool `split_words:"true"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL.
	NatsURL string `required:"true" split_words:"true" default:"nats://127.0.0.1:4222"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/1"`

	// SentryDSN is the DSN of the Sentry server. Leaving it empty disables error reporting.
	SentryDSN string `split_words:"true"`

	// TracingEnabled exports OpenTelemetry spans for HTTP requests, database queries and chart computation.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters lists the span exporters to use: "stdout" pretty-prints spans to stdout, "otlp" ships
	// them over gRPC to the collector configured by the standard OTEL_EXPORTER_OTLP_* variables.
	TracingExporters []string `split_words:"true" default:"stdout"`

	// TracingSampleRate is the ratio of root traces that are sampled.
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// ChartCacheTTL is how long a computed profile stays in redis.
	ChartCacheTTL time.Duration `required:"true" split_words:"true" default:"1h"`

	// ArchiveEnabled publishes every freshly computed profile to the archive stream.
	ArchiveEnabled bool `split_words:"true" default:"true"`

	// ArchiveWorkerCount is the number of archive consumers spawned per instance.
	// Zero disables the consumers on this instance.
	ArchiveWorkerCount int `split_words:"true" default:"2"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
