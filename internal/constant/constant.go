package constant

const (
	ContextKeyRequestID  = "requestid"
	ContextKeyTranslator = "T"
	// ContextKeySentryHub is where fibersentry stores the request hub.
	ContextKeySentryHub = "sentry-hub"

	RequestIDHeader = "X-Xuanxin-Request-ID"

	// CacheStatusHeader reports whether a profile was served from the cache.
	CacheStatusHeader = "X-Xuanxin-Cache"

	// BirthKeyHeader carries the birth key a profile is archived under.
	BirthKeyHeader = "X-Xuanxin-Birth-Key"

	// RecordIDHeader carries the public id of the archive record queued for
	// a computed profile.
	RecordIDHeader = "X-Xuanxin-Record"

	// SlimHeaderKey marks requests that shall be ignored by Sentry transaction tracing.
	// Health checks set it to avoid useless data being sent to Sentry.
	SlimHeaderKey = "X-Slim"
)

const (
	// ArchiveStreamName is the JetStream stream that buffers computed profiles.
	ArchiveStreamName = "xuanxin-charts"

	// ArchiveSubject is the subject every computed profile is published on.
	ArchiveSubject = "CHART.computed"

	ArchiveConsumerGroup = "xuanxin-archivers"
)
