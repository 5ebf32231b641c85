package types

import (
	"time"

	"github.com/goccy/go-json"

	"xuanxin.dev/backend-next/internal/core/cycle"
)

// ChartComputed is published on the archive stream for every profile that
// was computed rather than served from the cache.
type ChartComputed struct {
	ID         string          `json:"id"`
	BirthKey   string          `json:"birthKey"`
	Birth      cycle.Birth     `json:"birth"`
	TargetYear int             `json:"targetYear"`
	CurrentAge int             `json:"currentAge"`
	Result     json.RawMessage `json:"result"`
	ComputedAt time.Time       `json:"computedAt"`
}

// RecordSummary is the listing view of an archived record.
type RecordSummary struct {
	PublicID   string    `json:"id"`
	BirthKey   string    `json:"birthKey"`
	TargetYear int       `json:"targetYear"`
	CurrentAge int       `json:"currentAge"`
	ComputedAt time.Time `json:"computedAt"`
}

type RecordQuery struct {
	BirthKey string `query:"birthKey" validate:"required,hexadecimal,len=16"`
	Limit    int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
}
