package model

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/uptrace/bun"
)

// ChartRecord is an archived profile. Result is the served JSON kept opaque.
type ChartRecord struct {
	bun.BaseModel `bun:"chart_records,alias:cr"`

	RecordID   int             `bun:",pk,autoincrement" json:"-"`
	PublicID   string          `bun:",unique,notnull" json:"id"`
	BirthKey   string          `bun:",notnull" json:"birthKey"`
	BirthYear  int             `bun:",notnull" json:"birthYear"`
	BirthMonth int             `bun:",notnull" json:"birthMonth"`
	BirthDay   int             `bun:",notnull" json:"birthDay"`
	BirthHour  int             `bun:",notnull,default:0" json:"birthHour"`
	Gender     string          `bun:",notnull" json:"gender"`
	TargetYear int             `bun:",notnull" json:"targetYear"`
	CurrentAge int             `bun:",notnull" json:"currentAge"`
	Result     json.RawMessage `bun:"type:jsonb,notnull" json:"result"`
	ComputedAt time.Time       `bun:",notnull" json:"computedAt"`
	CreatedAt  time.Time       `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
