package types

import (
	"xuanxin.dev/backend-next/internal/core/chart"
)

type AnnualResponse struct {
	TargetYear int          `json:"targetYear"`
	Years      []chart.Year `json:"years"`
}

type RecordsResponse struct {
	BirthKey string           `json:"birthKey"`
	Records  []*RecordSummary `json:"records"`
}
