package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"xuanxin.dev/backend-next/internal/model"
	"xuanxin.dev/backend-next/internal/repo/selector"
)

type ChartRecord struct {
	db *bun.DB

	sel selector.S[model.ChartRecord]
}

func NewChartRecord(db *bun.DB) *ChartRecord {
	return &ChartRecord{
		db:  db,
		sel: selector.New[model.ChartRecord](db),
	}
}

// CreateChartRecord inserts the record. A redelivered event carries the same
// public id and is ignored; inserted reports whether a row was written.
func (r *ChartRecord) CreateChartRecord(ctx context.Context, record *model.ChartRecord) (inserted bool, err error) {
	res, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (public_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ChartRecord) GetChartRecordByPublicID(ctx context.Context, publicID string) (*model.ChartRecord, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("public_id = ?", publicID)
	})
}

// GetLatestChartRecordsByBirthKey lists the newest records first, without
// their result documents.
func (r *ChartRecord) GetLatestChartRecordsByBirthKey(ctx context.Context, birthKey string, limit int) ([]*model.ChartRecord, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.ExcludeColumn("result").
			Where("birth_key = ?", birthKey).
			OrderExpr("computed_at DESC, record_id DESC").
			Limit(limit)
	})
}

// CreateSchema creates the table and its indexes when missing.
func (r *ChartRecord) CreateSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().
		Model((*model.ChartRecord)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, "create table chart_records")
	}
	if _, err := r.db.NewCreateIndex().
		Model((*model.ChartRecord)(nil)).
		Index("idx_chart_records_birth_key_computed_at").
		Column("birth_key", "computed_at").
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, "create index on chart_records")
	}
	return nil
}
