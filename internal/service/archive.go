package service

import (
	"context"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/model"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/jetstream"
	"xuanxin.dev/backend-next/internal/repo"
)

const defaultRecordLimit = 20

type Archive struct {
	JetStream       nats.JetStreamContext
	ChartRecordRepo *repo.ChartRecord
}

func NewArchive(js nats.JetStreamContext, chartRecordRepo *repo.ChartRecord) *Archive {
	return &Archive{
		JetStream:       js,
		ChartRecordRepo: chartRecordRepo,
	}
}

// Publish sends the event to the archive stream. The message id makes a
// retried publish land once.
func (s *Archive) Publish(ctx context.Context, event *types.ChartComputed) (err error) {
	ctx, span := tracer.Start(ctx, "service.archive.publish")
	span.SetAttributes(attribute.String("archive.event_id", event.ID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "publish failed")
		}
		span.End()
	}()

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal chart computed event")
	}

	msg := nats.NewMsg(constant.ArchiveSubject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, jetstream.MessageID("chart", event.ID))

	return retry.Do(
		func() error {
			_, err := s.JetStream.PublishMsg(msg, nats.Context(ctx))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Str("id", event.ID).Msg("retrying archive publish")
		}),
	)
}

func recordOf(event *types.ChartComputed) *model.ChartRecord {
	return &model.ChartRecord{
		PublicID:   event.ID,
		BirthKey:   event.BirthKey,
		BirthYear:  event.Birth.Year,
		BirthMonth: event.Birth.Month,
		BirthDay:   event.Birth.Day,
		BirthHour:  event.Birth.Hour,
		Gender:     event.Birth.Gender.String(),
		TargetYear: event.TargetYear,
		CurrentAge: event.CurrentAge,
		Result:     []byte(event.Result),
		ComputedAt: event.ComputedAt,
	}
}

// Persist stores the event. Redelivered events are accepted and ignored.
func (s *Archive) Persist(ctx context.Context, event *types.ChartComputed) error {
	inserted, err := s.ChartRecordRepo.CreateChartRecord(ctx, recordOf(event))
	if err != nil {
		return errors.Wrap(err, "persist chart record")
	}
	if !inserted {
		log.Debug().Str("id", event.ID).Msg("chart record already archived")
	}
	return nil
}

// GetRecord returns the record, or only the given gjson paths of it.
func (s *Archive) GetRecord(ctx context.Context, publicID string, fields []string) (any, error) {
	record, err := s.ChartRecordRepo.GetChartRecordByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return record, nil
	}
	doc, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "marshal chart record")
	}
	return project(doc, fields), nil
}

// ParseFields splits a comma separated fields query, dropping blanks.
func ParseFields(q string) []string {
	var fields []string
	for _, f := range strings.Split(q, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// project maps every path to its raw JSON value; absent paths map to null.
func project(doc []byte, fields []string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(fields))
	for i, res := range gjson.GetManyBytes(doc, fields...) {
		if !res.Exists() {
			out[fields[i]] = json.RawMessage("null")
			continue
		}
		out[fields[i]] = json.RawMessage(res.Raw)
	}
	return out
}

func summarize(records []*model.ChartRecord) ([]*types.RecordSummary, error) {
	summaries := make([]*types.RecordSummary, 0, len(records))
	if err := copier.Copy(&summaries, &records); err != nil {
		return nil, errors.Wrap(err, "copy chart records")
	}
	return summaries, nil
}

// ListByBirthKey returns the newest record summaries of a birth key.
func (s *Archive) ListByBirthKey(ctx context.Context, birthKey string, limit int) ([]*types.RecordSummary, error) {
	if limit <= 0 {
		limit = defaultRecordLimit
	}
	records, err := s.ChartRecordRepo.GetLatestChartRecordsByBirthKey(ctx, birthKey, limit)
	if err != nil {
		return nil, err
	}
	return summarize(records)
}
