package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/core/chart"
	"xuanxin.dev/backend-next/internal/core/cycle"
	"xuanxin.dev/backend-next/internal/model/cache"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/observability"
)

var tracer = otel.Tracer("service")

// archivePublishTimeout bounds the background publish of a computed profile,
// retries included.
const archivePublishTimeout = 5 * time.Second

type archivePublisher interface {
	Publish(ctx context.Context, event *types.ChartComputed) error
}

type Chart struct {
	Config *appconfig.Config

	archive archivePublisher
	now     func() time.Time
}

func NewChart(conf *appconfig.Config, archive *Archive) *Chart {
	s := &Chart{
		Config: conf,
		now:    time.Now,
	}
	if archive != nil {
		s.archive = archive
	}
	return s
}

func hashKey(raw string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(raw))
}

func birthRaw(b cycle.Birth) string {
	return strconv.Itoa(b.Year) + "|" + strconv.Itoa(b.Month) + "|" + strconv.Itoa(b.Day) + "|" +
		strconv.Itoa(b.Hour) + "|" + b.Gender.String()
}

// BirthKey identifies a birth moment regardless of the reading year. Archived
// records are listed by it.
func BirthKey(b cycle.Birth) string {
	return hashKey(birthRaw(b))
}

// CacheKey identifies an analysis: target year and current age both change
// the result.
func CacheKey(req chart.Request) string {
	return hashKey(birthRaw(req.Birth) + "|" + strconv.Itoa(req.TargetYear) + "|" + strconv.Itoa(req.CurrentAge))
}

func observe(kind string, start time.Time) {
	observability.ChartComputeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (s *Chart) compute(ctx context.Context, req chart.Request) *chart.Result {
	_, span := tracer.Start(ctx, "service.chart.compute")
	defer span.End()
	defer observe("analyze", time.Now())
	return chart.Analyze(req)
}

// Analysis tells how a profile was served.
type Analysis struct {
	Cached bool
	// BirthKey lists the archive records of the birth.
	BirthKey string
	// RecordID is the public id of the archive record queued for the
	// profile. Empty on a cache hit or when archiving is off.
	RecordID string
}

// Analyze serves the profile from the chart cache, computing and archiving it
// on a miss. The request must already carry its defaults. The cache never
// fails the request: when redis is unreachable the profile is computed
// directly.
func (s *Chart) Analyze(ctx context.Context, req chart.Request) (*chart.Result, Analysis) {
	ctx, span := tracer.Start(ctx, "service.chart.analyze")
	defer span.End()

	key := CacheKey(req)
	outcome := Analysis{BirthKey: BirthKey(req.Birth)}

	var r chart.Result
	calculated, err := cache.ChartResults.MutexGetSet(ctx, key, &r, func() (*chart.Result, error) {
		return s.compute(ctx, req), nil
	}, s.Config.ChartCacheTTL)
	if err != nil {
		log.Warn().
			Str("evt.name", "chart.cache.degraded").
			Err(err).
			Str("key", key).
			Msg("chart cache unavailable, computing uncached")
		calculated = true
		r = *s.compute(ctx, req)
	}

	if calculated {
		observability.ChartCacheResult.WithLabelValues("miss").Inc()
		outcome.RecordID = s.archiveAsync(req, &r)
	} else {
		observability.ChartCacheResult.WithLabelValues("hit").Inc()
	}
	outcome.Cached = !calculated

	span.SetAttributes(
		attribute.Bool("chart.cached", outcome.Cached),
		attribute.String("chart.birth_key", outcome.BirthKey),
	)
	return &r, outcome
}

// archiveAsync queues the profile for archiving and returns the id of the
// record it will be stored under, empty when nothing was queued.
func (s *Chart) archiveAsync(req chart.Request, r *chart.Result) string {
	if !s.Config.ArchiveEnabled || s.archive == nil {
		return ""
	}
	event, err := s.event(req, r)
	if err != nil {
		log.Error().Err(err).Msg("failed to build archive event")
		return ""
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archivePublishTimeout)
		defer cancel()
		if err := s.archive.Publish(ctx, event); err != nil {
			observability.ArchivePublishFailures.WithLabelValues().Inc()
			log.Error().
				Str("evt.name", "archive.publish").
				Err(err).
				Str("id", event.ID).
				Msg("failed to publish computed chart")
		}
	}()
	return event.ID
}

func (s *Chart) event(req chart.Request, r *chart.Result) (*types.ChartComputed, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "marshal result")
	}
	now := s.now()
	return &types.ChartComputed{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		BirthKey:   BirthKey(req.Birth),
		Birth:      req.Birth,
		TargetYear: req.TargetYear,
		CurrentAge: req.CurrentAge,
		Result:     data,
		ComputedAt: now,
	}, nil
}

func (s *Chart) Paipan(b cycle.Birth) chart.Layout {
	defer observe("paipan", time.Now())
	return chart.Paipan(b)
}

func (s *Chart) Annual(b cycle.Birth, target int) []chart.Year {
	defer observe("annual", time.Now())
	return chart.AnnualWindow(b, target)
}
