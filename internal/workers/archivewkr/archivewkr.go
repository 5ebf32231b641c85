package archivewkr

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/model/types"
	"xuanxin.dev/backend-next/internal/pkg/jetstream"
	"xuanxin.dev/backend-next/internal/pkg/observability"
	"xuanxin.dev/backend-next/internal/service"
)

const (
	ackWait       = 10 * time.Second
	inProgressAt  = 5 * time.Second
	maxAckPending = 128
)

var tracer = otel.Tracer("archivewkr")

// ErrMalformedEvent marks a message that will never decode. It is
// terminated instead of being redelivered.
var ErrMalformedEvent = errors.New("archivewkr: malformed event")

type persister interface {
	Persist(ctx context.Context, event *types.ChartComputed) error
}

type WorkerDeps struct {
	fx.In

	JetStream      nats.JetStreamContext
	ArchiveService *service.Archive
}

type Worker struct {
	js      nats.JetStreamContext
	archive persister
}

// Start spawns ArchiveWorkerCount consumers for the lifetime of the app.
// Processes that do not run workers get none.
func Start(lc fx.Lifecycle, conf *appconfig.Config, deps WorkerDeps) {
	if !conf.AppContext.RunsWorkers() || !conf.ArchiveEnabled {
		log.Info().
			Str("evt.name", "archive.worker.disabled").
			Msg("archive workers are not started in this process")
		return
	}

	w := &Worker{js: deps.JetStream, archive: deps.ArchiveService}
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for i := 0; i < conf.ArchiveWorkerCount; i++ {
				go func(id int) {
					if err := w.Consumer(runCtx); err != nil && !errors.Is(err, context.Canceled) {
						log.Error().
							Str("evt.name", "archive.worker.exited").
							Err(err).
							Int("worker", id).
							Msg("archive worker exited")
					}
				}(i)
			}
			log.Info().
				Str("evt.name", "archive.worker.started").
				Int("count", conf.ArchiveWorkerCount).
				Msg("archive workers started")
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) Consumer(ctx context.Context) error {
	msgChan := make(chan *nats.Msg, 16)

	sub, err := w.js.ChanQueueSubscribe(constant.ArchiveSubject, constant.ArchiveConsumerGroup, msgChan,
		nats.AckWait(ackWait),
		nats.MaxAckPending(maxAckPending),
		nats.ManualAck(),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", constant.ArchiveSubject)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			log.Warn().Err(err).Msg("failed to unsubscribe archive consumer")
		}
	}()

	for {
		select {
		case msg := <-msgChan:
			w.handle(ctx, msg)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg *nats.Msg) {
	observability.ArchiveConsumeMessagingLatency.WithLabelValues().
		Observe(jetstream.Latency(msg, time.Now()).Seconds())

	taskCtx, cancelTask := context.WithTimeout(ctx, ackWait)
	defer cancelTask()

	inprogressInformer := time.AfterFunc(inProgressAt, func() {
		if err := msg.InProgress(); err != nil {
			log.Error().Err(err).Msg("failed to set msg InProgress")
		}
	})
	defer inprogressInformer.Stop()

	start := time.Now()
	err := w.process(taskCtx, msg.Data)
	observability.ArchiveConsumeDuration.WithLabelValues().Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		if err := msg.Ack(); err != nil {
			log.Error().Err(err).Msg("failed to ack")
		}
	case errors.Is(err, ErrMalformedEvent):
		log.Error().
			Str("evt.name", "archive.consume.malformed").
			Err(err).
			Msg("dropping archive event that cannot be decoded")
		if err := msg.Term(); err != nil {
			log.Error().Err(err).Msg("failed to term")
		}
	default:
		log.Error().
			Str("evt.name", "archive.consume.failed").
			Err(err).
			Msg("failed to persist archive event, requesting redelivery")
		if err := msg.Nak(); err != nil {
			log.Error().Err(err).Msg("failed to nak")
		}
	}
}

func (w *Worker) process(ctx context.Context, data []byte) (err error) {
	ctx, span := tracer.Start(ctx, "archivewkr.process")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "archive event not persisted")
		}
		span.End()
	}()

	event := &types.ChartComputed{}
	if err := json.Unmarshal(data, event); err != nil {
		return errors.WithMessage(ErrMalformedEvent, err.Error())
	}
	if event.ID == "" || len(event.Result) == 0 {
		return errors.WithMessage(ErrMalformedEvent, "event without id or result")
	}

	if err := w.archive.Persist(ctx, event); err != nil {
		return errors.Wrapf(err, "persist record %s", event.ID)
	}

	log.Debug().
		Str("evt.name", "archive.consume.persisted").
		Str("id", event.ID).
		Str("birthKey", event.BirthKey).
		Msg("archive event persisted")
	return nil
}
