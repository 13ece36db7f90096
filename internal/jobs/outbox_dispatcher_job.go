package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// dispatchBatchSize bounds how many outbox rows one tick publishes.
const dispatchBatchSize = 100

// OutboxDispatcherJob drains the notification outbox to the message broker.
// Runs every second, publishing unpublished records oldest first. A record
// that fails to publish is left unpublished and retried on the next tick.
type OutboxDispatcherJob struct {
	outbox    ports.OutboxRepository
	publisher ports.NotificationPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxDispatcherJob creates a new job for dispatching outbox notifications.
func NewOutboxDispatcherJob(
	outbox ports.OutboxRepository,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) *OutboxDispatcherJob {
	return &OutboxDispatcherJob{
		outbox:    outbox,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_dispatcher_job"),
	}
}

// Start begins the outbox dispatcher job to run every second.
func (j *OutboxDispatcherJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.dispatch(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox dispatch failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job started (running every second)")
	return nil
}

// Stop stops the outbox dispatcher job.
func (j *OutboxDispatcherJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatcher job stopped")
}

// dispatch publishes one batch of unpublished records. Publishing keeps going
// past individual failures so one poisoned record cannot stall the queue.
func (j *OutboxDispatcherJob) dispatch(ctx context.Context) error {
	records, err := j.outbox.GetAllUnpublished(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, record := range records {
		key := []byte(record.OfferID().String())

		if err = j.publisher.Publish(ctx, key, record.Payload()); err != nil {
			j.logger.ErrorContext(ctx, "Failed to publish notification",
				"notification_id", record.ID().String(), "error", err)
			continue
		}

		record.MarkPublished(time.Now().UTC())
		if err = j.outbox.Update(ctx, record); err != nil {
			// The broker got the message but the stamp write failed, so the
			// next tick republishes. Consumers must tolerate duplicates.
			j.logger.ErrorContext(ctx, "Failed to mark notification as published",
				"notification_id", record.ID().String(), "error", err)
		}
	}

	return nil
}
