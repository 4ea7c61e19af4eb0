package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadolammi/portfolioparser/internal/database"
	"github.com/muhammadolammi/portfolioparser/internal/logger"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

type WorkerConfig struct {
	RabbitMQURL string
	Service     *Service
	Publisher   Publisher
}

// StartConsumerWorkerPool runs numWorkers consumers until ctx is cancelled
// or one of them fails.
func (workerConfig *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range numWorkers {
		logger.Info().Int("worker", i+1).Msg("worker started")
		g.Go(func() error {
			return workerConfig.worker(ctx, i)
		})
	}
	return g.Wait()
}

func (workerConfig *WorkerConfig) worker(ctx context.Context, id int) error {
	conn, err := amqp.Dial(workerConfig.RabbitMQURL)
	if err != nil {
		return fmt.Errorf("worker %d: error dialling rabbitmq: %w", id+1, err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: error opening rabbitmq channel: %w", id+1, err)
	}
	defer ch.Close()

	if _, err := declareJobQueue(ch); err != nil {
		return fmt.Errorf("worker %d: %w", id+1, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("worker %d: error setting qos: %w", id+1, err)
	}

	msgs, err := ch.Consume(
		parseJobsQueue, // queue name
		"",             // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("worker %d: error consuming rabbitmq messages: %w", id+1, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("worker %d: delivery channel closed", id+1)
			}
			var job ParseJobMessage
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.Error().Err(err).Int("worker", id+1).Msg("error unmarshalling parse job, dropping it")
				msg.Nack(false, false)
				continue
			}
			logger.Info().Int("worker", id+1).Str("job_id", job.JobID.String()).Msg("processing parse job")
			if workerConfig.processJob(ctx, job) {
				if err := msg.Nack(false, true); err != nil {
					logger.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("requeue failed")
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				logger.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("ack failed")
			}
		}
	}
}

// processJob runs one parse job and records the outcome on the job row.
// It reports true when ctx was cancelled before the job finished; the job is
// then back in queued and the delivery should be requeued.
func (workerConfig *WorkerConfig) processJob(ctx context.Context, job ParseJobMessage) (requeue bool) {
	db := workerConfig.Service.DB
	// status writes must land even while shutting down
	writeCtx := context.WithoutCancel(ctx)

	workerConfig.setStatus(writeCtx, job, StatusProcessing, "parsing started")

	upload, err := db.GetUpload(ctx, job.UploadID)
	if err != nil {
		return workerConfig.abort(ctx, writeCtx, job, fmt.Errorf("error getting upload %s: %w", job.UploadID, err))
	}

	data, err := workerConfig.Service.ParseUpload(ctx, upload)
	if err != nil {
		return workerConfig.abort(ctx, writeCtx, job, err)
	}

	result, err := json.Marshal(data)
	if err != nil {
		workerConfig.fail(writeCtx, job, fmt.Errorf("failed to marshal parse result: %w", err))
		return false
	}

	_, err = retry(writeCtx, 3, func() (any, error) {
		return nil, db.CompleteParseJob(writeCtx, database.CompleteParseJobParams{
			Result: result,
			ID:     job.JobID,
		})
	})
	if err != nil {
		logger.Error().Err(err).Str("job_id", job.JobID.String()).Msg("failed to save parse result")
		workerConfig.fail(writeCtx, job, fmt.Errorf("failed to save parse result: %w", err))
		return false
	}

	workerConfig.publish(job, StatusCompleted, "parsing completed")
	logger.Info().Str("job_id", job.JobID.String()).Msg("parse job completed")
	return false
}

// abort records err as the job's failure, unless ctx was cancelled, in which
// case the job goes back to queued for another worker.
func (workerConfig *WorkerConfig) abort(ctx, writeCtx context.Context, job ParseJobMessage, err error) (requeue bool) {
	if ctx.Err() != nil {
		logger.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("parse job interrupted, requeueing")
		workerConfig.setStatus(writeCtx, job, StatusQueued, "parsing interrupted")
		return true
	}
	workerConfig.fail(writeCtx, job, err)
	return false
}

func (workerConfig *WorkerConfig) setStatus(ctx context.Context, job ParseJobMessage, status, message string) {
	err := workerConfig.Service.DB.UpdateParseJobStatus(ctx, database.UpdateParseJobStatusParams{
		Status: status,
		ID:     job.JobID,
	})
	if err != nil {
		logger.Warn().Err(err).Str("job_id", job.JobID.String()).Str("status", status).Msg("error updating job status")
	}
	workerConfig.publish(job, status, message)
}

func (workerConfig *WorkerConfig) fail(ctx context.Context, job ParseJobMessage, cause error) {
	logger.Error().Err(cause).Str("job_id", job.JobID.String()).Msg("parse job failed")
	err := workerConfig.Service.DB.FailParseJob(ctx, database.FailParseJobParams{
		Error: cause.Error(),
		ID:    job.JobID,
	})
	if err != nil {
		logger.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("error marking job failed")
	}
	workerConfig.publish(job, StatusFailed, "parsing failed")
}

func (workerConfig *WorkerConfig) publish(job ParseJobMessage, status, message string) {
	err := workerConfig.Publisher.PublishUpdate(ParseUpdate{
		JobID:     job.JobID,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
	if err != nil {
		logger.Warn().Err(err).Str("job_id", job.JobID.String()).Msg("failed to publish update")
	}
}
