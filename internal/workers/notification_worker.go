package workers

import (
	"context"
	"fmt"

	"cardswap/internal/email"
	"cardswap/internal/logger"
	"cardswap/internal/metrics"
)

const workerName = "notification"

// Виды уведомлений (метка kind в метриках)
const (
	KindSubmission = "submission"
	KindContact    = "contact"
)

// NotificationJob - одно письмо в очереди
type NotificationJob struct {
	Kind  string
	Email *email.Email
}

// NotificationWorker доставляет письма в фоне, отвязанно от запроса.
// Ошибки доставки не повторяются, а публикуются в канал Errors().
type NotificationWorker struct {
	provider email.Provider
	jobs     chan NotificationJob
	errs     chan error
}

func NewNotificationWorker(provider email.Provider, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationWorker{
		provider: provider,
		jobs:     make(chan NotificationJob, queueSize),
		errs:     make(chan error, queueSize),
	}
}

// Enqueue никогда не блокирует: при полной очереди письмо отбрасывается
func (w *NotificationWorker) Enqueue(job NotificationJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		metrics.NotificationsTotal.WithLabelValues(job.Kind, metrics.ResultDropped).Inc()
		logger.WorkerLog(workerName, "enqueue", fmt.Errorf("queue is full, %s notification dropped", job.Kind))
		return false
	}
}

// Errors - канал ошибок доставки
func (w *NotificationWorker) Errors() <-chan error {
	return w.errs
}

// Start запускает цикл доставки; он завершается вместе с ctx
func (w *NotificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

// LogErrors вычитывает канал ошибок в лог до отмены ctx
func (w *NotificationWorker) LogErrors(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-w.errs:
				logger.WorkerLog(workerName, "deliver", err)
			}
		}
	}()
}

func (w *NotificationWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped", "pending", len(w.jobs))
			return
		case job := <-w.jobs:
			w.deliver(ctx, job)
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, job NotificationJob) {
	if err := w.provider.Send(ctx, job.Email); err != nil {
		metrics.NotificationsTotal.WithLabelValues(job.Kind, metrics.ResultFailed).Inc()
		w.publish(fmt.Errorf("%s notification to %v: %w", job.Kind, job.Email.To, err))
		return
	}

	metrics.NotificationsTotal.WithLabelValues(job.Kind, metrics.ResultSent).Inc()
	logger.Debug("Notification sent", "kind", job.Kind, "subject", job.Email.Subject)
}

func (w *NotificationWorker) publish(err error) {
	select {
	case w.errs <- err:
	default:
		// никто не читает ошибки, пишем напрямую
		logger.WorkerLog(workerName, "deliver", err)
	}
}
