package jobs

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/logging"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReconciliationSchedule runs the job at second 0 of every minute.
const DefaultReconciliationSchedule = "0 * * * * *"

const (
	reconcileBatchSize = 100
	reconcileTimeout   = 50 * time.Second
)

// InvoiceReconciler is the use case the job drives.
type InvoiceReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileInvoicesCommand) (int, error)
}

// InvoiceReconciliationJob backfills invoices for delivered orders on a schedule.
type InvoiceReconciliationJob struct {
	handler  InvoiceReconciler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewInvoiceReconciliationJob creates the job. schedule is a six-field cron
// expression with seconds; an empty schedule uses DefaultReconciliationSchedule.
func NewInvoiceReconciliationJob(handler InvoiceReconciler, schedule string, logger *zap.Logger) *InvoiceReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &InvoiceReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logging.Component(logger, "invoice_reconciliation_job"),
	}
}

// Start registers the job and starts the scheduler.
func (j *InvoiceReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("Invoice reconciliation job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one reconciliation pass.
func (j *InvoiceReconciliationJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	cmd, err := commands.NewReconcileInvoicesCommand(reconcileBatchSize)
	if err != nil {
		j.logger.Error("Invoice reconciliation job failed", zap.Error(err))
		return
	}

	created, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("Invoice reconciliation job failed", zap.Int("created", created), zap.Error(err))
		return
	}
	if created > 0 {
		j.logger.Info("Invoices reconciled", zap.Int("created", created))
	}
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *InvoiceReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Invoice reconciliation job stopped")
}
