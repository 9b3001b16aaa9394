package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	invoiceReconciliationJob *InvoiceReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the use cases as dependencies to wire up the job execution.
func NewJobManager(reconciler InvoiceReconciler, reconciliationSchedule string, logger *zap.Logger) *JobManager {
	return &JobManager{
		invoiceReconciliationJob: NewInvoiceReconciliationJob(reconciler, reconciliationSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.invoiceReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start invoice reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.invoiceReconciliationJob.Stop()
}
