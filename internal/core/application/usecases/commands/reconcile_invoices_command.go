package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const maxReconcileBatch = 500

var ErrReconcileInvoicesCommandIsNotConstructed = errors.New(
	"ReconcileInvoicesCommand must be created via NewReconcileInvoicesCommand constructor",
)

// ReconcileInvoicesCommand asks for the invoices of delivered orders that have
// none yet. Like GenerateInvoiceCommand it is issued by the system.
type ReconcileInvoicesCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewReconcileInvoicesCommand(batchSize int) (ReconcileInvoicesCommand, error) {
	if batchSize < 1 || batchSize > maxReconcileBatch {
		return ReconcileInvoicesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxReconcileBatch)
	}

	return ReconcileInvoicesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileInvoicesCommandIsNotConstructed)
}

func (c ReconcileInvoicesCommand) BatchSize() int {
	return c.batchSize
}
