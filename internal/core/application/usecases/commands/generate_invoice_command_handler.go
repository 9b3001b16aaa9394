package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GenerateInvoiceCommandHandler issues the single invoice of a delivered order.
//
// Generation is idempotent. An existing invoice is returned with created set
// to false. When a concurrent generator wins the unique order constraint, the
// loser rolls back and returns the winner's invoice the same way. This makes
// the handler safe to call from the status update path and from the
// reconciliation job at the same time.
type GenerateInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	users      ports.UserDirectory
	taxes      ports.TaxRateResolver
	issuer     services.InvoiceIssuer
	clock      ports.Clock
	logger     *zap.Logger
}

func NewGenerateInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	users ports.UserDirectory,
	taxes ports.TaxRateResolver,
	clock ports.Clock,
	logger *zap.Logger,
) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		taxes:      taxes,
		issuer:     services.NewInvoiceIssuer(),
		clock:      clock,
		logger:     logger.With(zap.String("component", "invoice_generator")),
	}
}

func (h GenerateInvoiceCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateInvoiceCommand,
) (inv *invoice.Invoice, created bool, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, false, err
	}

	inv, err = h.generate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrConflict) {
		h.logger.Info("invoice created concurrently, using the existing one", zap.Stringer("order_id", cmd.OrderID()))
		inv, err = h.existing(ctx, cmd.OrderID())
		return inv, false, err
	}
	if err != nil {
		return nil, false, err
	}
	if inv != nil {
		return inv, true, nil
	}

	h.logger.Info("invoice already exists, skipping", zap.Stringer("order_id", cmd.OrderID()))
	inv, err = h.existing(ctx, cmd.OrderID())
	return inv, false, err
}

// generate returns a nil invoice and nil error when the order is already invoiced.
func (h GenerateInvoiceCommandHandler) generate(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	_, err := invoiceRepo.GetByOrder(ctx, orderID)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	catalog, err := h.catalog(ctx, uow.ProductRepository(), o)
	if err != nil {
		return nil, err
	}

	store, err := h.users.Get(ctx, o.StoreID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	seq, err := uow.CounterRepository().Next(ctx, invoice.CounterName(now.Year()))
	if err != nil {
		return nil, err
	}

	inv, err := h.issuer.Issue(kernel.NewUUID(), invoice.FormatNumber(now.Year(), seq), o, catalog, store, now)
	if err != nil {
		return nil, err
	}

	if err = invoiceRepo.Add(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}

func (h GenerateInvoiceCommandHandler) existing(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.InvoiceRepository().GetByOrder(ctx, orderID)
}

// catalog resolves product names and tax rates. Unknown tax references count
// as untaxed.
func (h GenerateInvoiceCommandHandler) catalog(
	ctx context.Context,
	repo ports.ProductRepository,
	o *order.Order,
) (map[kernel.UUID]services.CatalogEntry, error) {
	items := o.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID())
	}

	products, err := repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[kernel.UUID]services.CatalogEntry, len(products))
	for _, p := range products {
		rate := decimal.Zero
		if taxID := p.TaxID(); taxID != nil {
			rate, err = h.taxes.Rate(ctx, *taxID)
			if errors.Is(err, errs.ErrObjectNotFound) {
				h.logger.Warn("unknown tax reference, invoicing untaxed",
					zap.Stringer("product_id", p.ID()),
					zap.Stringer("tax_id", taxID))
				rate, err = decimal.Zero, nil
			}
			if err != nil {
				return nil, err
			}
		}
		catalog[p.ID()] = services.CatalogEntry{Name: p.Name(), TaxRate: rate}
	}
	return catalog, nil
}
