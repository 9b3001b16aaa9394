package cmd

import (
	"context"
	"errors"
	"fmt"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/events"
	"fulfillment/internal/adapters/out/mailer"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/userrepo"
	"fulfillment/internal/adapters/out/realtime"
	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Directory resolves users and tax rates for the handlers.
type Directory interface {
	ports.UserDirectory
	ports.TaxRateResolver
}

// ReadModels serves every query handler.
type ReadModels interface {
	ports.OrderReader
	ports.ReturnReader
	ports.InvoiceReader
	ports.NotificationReader
	ports.ChatReader
}

type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	clock      ports.Clock
	uowFactory ports.UnitOfWorkFactory
	reader     ReadModels
	directory  Directory
	fanout     *notifications.FanOut
	subscriber httpin.EventSubscriber
	closers    []func() error
}

// NewCompositionRoot connects the storage and the optional transports named
// by cfg. Close releases everything it opened.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		clock:  clock.System{},
	}

	var err error
	switch cfg.Storage {
	case StorageMemory:
		c.useMemory()
	default:
		err = c.usePostgres(ctx)
	}
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	var opts []notifications.Option
	opts = append(opts, notifications.WithStatusChangeEmails(cfg.EmailOnStatusChange))

	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		if err = client.Ping(ctx).Err(); err != nil {
			return nil, errors.Join(fmt.Errorf("ping redis: %w", err), c.Close())
		}
		opts = append(opts, notifications.WithPusher(realtime.NewRedisPusher(client)))
		c.subscriber = realtime.NewSubscriber(client, logger)
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(events.NewWriter(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic))
		c.closers = append(c.closers, publisher.Close)
		opts = append(opts, notifications.WithPublisher(publisher))
	}

	if cfg.SMTPHost != "" {
		m, err := mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		opts = append(opts, notifications.WithMailer(m))
	}

	c.fanout = notifications.NewFanOut(c.directory, c.clock, logger, opts...)
	return c, nil
}

func (c *CompositionRoot) useMemory() {
	store := memory.NewStore()
	c.uowFactory = memory.NewUnitOfWorkFactory(store)
	c.reader = memory.NewReader(store)
	c.directory = memory.NewDirectory()
	c.logger.Warn("Using in-memory storage, state is lost on restart")
}

func (c *CompositionRoot) usePostgres(ctx context.Context) error {
	dsn := c.cfg.DSN()
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("gorm pool: %w", err)
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err = postgres.Migrate(gormDB.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	sqlxDB, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return fmt.Errorf("open sqlx: %w", err)
	}
	c.closers = append(c.closers, sqlxDB.Close)

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	c.reader = postgres.NewSqlxReader(sqlxDB)
	c.directory = userrepo.NewGormDirectory(gormDB)
	return nil
}

// Close runs the closers in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}

// EventSubscriber is nil unless Redis is configured.
func (c *CompositionRoot) EventSubscriber() httpin.EventSubscriber {
	return c.subscriber
}

func (c *CompositionRoot) orderingUoW() commands.OrderingUoWFactory {
	return FuncOrderingUoWFactory(func() commands.OrderingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) returnUoW() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) invoiceUoW() commands.InvoiceUoWFactory {
	return FuncInvoiceUoWFactory(func() commands.InvoiceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoW() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) chatUoW() commands.ChatUoWFactory {
	return FuncChatUoWFactory(func() commands.ChatUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGenerateInvoiceCommandHandler() commands.GenerateInvoiceCommandHandler {
	return commands.NewGenerateInvoiceCommandHandler(
		c.invoiceUoW(), c.directory, c.directory, c.clock, c.logger)
}

func (c *CompositionRoot) CreateReconcileInvoicesCommandHandler() commands.ReconcileInvoicesCommandHandler {
	return commands.NewReconcileInvoicesCommandHandler(
		c.invoiceUoW(), c.CreateGenerateInvoiceCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderingUoW(), c.directory, c.fanout, c.clock)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.orderingUoW(), c.directory, c.fanout, c.clock)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.orderingUoW(), c.fanout, c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		c.orderingUoW(), c.CreateGenerateInvoiceCommandHandler(), c.fanout, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderingUoW(), c.fanout, c.clock)
}

func (c *CompositionRoot) CreateFinalizeReturnCommandHandler() commands.FinalizeReturnCommandHandler {
	return commands.NewFinalizeReturnCommandHandler(c.orderingUoW(), c.fanout, c.clock)
}

func (c *CompositionRoot) CreateSoftDeleteOrderCommandHandler() commands.SoftDeleteOrderCommandHandler {
	return commands.NewSoftDeleteOrderCommandHandler(c.orderingUoW(), c.fanout, c.clock)
}

func (c *CompositionRoot) CreateRequestReturnCommandHandler() commands.RequestReturnCommandHandler {
	return commands.NewRequestReturnCommandHandler(c.returnUoW(), c.fanout, c.clock)
}

func (c *CompositionRoot) CreateUpdateReturnStatusCommandHandler() commands.UpdateReturnStatusCommandHandler {
	return commands.NewUpdateReturnStatusCommandHandler(c.returnUoW(), c.fanout, c.clock)
}

func (c *CompositionRoot) CreateUpdateInvoiceCommandHandler() commands.UpdateInvoiceCommandHandler {
	return commands.NewUpdateInvoiceCommandHandler(c.invoiceUoW(), c.clock)
}

func (c *CompositionRoot) CreateOpenChatSessionCommandHandler() commands.OpenChatSessionCommandHandler {
	return commands.NewOpenChatSessionCommandHandler(c.chatUoW(), c.directory, c.clock)
}

func (c *CompositionRoot) CreateCloseChatSessionCommandHandler() commands.CloseChatSessionCommandHandler {
	return commands.NewCloseChatSessionCommandHandler(c.chatUoW(), c.clock)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() commands.SendMessageCommandHandler {
	return commands.NewSendMessageCommandHandler(c.chatUoW(), c.directory, c.fanout, c.clock)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		PlaceOrder:      c.CreatePlaceOrderCommandHandler(),
		AssignDelivery:  c.CreateAssignDeliveryCommandHandler(),
		ConfirmPickup:   c.CreateConfirmPickupCommandHandler(),
		UpdateStatus:    c.CreateUpdateOrderStatusCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		FinalizeReturn:  c.CreateFinalizeReturnCommandHandler(),
		SoftDeleteOrder: c.CreateSoftDeleteOrderCommandHandler(),
		RequestReturn:   c.CreateRequestReturnCommandHandler(),
		UpdateReturn:    c.CreateUpdateReturnStatusCommandHandler(),
		UpdateInvoice:   c.CreateUpdateInvoiceCommandHandler(),
		OpenSession:     c.CreateOpenChatSessionCommandHandler(),
		CloseSession:    c.CreateCloseChatSessionCommandHandler(),
		SendMessage:     c.CreateSendMessageCommandHandler(),
		MarkRead:        commands.NewMarkNotificationReadCommandHandler(c.notificationUoW()),
		MarkAllRead:     commands.NewMarkAllNotificationsReadCommandHandler(c.notificationUoW()),

		GetOrder:          queries.NewGetOrderQueryHandler(c.reader),
		ListOrders:        queries.NewListOrdersQueryHandler(c.reader),
		ListReturns:       queries.NewListReturnsQueryHandler(c.reader, c.reader),
		GetInvoice:        queries.NewGetInvoiceQueryHandler(c.reader, c.reader),
		ListInvoices:      queries.NewListInvoicesQueryHandler(c.reader),
		ListNotifications: queries.NewListNotificationsQueryHandler(c.reader),
		ChatHistory:       queries.NewChatHistoryQueryHandler(c.reader),
		ListSessions:      queries.NewListChatSessionsQueryHandler(c.reader),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileInvoicesCommandHandler(), c.cfg.InvoiceReconcileSchedule, c.logger)
}

type FuncOrderingUoWFactory func() commands.OrderingUoW

func (f FuncOrderingUoWFactory) Create() commands.OrderingUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncInvoiceUoWFactory func() commands.InvoiceUoW

func (f FuncInvoiceUoWFactory) Create() commands.InvoiceUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncChatUoWFactory func() commands.ChatUoW

func (f FuncChatUoWFactory) Create() commands.ChatUoW {
	return f()
}
