package cmd

import (
	"context"
	stderrors "errors"

	httpapi "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/events"
	"parceltrack/internal/adapters/out/locking"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"
	"parceltrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide infrastructure and builds the use
// case handlers on top of it.
type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	labels     delivery.LabelCatalog
	runtime    commands.Runtime
	closers    []func() error
}

// NewCompositionRoot connects to postgres, the lock backend and NATS as
// configured. Close releases whatever was opened.
func NewCompositionRoot(cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(cfg.MetricsNamespace),
	}

	if err := c.init(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) init() error {
	labels, err := httpapi.LoadLabels(c.cfg.LabelsFile)
	if err != nil {
		return err
	}
	c.labels = labels

	gormDB, err := gorm.Open(gormpostgres.Open(c.cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return errors.Wrap(err, "connect to postgres")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return errors.Wrap(err, "get postgres pool")
	}
	c.closers = append(c.closers, sqlDB.Close)
	c.gormDB = gormDB
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)

	locker, err := c.newLocker()
	if err != nil {
		return err
	}
	publisher, err := c.newPublisher()
	if err != nil {
		return err
	}

	c.runtime = commands.Runtime{
		UoWFactory: FuncUoWFactory(func() commands.UoW {
			return c.uowFactory.Create()
		}),
		Locker:    locker,
		Publisher: publisher,
	}
	return nil
}

func (c *CompositionRoot) newLocker() (ports.Locker, error) {
	if c.cfg.LockBackend != LockBackendRedis {
		return locking.NewLocalLocker(), nil
	}

	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:    []string{c.cfg.RedisAddr},
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	c.closers = append(c.closers, client.Close)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrapf(err, "ping redis at %s", c.cfg.RedisAddr)
	}

	lockCfg := locking.DefaultRedisLockerConfig()
	lockCfg.TTL = c.cfg.LockTTL()
	return locking.NewRedisLocker(client, lockCfg, c.logger), nil
}

// newPublisher logs every event and forwards it to NATS when configured.
// Publication failures are counted and logged, never returned to commands.
func (c *CompositionRoot) newPublisher() (ports.EventPublisher, error) {
	fanout := events.Fanout{events.NewLogPublisher(c.logger)}

	if c.cfg.NATSURL != "" {
		conn, err := nats.Connect(c.cfg.NATSURL, nats.Name("parceltrack"))
		if err != nil {
			return nil, errors.Wrapf(err, "connect to nats at %s", c.cfg.NATSURL)
		}
		c.closers = append(c.closers, func() error { return conn.Drain() })
		fanout = append(fanout, events.NewNATSPublisher(conn, c.cfg.NATSSubjectPrefix))
	}

	return events.NewInstrumentedPublisher(fanout, c.metrics.EventsPublished, c.logger), nil
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return stderrors.Join(errs...)
}

func (c *CompositionRoot) Handlers() httpapi.Handlers {
	reader := c.uowFactory.Create().DeliveryRepository()
	return httpapi.Handlers{
		CreateDelivery:  commands.NewCreateDeliveryCommandHandler(c.runtime),
		AdvanceDelivery: commands.NewAdvanceDeliveryCommandHandler(c.runtime),
		AssignDriver:    commands.NewAssignDriverCommandHandler(c.runtime),
		SubmitStep:      commands.NewSubmitStepCommandHandler(c.runtime),
		RaiseDispute:    commands.NewRaiseDisputeCommandHandler(c.runtime),
		ResolveDispute:  commands.NewResolveDisputeCommandHandler(c.runtime),
		ReviewProof:     commands.NewReviewProofCommandHandler(c.runtime),
		CreateDriver:    commands.NewCreateDriverCommandHandler(c.runtime),
		MoveDriver:      commands.NewMoveDriverCommandHandler(c.runtime),
		CreateVehicle:   commands.NewCreateVehicleCommandHandler(c.runtime),
		VehicleLink:     commands.NewVehicleLinkCommandHandler(c.runtime),
		SetActivation:   commands.NewSetVehicleActivationCommandHandler(c.runtime),
		GetDelivery:     queries.NewGetDeliveryQueryHandler(reader, c.labels),
		ListDeliveries:  queries.NewListDeliveriesQueryHandler(reader, c.labels),
		FleetOverview:   queries.NewFleetOverviewQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) Echo(ctx context.Context) (*echo.Echo, error) {
	server := httpapi.NewServer(c.Handlers())
	return httpapi.NewEcho(ctx, server, httpapi.Options{
		Logger:   c.logger.Named("http"),
		Metrics:  c.metrics,
		Validate: c.cfg.OpenAPIValidation,
		Swagger:  true,
	})
}

func (c *CompositionRoot) JobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		jobs.Schedules{Assignment: c.cfg.AssignmentJobSpec, Audit: c.cfg.AuditJobSpec},
		commands.NewDispatchDriverCommandHandler(c.runtime),
		c.uowFactory.Create().DeliveryRepository(),
		c.metrics,
		c.logger.Named("jobs"),
	)
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
