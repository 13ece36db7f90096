package cmd

import (
	"log/slog"

	httpserver "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/outboxrepo"
	"marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      *redis.Cache
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      redis.NewCache(config.RedisAddr),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateAccountCommandHandler() commands.CreateAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAccountCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOfferCommandHandler() commands.CreateOfferCommandHandler {
	var f commands.OfferUoWFactory = FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOfferCommandHandler(f, c.cache, c.logger)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.transitionUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.transitionUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.transitionUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.transitionUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateCompleteOfferCommandHandler() commands.CompleteOfferCommandHandler {
	return commands.NewCompleteOfferCommandHandler(c.transitionUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateCancelOfferCommandHandler() commands.CancelOfferCommandHandler {
	return commands.NewCancelOfferCommandHandler(c.transitionUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateRateBusinessCommandHandler() commands.RateBusinessCommandHandler {
	var f commands.OfferUoWFactory = FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateBusinessCommandHandler(f, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetOfferQueryHandler() queries.GetOfferQueryHandler {
	return queries.NewGetOfferQueryHandler(c.gormDB, c.cache, c.config.CacheOfferTTL, c.logger)
}

func (c *CompositionRoot) CreateGetNearbyOffersQueryHandler() queries.GetNearbyOffersQueryHandler {
	return queries.NewGetNearbyOffersQueryHandler(c.gormDB, c.cache, c.config.CacheNearbyTTL, c.logger)
}

func (c *CompositionRoot) CreateGetAccountOffersQueryHandler() queries.GetAccountOffersQueryHandler {
	return queries.NewGetAccountOffersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOfferHistoryQueryHandler() queries.GetOfferHistoryQueryHandler {
	return queries.NewGetOfferHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAccountQueryHandler() queries.GetAccountQueryHandler {
	return queries.NewGetAccountQueryHandler(c.gormDB, c.cache, c.config.CacheAccountTTL, c.logger)
}

// CreateJobManager wires the outbox dispatcher with a Kafka producer. The
// dispatcher reads the outbox outside any business transaction, so it gets a
// repository bound to the root connection.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	producer := kafka.NewProducer([]string{c.config.KafkaHost}, c.config.KafkaNotificationsTopic)
	outbox := outboxrepo.NewRepository(c.gormDB)
	return jobs.NewJobManager(outbox, producer, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpserver.Server {
	createAccount := c.CreateCreateAccountCommandHandler()
	createOffer := c.CreateCreateOfferCommandHandler()
	acceptOffer := c.CreateAcceptOfferCommandHandler()
	markPickedUp := c.CreateMarkPickedUpCommandHandler()
	startTransit := c.CreateStartTransitCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()
	completeOffer := c.CreateCompleteOfferCommandHandler()
	cancelOffer := c.CreateCancelOfferCommandHandler()
	rateBusiness := c.CreateRateBusinessCommandHandler()

	return httpserver.NewServer(
		httpserver.Commands{
			CreateAccount: &createAccount,
			CreateOffer:   &createOffer,
			AcceptOffer:   &acceptOffer,
			MarkPickedUp:  &markPickedUp,
			StartTransit:  &startTransit,
			MarkDelivered: &markDelivered,
			CompleteOffer: &completeOffer,
			CancelOffer:   &cancelOffer,
			RateBusiness:  &rateBusiness,
		},
		httpserver.Queries{
			GetOffer:         c.CreateGetOfferQueryHandler(),
			GetNearbyOffers:  c.CreateGetNearbyOffersQueryHandler(),
			GetAccountOffers: c.CreateGetAccountOffersQueryHandler(),
			GetOfferHistory:  c.CreateGetOfferHistoryQueryHandler(),
			GetAccount:       c.CreateGetAccountQueryHandler(),
		},
	)
}

func (c *CompositionRoot) transitionUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncOfferUoWFactory func() commands.OfferUoW

func (f FuncOfferUoWFactory) Create() commands.OfferUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
