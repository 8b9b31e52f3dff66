package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"flights/booking"
	"flights/config"
	"flights/db"
	"flights/db/reservations"
	"flights/fare"
	"flights/http"
	"flights/log"
	"flights/pubsub"
	"flights/pubsub/event"
	"flights/recovery"
	"flights/search"
	"flights/session"
	"flights/ticketing"
)

func init() {
	log.Init(logrus.InfoLevel)
}

// Aggregator is the full upstream surface. *gateway.Client implements it; the
// tests swap in a scripted mock.
type Aggregator interface {
	search.Aggregator
	fare.Aggregator
	booking.Aggregator
	ticketing.Aggregator
	http.BookingDetailsAPI
}

type Service struct {
	cfg             config.Config
	db              *sqlx.DB
	redisPublisher  message.Publisher
	watermillRouter *message.Router
	httpServer      *http.Server
}

func New(
	cfg config.Config,
	database *sqlx.DB,
	redisClient *redis.Client,
	agg Aggregator,
	store recovery.Store,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := pubsub.NewRedisPublisher(redisClient, watermillLogger)

	eventBus, err := pubsub.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	reservationsRepo := reservations.NewPostgresRepository(database, watermillLogger)

	flow := session.New(store)
	searchService := search.NewOrchestrator(agg)
	fareService := fare.NewFetcher(agg, cfg.RulesGrace)
	bookingService := booking.NewCoordinator(agg, reservationsRepo)
	issuer := ticketing.NewIssuer(agg, reservationsRepo, eventBus)

	eventsHandler := event.NewHandler(agg, reservationsRepo)

	watermillRouter, err := pubsub.NewWatermillRouter(redisClient, eventsHandler, watermillLogger)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	httpServer := http.NewServer(
		cfg.HTTPAddr,
		searchService,
		fareService,
		bookingService,
		issuer,
		reservationsRepo,
		agg,
		flow,
	)

	return Service{
		cfg:             cfg,
		db:              database,
		redisPublisher:  redisPublisher,
		watermillRouter: watermillRouter,
		httpServer:      httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	if err := db.InitializeDatabaseSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	watermillLogger := log.NewWatermill(log.FromContext(ctx))

	if err := pubsub.InitializeOutboxSchema(s.db, watermillLogger); err != nil {
		return fmt.Errorf("failed to initialize outbox schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		return pubsub.RunForwarder(ctx, s.db, s.redisPublisher, watermillLogger)
	})

	g.Go(func() error {
		// the HTTP server starts only once the router consumes, so the
		// service is never healthy before it can process events
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
