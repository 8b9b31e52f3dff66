package pubsub

import (
	"context"
	stdSQL "database/sql"

	"github.com/ThreeDotsLabs/watermill"
	watermillSQL "github.com/ThreeDotsLabs/watermill-sql/v2/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
)

const outboxTopic = "events_to_forward"

// NewOutboxPublisherForTx returns a publisher that stores events in Postgres
// inside the given transaction. The forwarder moves them to Redis after
// commit, so an event is never published for a rolled-back reservation.
func NewOutboxPublisherForTx(tx *stdSQL.Tx, logger watermill.LoggerAdapter) (message.Publisher, error) {
	sqlPublisher, err := watermillSQL.NewPublisher(
		tx,
		watermillSQL.PublisherConfig{
			SchemaAdapter: watermillSQL.DefaultPostgreSQLSchema{},
		},
		logger,
	)
	if err != nil {
		return nil, err
	}

	return forwarder.NewPublisher(sqlPublisher, forwarder.PublisherConfig{
		ForwarderTopic: outboxTopic,
	}), nil
}

// InitializeOutboxSchema creates the outbox tables up front, so a booking
// arriving before the forwarder's first poll still has somewhere to land.
func InitializeOutboxSchema(db *sqlx.DB, logger watermill.LoggerAdapter) error {
	sub, err := watermillSQL.NewSubscriber(db, watermillSQL.SubscriberConfig{
		SchemaAdapter:    watermillSQL.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillSQL.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
	}, logger)
	if err != nil {
		return err
	}
	defer sub.Close()

	return sub.SubscribeInitialize(outboxTopic)
}

// RunForwarder forwards outbox rows to the Redis publisher. Blocks until ctx
// is done.
func RunForwarder(
	ctx context.Context,
	db *sqlx.DB,
	redisPublisher message.Publisher,
	logger watermill.LoggerAdapter,
) error {
	sub, err := watermillSQL.NewSubscriber(db, watermillSQL.SubscriberConfig{
		SchemaAdapter:    watermillSQL.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillSQL.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
	}, logger)
	if err != nil {
		return err
	}

	fwd, err := forwarder.NewForwarder(sub, redisPublisher, logger, forwarder.Config{
		ForwarderTopic: outboxTopic,
	})
	if err != nil {
		return err
	}

	return fwd.Run(ctx)
}
