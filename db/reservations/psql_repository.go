package reservations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"

	"flights/entity"
	"flights/pubsub"
)

type PostgresRepository struct {
	db     *sqlx.DB
	logger watermill.LoggerAdapter
}

func NewPostgresRepository(db *sqlx.DB, logger watermill.LoggerAdapter) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

// Add stores the reservation and publishes BookingMade through the outbox in
// the same transaction.
func (r *PostgresRepository) Add(ctx context.Context, reservation entity.Reservation) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO
		    reservations (booking_id, record_locator, supplier_family, trace_id, offer_id, status, created_at)
		VALUES (:booking_id, :record_locator, :supplier_family, :trace_id, :offer_id, :status, :created_at)
		`, reservation)
	if err != nil {
		return fmt.Errorf("could not add reservation: %w", err)
	}

	outboxPublisher, err := pubsub.NewOutboxPublisherForTx(tx.Tx, r.logger)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	eventBus, err := pubsub.NewEventBus(outboxPublisher)
	if err != nil {
		return err
	}

	err = eventBus.Publish(ctx, entity.BookingMade{
		Header:         entity.NewEventHeader(),
		BookingID:      reservation.BookingID,
		RecordLocator:  reservation.RecordLocator,
		TraceID:        reservation.TraceID,
		OfferID:        reservation.OfferID,
		SupplierFamily: reservation.SupplierFamily,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, bookingID string) (entity.Reservation, error) {
	var reservation entity.Reservation
	err := r.db.GetContext(ctx, &reservation, `
		SELECT booking_id, record_locator, supplier_family, trace_id, offer_id, status, created_at
		FROM reservations
		WHERE booking_id = $1
	`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Reservation{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("could not get reservation: %w", err)
	}
	return reservation, nil
}

// UpdateByID applies updateFn to the reservation under a row lock, so
// concurrent ticketing attempts serialize on the state machine.
func (r *PostgresRepository) UpdateByID(
	ctx context.Context,
	bookingID string,
	updateFn func(reservation entity.Reservation) (entity.Reservation, error),
) (reservation entity.Reservation, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	err = tx.GetContext(ctx, &reservation, `
		SELECT booking_id, record_locator, supplier_family, trace_id, offer_id, status, created_at
		FROM reservations
		WHERE booking_id = $1
		FOR UPDATE
	`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Reservation{}, entity.ErrNotFound
	}
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("could not get reservation: %w", err)
	}

	reservation, err = updateFn(reservation)
	if err != nil {
		return entity.Reservation{}, err
	}

	_, err = tx.NamedExecContext(ctx, `
		UPDATE reservations
		SET record_locator = :record_locator, status = :status
		WHERE booking_id = :booking_id
	`, reservation)
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("could not update reservation: %w", err)
	}

	return reservation, nil
}
