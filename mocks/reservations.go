package mocks

import (
	"context"
	"sync"

	"flights/entity"
)

// ReservationsRepository is an in-memory stand-in for the Postgres
// repository. It honors the same locking discipline per call, so tests can
// exercise the ticketing state machine without a database.
type ReservationsRepository struct {
	mu           sync.Mutex
	reservations map[string]entity.Reservation
}

func NewReservationsRepository() *ReservationsRepository {
	return &ReservationsRepository{
		reservations: make(map[string]entity.Reservation),
	}
}

func (r *ReservationsRepository) Add(_ context.Context, reservation entity.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[reservation.BookingID]; ok {
		return entity.ErrConflict
	}
	r.reservations[reservation.BookingID] = reservation
	return nil
}

func (r *ReservationsRepository) Get(_ context.Context, bookingID string) (entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation, ok := r.reservations[bookingID]
	if !ok {
		return entity.Reservation{}, entity.ErrNotFound
	}
	return reservation, nil
}

func (r *ReservationsRepository) UpdateByID(
	_ context.Context,
	bookingID string,
	updateFn func(reservation entity.Reservation) (entity.Reservation, error),
) (entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reservation, ok := r.reservations[bookingID]
	if !ok {
		return entity.Reservation{}, entity.ErrNotFound
	}

	updated, err := updateFn(reservation)
	if err != nil {
		return entity.Reservation{}, err
	}

	r.reservations[bookingID] = updated
	return updated, nil
}
