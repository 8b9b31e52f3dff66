package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginTicketing_FromBooked(t *testing.T) {
	r := Reservation{Status: StatusBooked}

	require.NoError(t, r.BeginTicketing())
	assert.Equal(t, StatusTicketPending, r.Status)
}

func TestBeginTicketing_RetryAfterFailure(t *testing.T) {
	r := Reservation{Status: StatusTicketFailed}

	require.NoError(t, r.BeginTicketing())
	assert.Equal(t, StatusTicketPending, r.Status)
}

func TestBeginTicketing_RefusesWhilePending(t *testing.T) {
	r := Reservation{Status: StatusTicketPending}

	assert.ErrorIs(t, r.BeginTicketing(), ErrTicketingInProgress)
	assert.Equal(t, StatusTicketPending, r.Status)
}

func TestBeginTicketing_RefusesWhenTicketed(t *testing.T) {
	r := Reservation{Status: StatusTicketed}

	assert.ErrorIs(t, r.BeginTicketing(), ErrAlreadyTicketed)
	assert.Equal(t, StatusTicketed, r.Status)
}

func TestMarkTransitions(t *testing.T) {
	r := Reservation{Status: StatusBooked}
	require.NoError(t, r.BeginTicketing())

	r.MarkTicketed()
	assert.Equal(t, StatusTicketed, r.Status)

	r = Reservation{Status: StatusTicketPending}
	r.MarkTicketFailed()
	assert.Equal(t, StatusTicketFailed, r.Status)
}
