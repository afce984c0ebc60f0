package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flaviocavalcantet/Reservation-Management-API-sub001/internal/domain/domainerr"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"CreatedからConfirmed", StatusCreated, StatusConfirmed, true},
		{"CreatedからCancelled", StatusCreated, StatusCancelled, true},
		{"ConfirmedからCancelled", StatusConfirmed, StatusCancelled, true},
		{"ConfirmedからConfirmedは不可", StatusConfirmed, StatusConfirmed, false},
		{"ConfirmedからCreatedは不可", StatusConfirmed, StatusCreated, false},
		{"Cancelledは終端", StatusCancelled, StatusCreated, false},
		{"CancelledからConfirmedは不可", StatusCancelled, StatusConfirmed, false},
		{"CancelledからCancelledは不可", StatusCancelled, StatusCancelled, false},
		{"CreatedからCreatedは不可", StatusCreated, StatusCreated, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusCreated.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusCreated, StatusConfirmed, StatusCancelled} {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestParseStatus_Unknown(t *testing.T) {
	_, err := ParseStatus("pending")
	require.Error(t, err)

	kind, ok := domainerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domainerr.KindNotFound, kind)
}
