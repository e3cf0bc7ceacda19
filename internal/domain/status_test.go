package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	all := []OrderStatus{StatusOpen, StatusConfirmed, StatusPreparing, StatusReady, StatusPaid, StatusCancelled}

	allowed := map[OrderStatus][]OrderStatus{
		StatusOpen:      {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusPreparing, StatusCancelled},
		StatusPreparing: {StatusReady, StatusCancelled},
		StatusReady:     {StatusPaid, StatusCancelled},
		StatusPaid:      {},
		StatusCancelled: {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExit(t *testing.T) {
	all := []OrderStatus{StatusOpen, StatusConfirmed, StatusPreparing, StatusReady, StatusPaid, StatusCancelled}

	for _, s := range []OrderStatus{StatusPaid, StatusCancelled} {
		assert.True(t, s.Terminal())
		for _, to := range all {
			assert.False(t, s.CanTransitionTo(to), "%s must not leave terminal state", to)
		}
	}
	for _, s := range []OrderStatus{StatusOpen, StatusConfirmed, StatusPreparing, StatusReady} {
		assert.False(t, s.Terminal())
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("PREPARING")
	assert.NoError(t, err)
	assert.Equal(t, StatusPreparing, got)

	_, err = ParseOrderStatus("preparing")
	assert.Error(t, err)

	_, err = ParseOrderStatus("SHIPPED")
	assert.Error(t, err)
}

func TestParseItemStatus(t *testing.T) {
	got, err := ParseItemStatus("READY")
	assert.NoError(t, err)
	assert.Equal(t, ItemReady, got)

	_, err = ParseItemStatus("DONE")
	assert.Error(t, err)
}
