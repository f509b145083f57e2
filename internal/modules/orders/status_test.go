package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// forward, one step at a time
	assert.True(t, CanTransition(StatusPending, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusPacked))
	assert.True(t, CanTransition(StatusPacked, StatusShipped))
	assert.True(t, CanTransition(StatusShipped, StatusDelivered))

	// no skipping, no going back
	assert.False(t, CanTransition(StatusPending, StatusShipped))
	assert.False(t, CanTransition(StatusShipped, StatusPacked))
	assert.False(t, CanTransition(StatusDelivered, StatusPending))

	// cancel/refund from any non-terminal state
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusShipped, StatusRefunded))
	assert.False(t, CanTransition(StatusCancelled, StatusRefunded))
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))

	// unknown targets rejected
	assert.False(t, CanTransition(StatusPending, "archived"))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusDelivered))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusRefunded))
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusShipped))
}
