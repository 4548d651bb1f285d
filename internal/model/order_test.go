package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormingQuantity(t *testing.T) {
	tests := []struct {
		ordered int
		want    int
	}{
		{50, 58},
		{30, 35},
		{100, 115},
		{1, 1},
		{2, 2},
		{10, 12},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormingQuantity(tt.ordered), "ordered=%d", tt.ordered)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusInProgress))
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusCancelled))
	assert.True(t, CanTransition(OrderStatusInProgress, OrderStatusCompleted))
	assert.True(t, CanTransition(OrderStatusInProgress, OrderStatusCancelled))

	assert.False(t, CanTransition(OrderStatusPending, OrderStatusCompleted))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusInProgress))

	// Terminal statuses stay put, but same-status writes are allowed
	assert.True(t, CanTransition(OrderStatusCompleted, OrderStatusCompleted))
	assert.True(t, CanTransition(OrderStatusCancelled, OrderStatusCancelled))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusCancelled))
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}
