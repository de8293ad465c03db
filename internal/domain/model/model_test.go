package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartClone_DoesNotShareItems(t *testing.T) {
	c := Cart{UserID: "u1", Items: []CartItem{{ID: "l1", ProductID: "p1", Quantity: 1}}}

	cp := c.Clone()
	cp.Items[0].Quantity = 5
	cp.Items = append(cp.Items, CartItem{ID: "l2"})

	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Len(t, c.Items, 1)
}

func TestCartFind(t *testing.T) {
	c := Cart{Items: []CartItem{{ID: "l1", ProductID: "p1"}, {ID: "l2", ProductID: "p2"}}}

	i, ok := c.FindByProductID("p2")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = c.FindByLineID("nope")
	assert.False(t, ok)
}

func TestReceiptStatus_Valid(t *testing.T) {
	for _, s := range []ReceiptStatus{"processing", "completed", "shipped", "delivered", "cancelled"} {
		assert.True(t, s.Valid(), s)
	}
	for _, s := range []ReceiptStatus{"", "pending", "Completed"} {
		assert.False(t, s.Valid(), s)
	}
	assert.Equal(t, ReceiptStatusCompleted, DefaultReceiptStatus)
}
