package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemID(t *testing.T) {
	assert.Equal(t, "42-M-Black", CartItemID(42, "M", "Black"))
	assert.Equal(t, "42-default-default", CartItemID(42, "", ""))
	assert.Equal(t, "42-M-default", CartItemID(42, "M", ""))
}

func TestAddItemMergesSameVariant(t *testing.T) {
	cart := NewCart("session-1")
	product := CartProduct{ID: 42, Name: "Pro Skates", Price: 100}

	cart.AddItem(product, 1, "M", "Black", false)
	cart.AddItem(product, 2, "M", "Black", false)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, 300.0, cart.Total)
}

func TestAddItemDifferentVariantSeparateLine(t *testing.T) {
	cart := NewCart("session-1")
	product := CartProduct{ID: 42, Name: "Pro Skates", Price: 100}

	cart.AddItem(product, 1, "M", "Black", false)
	cart.AddItem(product, 1, "L", "Black", false)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCart("session-1")
	item := cart.AddItem(CartProduct{ID: 7, Price: 50}, 2, "", "", false)

	ok := cart.UpdateQuantity(item.ID, 0)

	assert.True(t, ok)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	cart := NewCart("session-1")
	item := cart.AddItem(CartProduct{ID: 7, Price: 50}, 2, "", "", false)

	assert.True(t, cart.UpdateQuantity(item.ID, -3))
	assert.Empty(t, cart.Items)

	// Removing an already-gone line reports false.
	assert.False(t, cart.UpdateQuantity(item.ID, -1))
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	cart := NewCart("session-1")
	assert.False(t, cart.UpdateQuantity("99-default-default", 3))
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart("session-1")
	item := cart.AddItem(CartProduct{ID: 7, Price: 50}, 1, "", "", false)

	removed := cart.RemoveItem(item.ID)
	require.NotNil(t, removed)
	assert.Equal(t, item.ID, removed.ID)
	assert.Nil(t, cart.RemoveItem(item.ID))
}

func TestClearReportsWhetherAnythingWasRemoved(t *testing.T) {
	cart := NewCart("session-1")
	assert.False(t, cart.Clear())

	cart.AddItem(CartProduct{ID: 7, Price: 50}, 1, "", "", false)
	assert.True(t, cart.Clear())
	assert.Empty(t, cart.Items)
	assert.False(t, cart.Clear())
}

func TestTotalIsPlainSumIncludingMemberships(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(CartProduct{ID: 1, Name: "Team Jacket", Price: 100}, 2, "M", "", false)
	cart.AddItem(CartProduct{ID: 3, Name: "Silver Membership", Price: 50}, 1, "", "", true)

	assert.Equal(t, 250.0, cart.Total)
	assert.Equal(t, 3, cart.ItemCount)
}

// Membership lines are billed through the order total but must never become
// order item rows; they are carried on the order notes instead.
func TestProductLinesExcludeMemberships(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(CartProduct{ID: 1, Name: "Team Jacket", Price: 100}, 2, "M", "", false)
	cart.AddItem(CartProduct{ID: 3, Name: "Silver Membership", Price: 50}, 1, "", "", true)

	lines := cart.ProductLines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)

	assert.Equal(t, []int64{3}, cart.MembershipIDs())
}

func TestProductLinesEmptyForMembershipOnlyCart(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(CartProduct{ID: 3, Name: "Silver Membership", Price: 50}, 1, "", "", true)

	assert.Empty(t, cart.ProductLines())
}

func TestMembershipIDs(t *testing.T) {
	cart := NewCart("session-1")
	cart.AddItem(CartProduct{ID: 1, Price: 100}, 1, "", "", false)
	cart.AddItem(CartProduct{ID: 3, Price: 30}, 1, "", "", true)
	cart.AddItem(CartProduct{ID: 7, Price: 80}, 1, "", "", true)

	assert.Equal(t, []int64{3, 7}, cart.MembershipIDs())
}
