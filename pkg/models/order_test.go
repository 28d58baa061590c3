package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	number := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(number, "ORD-"))
	assert.Greater(t, len(number), len("ORD-"))
}

func TestComposeOrderNotes(t *testing.T) {
	assert.Equal(t, "MEMBERSHIPS:[3,7]", ComposeOrderNotes([]int64{3, 7}, ""))
	assert.Equal(t, "MEMBERSHIPS:[3]. Leave at the door", ComposeOrderNotes([]int64{3}, "Leave at the door"))
	assert.Equal(t, "Leave at the door", ComposeOrderNotes(nil, "Leave at the door"))
	assert.Equal(t, "", ComposeOrderNotes(nil, ""))
}

func TestParseMembershipIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 7}, ParseMembershipIDs("MEMBERSHIPS:[3,7]"))
	assert.Equal(t, []int64{3, 7}, ParseMembershipIDs("MEMBERSHIPS:[3, 7]. Gift wrap please"))
	assert.Nil(t, ParseMembershipIDs("Gift wrap please"))
	assert.Nil(t, ParseMembershipIDs(""))
	assert.Nil(t, ParseMembershipIDs("MEMBERSHIPS:[]"))
}

func TestComposeParseRoundTrip(t *testing.T) {
	ids := []int64{12, 5, 99}
	notes := ComposeOrderNotes(ids, "ring the bell")
	assert.Equal(t, ids, ParseMembershipIDs(notes))
}

func TestOrderHasBeenPaid(t *testing.T) {
	order := &Order{PaymentStatus: PaymentStatusPending}
	assert.False(t, order.HasBeenPaid())

	order.PaymentStatus = PaymentStatusCompleted
	assert.True(t, order.HasBeenPaid())
}
