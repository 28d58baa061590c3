package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestNextWindowNoExistingInstance(t *testing.T) {
	plan := &Membership{ID: 1, DurationDays: 30}

	start, end, active := NextWindow(nil, plan, testNow)

	assert.Equal(t, testNow, start)
	assert.Equal(t, testNow.AddDate(0, 0, 30), end)
	assert.True(t, active)
}

func TestNextWindowExpiredInstanceStartsFresh(t *testing.T) {
	plan := &Membership{ID: 1, DurationDays: 30}
	latest := &UserMembership{
		StartDate: testNow.AddDate(0, 0, -60),
		EndDate:   testNow.AddDate(0, 0, -30),
	}

	start, end, active := NextWindow(latest, plan, testNow)

	assert.Equal(t, testNow, start)
	assert.Equal(t, testNow.AddDate(0, 0, 30), end)
	assert.True(t, active)
}

func TestNextWindowQueuesBehindRunningInstance(t *testing.T) {
	plan := &Membership{ID: 1, DurationDays: 90}
	runningEnd := testNow.AddDate(0, 0, 10)
	latest := &UserMembership{
		StartDate: testNow.AddDate(0, 0, -20),
		EndDate:   runningEnd,
		IsActive:  true,
	}

	start, end, active := NextWindow(latest, plan, testNow)

	assert.Equal(t, runningEnd, start)
	assert.Equal(t, runningEnd.AddDate(0, 0, 90), end)
	assert.False(t, active)
}

func TestStateDerivation(t *testing.T) {
	expired := &UserMembership{
		StartDate: testNow.AddDate(0, 0, -60),
		EndDate:   testNow.AddDate(0, 0, -1),
		IsActive:  true, // stale flag must not win over the clock
	}
	assert.Equal(t, MembershipStateExpired, expired.State(testNow))

	future := &UserMembership{
		StartDate: testNow.AddDate(0, 0, 5),
		EndDate:   testNow.AddDate(0, 0, 35),
	}
	assert.Equal(t, MembershipStateQueued, future.State(testNow))

	running := &UserMembership{
		StartDate: testNow.AddDate(0, 0, -5),
		EndDate:   testNow.AddDate(0, 0, 25),
		IsActive:  true,
	}
	assert.Equal(t, MembershipStateActive, running.State(testNow))

	// Window reached but not yet flipped by the sweep.
	pending := &UserMembership{
		StartDate: testNow.AddDate(0, 0, -5),
		EndDate:   testNow.AddDate(0, 0, 25),
		IsActive:  false,
	}
	assert.Equal(t, MembershipStateQueued, pending.State(testNow))
}

func TestPickActivationSkipsWhenOneIsActive(t *testing.T) {
	instances := []*UserMembership{
		{ID: 1, StartDate: testNow.AddDate(0, 0, -5), EndDate: testNow.AddDate(0, 0, 25), IsActive: true},
		{ID: 2, StartDate: testNow.AddDate(0, 0, -3), EndDate: testNow.AddDate(0, 0, 27)},
	}
	assert.Nil(t, PickActivation(instances, testNow))
}

func TestPickActivationChoosesEarliestReachedWindow(t *testing.T) {
	instances := []*UserMembership{
		{ID: 1, StartDate: testNow.AddDate(0, 0, -2), EndDate: testNow.AddDate(0, 0, 28)},
		{ID: 2, StartDate: testNow.AddDate(0, 0, -10), EndDate: testNow.AddDate(0, 0, 20)},
		{ID: 3, StartDate: testNow.AddDate(0, 0, 5), EndDate: testNow.AddDate(0, 0, 35)},
	}

	picked := PickActivation(instances, testNow)
	require.NotNil(t, picked)
	assert.Equal(t, int64(2), picked.ID)
}

func TestPickActivationIgnoresExpiredAndFuture(t *testing.T) {
	instances := []*UserMembership{
		{ID: 1, StartDate: testNow.AddDate(0, 0, -60), EndDate: testNow.AddDate(0, 0, -30)},
		{ID: 2, StartDate: testNow.AddDate(0, 0, 10), EndDate: testNow.AddDate(0, 0, 40)},
	}
	assert.Nil(t, PickActivation(instances, testNow))
}
