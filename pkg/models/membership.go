package models

import "time"

// Membership is an admin-defined plan template.
type Membership struct {
	ID           int64     `json:"id" bson:"id"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64   `json:"price" bson:"price" validate:"required,gt=0"`
	DurationDays int       `json:"duration_days" bson:"duration_days" validate:"required,gt=0"`
	Benefits     []string  `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Icon         string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Color        string    `json:"color,omitempty" bson:"color,omitempty"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// UserMembership is one purchased period of a plan for one user.
type UserMembership struct {
	ID           int64     `json:"id" bson:"id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	MembershipID int64     `json:"membership_id" bson:"membership_id"`
	StartDate    time.Time `json:"start_date" bson:"start_date"`
	EndDate      time.Time `json:"end_date" bson:"end_date"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`

	// Plan is the joined template, populated on read paths.
	Plan *Membership `json:"membership,omitempty" bson:"-"`
}

// Derived membership states. Expired is terminal and never written back; it
// is always computed from the wall clock so a stale stored flag cannot lie.
const (
	MembershipStateQueued  = "queued"
	MembershipStateActive  = "active"
	MembershipStateExpired = "expired"
)

// State derives the instance state from (now, start_date, end_date). The
// stored is_active flag only breaks the tie between queued and active within
// the window, since a queued instance may start immediately behind an
// expiring one.
func (um *UserMembership) State(now time.Time) string {
	if !now.Before(um.EndDate) {
		return MembershipStateExpired
	}
	if now.Before(um.StartDate) {
		return MembershipStateQueued
	}
	if um.IsActive {
		return MembershipStateActive
	}
	return MembershipStateQueued
}

// IsCurrent reports whether the instance is active right now.
func (um *UserMembership) IsCurrent(now time.Time) bool {
	return um.State(now) == MembershipStateActive
}

// NextWindow computes the window for a newly purchased instance of a plan.
// If the latest existing instance of the same plan still ends in the future,
// the new instance queues behind it: it starts at that end date and is not
// active. Otherwise it starts now and is active immediately.
func NextWindow(latest *UserMembership, plan *Membership, now time.Time) (start, end time.Time, active bool) {
	if latest != nil && latest.EndDate.After(now) {
		start = latest.EndDate
		active = false
	} else {
		start = now
		active = true
	}
	end = start.AddDate(0, 0, plan.DurationDays)
	return start, end, active
}

// PickActivation selects the instance the reconciliation sweep should flip
// to active: the earliest-starting not-yet-active instance whose window has
// been reached, and only when no instance is currently active. Returns nil
// when nothing should change.
func PickActivation(instances []*UserMembership, now time.Time) *UserMembership {
	var candidate *UserMembership
	for _, um := range instances {
		if um.IsCurrent(now) {
			return nil
		}
		if um.IsActive || !um.EndDate.After(now) {
			continue
		}
		if um.StartDate.After(now) {
			continue
		}
		if candidate == nil || um.StartDate.Before(candidate.StartDate) {
			candidate = um
		}
	}
	return candidate
}
