package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jpskating.in/store-api/pkg/models"
)

// GetUserMemberships returns all of a user's subscription instances, newest
// end date first, with the plan joined.
func GetUserMemberships(ctx context.Context, userID string) ([]*models.UserMembership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "end_date", Value: -1}})
	cursor, err := GetCollection("user_memberships").Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var instances []*models.UserMembership
	if err := cursor.All(ctx, &instances); err != nil {
		return nil, err
	}

	// Join plans; a retired plan leaves the instance without one.
	for _, um := range instances {
		plan, err := GetMembershipByID(ctx, um.MembershipID)
		if err != nil {
			log.Printf("Warning: membership plan %d missing for instance %d: %v", um.MembershipID, um.ID, err)
			continue
		}
		um.Plan = plan
	}
	return instances, nil
}

// latestInstanceForPlan returns the user's instance of a plan with the
// greatest end date, or nil when the user never held the plan.
func latestInstanceForPlan(ctx context.Context, userID string, planID int64) (*models.UserMembership, error) {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "membership_id", Value: planID},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "end_date", Value: -1}})

	var latest models.UserMembership
	err := GetCollection("user_memberships").FindOne(ctx, filter, opts).Decode(&latest)
	if err != nil {
		if IsNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return &latest, nil
}

func insertUserMembership(ctx context.Context, um *models.UserMembership) error {
	id, err := NextSequence(ctx, "user_memberships")
	if err != nil {
		return err
	}
	um.ID = id
	now := time.Now()
	um.CreatedAt = now
	um.UpdatedAt = now

	_, err = GetCollection("user_memberships").InsertOne(ctx, um)
	return err
}

// ProcessOrderMemberships materializes subscription instances for every plan
// id referenced in a paid order's notes. An order without a user is skipped
// entirely; a single bad plan id is logged and skipped without aborting the
// rest of the batch. A plan whose latest instance still runs gets a queued
// instance chained off that end date instead of an overlapping active one.
//
// The read-then-insert below is not transactional: two concurrent calls for
// the same user and plan can both read the same latest end date.
func ProcessOrderMemberships(ctx context.Context, order *models.Order) {
	if order.UserID == "" {
		return
	}

	planIDs := models.ParseMembershipIDs(order.Notes)
	if len(planIDs) == 0 {
		return
	}

	now := time.Now()
	for _, planID := range planIDs {
		plan, err := GetMembershipByID(ctx, planID)
		if err != nil {
			log.Printf("Warning: skipping membership %d on order %s: %v", planID, order.OrderNumber, err)
			continue
		}

		latest, err := latestInstanceForPlan(ctx, order.UserID, planID)
		if err != nil {
			log.Printf("Warning: could not read instances for membership %d on order %s: %v", planID, order.OrderNumber, err)
			continue
		}

		start, end, active := models.NextWindow(latest, plan, now)
		um := &models.UserMembership{
			UserID:       order.UserID,
			MembershipID: planID,
			StartDate:    start,
			EndDate:      end,
			IsActive:     active,
		}
		if err := insertUserMembership(ctx, um); err != nil {
			log.Printf("Warning: failed to create membership %d for order %s: %v", planID, order.OrderNumber, err)
		}
	}
}

// ActivateEligibleMemberships is the reconciliation sweep: per plan, when no
// instance is currently active, the earliest queued instance whose start has
// arrived is flipped to active. Runs only when invoked (profile refresh,
// admin trigger); expiry itself is never written back.
func ActivateEligibleMemberships(ctx context.Context, userID string) error {
	cursor, err := GetCollection("user_memberships").Find(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var instances []*models.UserMembership
	if err := cursor.All(ctx, &instances); err != nil {
		return err
	}

	byPlan := make(map[int64][]*models.UserMembership)
	for _, um := range instances {
		byPlan[um.MembershipID] = append(byPlan[um.MembershipID], um)
	}

	now := time.Now()
	for planID, plan := range byPlan {
		pick := models.PickActivation(plan, now)
		if pick == nil {
			continue
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: true},
			{Key: "updated_at", Value: now},
		}}}
		if _, err := GetCollection("user_memberships").UpdateOne(ctx, bson.D{{Key: "id", Value: pick.ID}}, update); err != nil {
			log.Printf("Warning: failed to activate membership instance %d (plan %d): %v", pick.ID, planID, err)
		}
	}
	return nil
}

// GetAllSubscribers lists every subscription instance for the admin
// back-office, newest end date first.
func GetAllSubscribers(ctx context.Context) ([]*models.UserMembership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "end_date", Value: -1}})
	cursor, err := GetCollection("user_memberships").Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var instances []*models.UserMembership
	if err := cursor.All(ctx, &instances); err != nil {
		return nil, err
	}

	for _, um := range instances {
		plan, err := GetMembershipByID(ctx, um.MembershipID)
		if err == nil {
			um.Plan = plan
		}
	}
	return instances, nil
}
