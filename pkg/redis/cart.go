package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"jpskating.in/store-api/pkg/models"
)

// Session carts are stored as one JSON document per session under the
// current key prefix. The previous deployment used the jpskating_cart
// prefix; those carts are migrated (copy then delete) the first time the
// session is read.
const (
	cartKeyPrefix       = "skating_cart"
	legacyCartKeyPrefix = "jpskating_cart"
	cartTTL             = 7 * 24 * time.Hour
)

func cartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", cartKeyPrefix, sessionID)
}

func legacyCartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", legacyCartKeyPrefix, sessionID)
}

// GetCart loads the session cart, migrating a legacy-key cart when present.
// Corrupt payloads are discarded, never surfaced: the shopper gets an empty
// cart instead of an error.
func GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	client := RedisClient()
	defer client.Close()

	payload, err := client.Get(ctx, cartKey(sessionID)).Result()
	if err == redisclient.Nil {
		payload, err = migrateLegacyCart(ctx, client, sessionID)
	}
	if err == redisclient.Nil {
		return models.NewCart(sessionID), nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		log.Printf("Warning: discarding corrupt cart for session %s: %v", sessionID, err)
		client.Del(ctx, cartKey(sessionID))
		return models.NewCart(sessionID), nil
	}

	cart.SessionID = sessionID
	if cart.Items == nil {
		cart.Items = []*models.CartItem{}
	}
	return &cart, nil
}

// migrateLegacyCart copies the old-key cart to the current key and deletes
// the old one. A corrupt legacy payload is deleted without being copied.
func migrateLegacyCart(ctx context.Context, client *redisclient.Client, sessionID string) (string, error) {
	payload, err := client.Get(ctx, legacyCartKey(sessionID)).Result()
	if err != nil {
		return "", err
	}

	if !json.Valid([]byte(payload)) {
		client.Del(ctx, legacyCartKey(sessionID))
		return "", redisclient.Nil
	}

	pipe := client.TxPipeline()
	pipe.Set(ctx, cartKey(sessionID), payload, cartTTL)
	pipe.Del(ctx, legacyCartKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}

	log.Printf("Migrated legacy cart for session %s", sessionID)
	return payload, nil
}

// SaveCart persists the whole cart on every mutation.
func SaveCart(ctx context.Context, cart *models.Cart) error {
	client := RedisClient()
	defer client.Close()

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", cart.SessionID, err)
	}
	return client.Set(ctx, cartKey(cart.SessionID), payload, cartTTL).Err()
}

// DeleteCart removes the session cart entirely (checkout completion).
func DeleteCart(ctx context.Context, sessionID string) error {
	client := RedisClient()
	defer client.Close()

	return client.Del(ctx, cartKey(sessionID), legacyCartKey(sessionID)).Err()
}
