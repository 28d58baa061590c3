package mongo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	driver "go.mongodb.org/mongo-driver/v2/mongo"
)

// Deleting a nonexistent row surfaces the driver sentinel, so the handlers'
// 404 mapping depends on IsNoDocuments recognizing it plain and wrapped.
func TestIsNoDocuments(t *testing.T) {
	assert.True(t, IsNoDocuments(driver.ErrNoDocuments))
	assert.True(t, IsNoDocuments(fmt.Errorf("membership lookup: %w", driver.ErrNoDocuments)))
	assert.False(t, IsNoDocuments(errors.New("connection reset")))
	assert.False(t, IsNoDocuments(nil))
}
