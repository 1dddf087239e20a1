// Package draft stages booking intents across the payment gateway redirect.
//
// A Store holds at most one draft per key. It is not reentrant: a client must not
// start a second booking while one is pending, and a second Save simply replaces
// the first.
package draft

import (
	"context"
	"fmt"

	"wheelhub-backend/internal/domain"
)

// KeyPrefix is the fixed slot name drafts are stored under.
const KeyPrefix = "rental"

type Store interface {
	Save(ctx context.Context, key string, d *domain.RentalDraft) error
	// Load returns nil, nil when nothing is staged or the draft was already consumed.
	Load(ctx context.Context, key string) (*domain.RentalDraft, error)
	// Clear is idempotent.
	Clear(ctx context.Context, key string) error
}

// Key returns the slot of a single client.
func Key(userID int32) string {
	return fmt.Sprintf("%s:%d", KeyPrefix, userID)
}
