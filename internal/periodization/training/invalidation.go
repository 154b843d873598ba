package training

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Invalidator drops state derived from a user's training data, like a
// cached next-week recommendation.
type Invalidator interface {
	Invalidate(ctx context.Context, userID int) error
}

// Invalidate runs inv for the user when inv is set. A failure is logged, the
// derived state then expires on its own.
func Invalidate(ctx context.Context, inv Invalidator, userID int) {
	if inv == nil {
		return
	}
	if err := inv.Invalidate(ctx, userID); err != nil {
		log.Warnf("user %d: invalidate derived state: %s", userID, err)
	}
}
