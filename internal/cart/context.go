package cart

import (
	"context"
	"time"
)

// Compensation must run even when the request context is already
// cancelled, so it gets its own deadline.
func compensationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
