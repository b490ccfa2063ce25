package bus

import (
	"context"

	"github.com/campushare/campushare-backend/internal/realtime"
)

// Bus fans change notifications out across server instances. The core works
// without one; a single-instance deployment broadcasts on the local hub only.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
