package application

import (
	"context"

	"github.com/commercebot/shopkeeper/internal/ledger/domain"
)

// SnapshotStore persists the full ledger state. Load returns the documented
// default state when no snapshot exists yet.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snap domain.Snapshot) error
}

// Notifier mirrors newly created orders to a secondary sink. Failures are
// logged by the ledger and never fail the order.
type Notifier interface {
	OrderCreated(ctx context.Context, o domain.Order) error
}
