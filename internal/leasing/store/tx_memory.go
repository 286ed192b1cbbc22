package store

import (
	"context"

	"leasegate/internal/leasing/models"
	"leasegate/pkg/domain"
	psync "leasegate/pkg/platform/sync"
)

// InMemoryTx serializes transactions per lease with a sharded mutex and
// restores the lease aggregate from a snapshot when the callback fails. Side
// records (activity, notifications, outbox) written before the failure are
// not rolled back; the PostgreSQL store provides full atomicity.
type InMemoryTx struct {
	store *InMemoryStore
	locks *psync.ShardedMutex
}

// NewInMemoryTx constructs the transaction runner for an in-memory store.
func NewInMemoryTx(store *InMemoryStore) *InMemoryTx {
	return &InMemoryTx{
		store: store,
		locks: psync.NewShardedMutex(),
	}
}

func (t *InMemoryTx) RunInTx(ctx context.Context, id domain.LeaseID, fn func(Store) error) error {
	key := id.String()
	t.locks.Lock(key)
	defer t.locks.Unlock(key)

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := t.snapshot(id)

	if err := fn(t.store); err != nil {
		t.restore(id, snapshot)
		return err
	}
	return nil
}

func (t *InMemoryTx) snapshot(id domain.LeaseID) *models.Lease {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	lease, ok := t.store.leases[id]
	if !ok {
		return nil
	}
	return lease.Clone()
}

func (t *InMemoryTx) restore(id domain.LeaseID, snapshot *models.Lease) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if snapshot == nil {
		delete(t.store.leases, id)
		return
	}
	t.store.leases[id] = snapshot
}
