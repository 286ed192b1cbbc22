// Package sync provides keyed locking primitives.
package sync

import (
	"hash/fnv"
	stdsync "sync"
)

const shardCount = 32

// ShardedMutex distributes locks across a fixed set of shards keyed by a
// resource identifier. Two operations on the same key always contend on the
// same shard, which is what the in-memory lease transaction relies on for
// per-lease serialization.
type ShardedMutex struct {
	shards [shardCount]stdsync.Mutex
}

// NewShardedMutex creates a ShardedMutex.
func NewShardedMutex() *ShardedMutex {
	return &ShardedMutex{}
}

// Lock acquires the lock for the given key's shard. Empty keys map to shard 0.
func (m *ShardedMutex) Lock(key string) {
	m.shards[m.shardFor(key)].Lock()
}

// Unlock releases the lock for the given key's shard.
func (m *ShardedMutex) Unlock(key string) {
	m.shards[m.shardFor(key)].Unlock()
}

func (m *ShardedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
