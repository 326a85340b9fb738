package settings

import (
	"github.com/nvmux/nvmux/src/internal/writeq"
)

// Store persists settings through a write-coalescing queue, so bursts
// of changes cost one file write. One Store exists per settings file.
type Store struct {
	queue *writeq.Queue[Settings]
}

// NewStore creates a store writing to the default settings path.
func NewStore(opts ...writeq.Option[Settings]) *Store {
	return NewStoreAt(FilePath(), opts...)
}

// NewStoreAt creates a store writing to an explicit path.
func NewStoreAt(path string, opts ...writeq.Option[Settings]) *Store {
	return &Store{
		queue: writeq.New(func(cfg Settings) error {
			return SaveTo(path, cfg)
		}, opts...),
	}
}

// Put queues cfg as the newest settings state.
func (s *Store) Put(cfg Settings) {
	s.queue.Push(cfg)
}

// Close flushes any queued state and reports the last write failure.
func (s *Store) Close() error {
	return s.queue.Close()
}
