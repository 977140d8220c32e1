package checkpoint

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

// MemoryStore keeps checkpoints in process memory.
// Nil values mark keys touched by a failed CompareAndSet.
type MemoryStore struct {
	clock       clockwork.Clock
	checkpoints cmap.ConcurrentMap[string, *Checkpoint]
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &MemoryStore{
		clock:       clock,
		checkpoints: cmap.New[*Checkpoint](),
	}
}

func (s *MemoryStore) Get(ctx context.Context, topic string, partition topictypes.PartitionID) (Checkpoint, bool, error) {
	if err := ctx.Err(); err != nil {
		return Checkpoint{}, false, err
	}

	cp, ok := s.checkpoints.Get(memoryKey(topic, partition))
	if !ok || cp == nil {
		return Checkpoint{}, false, nil
	}

	return *cp, true, nil
}

func (s *MemoryStore) CompareAndSet(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	expected, next topictypes.Offset,
) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	swapped := false
	s.checkpoints.Upsert(
		memoryKey(topic, partition),
		&Checkpoint{Partition: partition, Offset: next, CommittedAt: s.clock.Now()},
		func(exist bool, current, newValue *Checkpoint) *Checkpoint {
			currentOffset := topictypes.OffsetUnset
			if exist && current != nil {
				currentOffset = current.Offset
			}
			if currentOffset != expected {
				return current
			}
			swapped = true

			return newValue
		},
	)

	return swapped, nil
}

// Reset overwrites the checkpoint unconditionally, as an administrator would.
func (s *MemoryStore) Reset(topic string, partition topictypes.PartitionID, offset topictypes.Offset) {
	s.checkpoints.Set(memoryKey(topic, partition), &Checkpoint{
		Partition:   partition,
		Offset:      offset,
		CommittedAt: s.clock.Now(),
	})
}

func memoryKey(topic string, partition topictypes.PartitionID) string {
	return fmt.Sprintf("%s/%d", topic, partition)
}
