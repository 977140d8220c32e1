// Package checkpoint keeps consumer progress per topic partition.
//
// A checkpoint is the offset of the next message to read, so after processing
// message with offset N the consumer stores N+1. All changes go through
// CompareAndSet which lets a consumer that lost its partition find out about it.
package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

// ErrStaleGeneration means the checkpoint was moved by someone else,
// the caller does not own the partition anymore.
var ErrStaleGeneration = errors.New("partlog: stale generation, checkpoint moved by another owner")

type Checkpoint struct {
	Partition   topictypes.PartitionID
	Offset      topictypes.Offset
	CommittedAt time.Time
}

type Store interface {
	// Get returns stored checkpoint, ok is false if nothing was stored yet.
	Get(ctx context.Context, topic string, partition topictypes.PartitionID) (cp Checkpoint, ok bool, err error)

	// CompareAndSet stores next only if the current offset equals expected.
	// topictypes.OffsetUnset as expected means no checkpoint exists.
	CompareAndSet(
		ctx context.Context,
		topic string,
		partition topictypes.PartitionID,
		expected, next topictypes.Offset,
	) (bool, error)
}
