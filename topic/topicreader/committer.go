package topicreader

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/partlog/partlog-go-sdk/internal/metrics"
	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/trace"
)

var ErrCheckpointAhead = errors.New("partlog: checkpoint beyond processed messages")

// committer owns checkpoint of one partition for one generation.
// After a failed compare-and-set it is fenced and rejects all further commits.
type committer struct {
	cfg       *ReaderConfig
	topic     string
	partition topictypes.PartitionID
	store     checkpoint.Store
	onStale   func(err error)

	m         sync.Mutex
	committed topictypes.Offset
	fenced    error
}

func newCommitter(
	cfg *ReaderConfig,
	topic string,
	partition topictypes.PartitionID,
	store checkpoint.Store,
	committed topictypes.Offset,
	onStale func(err error),
) *committer {
	return &committer{
		cfg:       cfg,
		topic:     topic,
		partition: partition,
		store:     store,
		onStale:   onStale,
		committed: committed,
	}
}

func (c *committer) Committed() topictypes.Offset {
	c.m.Lock()
	defer c.m.Unlock()

	return c.committed
}

func (c *committer) Fenced() error {
	c.m.Lock()
	defer c.m.Unlock()

	return c.fenced
}

// commit moves checkpoint to next. Offsets not greater than the committed one are ignored.
func (c *committer) commit(ctx context.Context, next topictypes.Offset) error {
	c.m.Lock()
	becameStale, err := c.commitLocked(ctx, next)
	c.m.Unlock()

	if becameStale && c.onStale != nil {
		c.onStale(err)
	}

	return err
}

func (c *committer) commitLocked(ctx context.Context, next topictypes.Offset) (becameStale bool, err error) {
	if c.fenced != nil {
		return false, c.fenced
	}
	if next <= c.committed {
		return false, nil
	}

	var (
		swapped   bool
		ambiguous bool
	)
	_, err = retry.Do(ctx, c.cfg.Clock, c.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
		opCtx, cancel := c.cfg.OperationContext(ctx)
		defer cancel()

		var err error
		swapped, err = c.store.CompareAndSet(opCtx, c.topic, c.partition, c.committed, next)
		if err != nil {
			ambiguous = true
		}

		return err
	}, nil)
	if err != nil {
		return false, xerrors.WithStackTrace(fmt.Errorf("partlog: checkpoint %s/%v at %d: %w", c.topic, c.partition, next, err))
	}

	// a failed attempt may have been applied before the error, so the store is checked
	if !swapped && ambiguous {
		swapped, err = c.storedEquals(ctx, next)
		if err != nil {
			return false, err
		}
	}

	if !swapped {
		c.fenced = xerrors.WithStackTrace(fmt.Errorf("%w: %s/%v checkpoint is not at %d anymore",
			checkpoint.ErrStaleGeneration, c.topic, c.partition, c.committed,
		))

		return true, c.fenced
	}

	c.committed = next
	metrics.CommittedOffset.WithLabelValues(c.topic, metrics.Partition(int32(c.partition))).Set(float64(next))
	trace.TopicOnPartitionCommittedNotify(c.cfg.Trace, trace.OnPartitionCommittedInfo{
		Topic:           c.topic,
		PartitionID:     int64(c.partition),
		CommittedOffset: int64(next),
	})

	return false, nil
}

func (c *committer) storedEquals(ctx context.Context, offset topictypes.Offset) (bool, error) {
	opCtx, cancel := c.cfg.OperationContext(ctx)
	defer cancel()

	cp, ok, err := c.store.Get(opCtx, c.topic, c.partition)
	if err != nil {
		return false, xerrors.WithStackTrace(fmt.Errorf("partlog: read checkpoint %s/%v: %w", c.topic, c.partition, err))
	}

	return ok && cp.Offset == offset, nil
}

// checkpointer commits messages before limit, limit is the offset after the last processed message.
type checkpointer struct {
	c     *committer
	limit topictypes.Offset
}

func (cp checkpointer) Checkpoint(ctx context.Context) error {
	if cp.limit == topictypes.OffsetUnset {
		return nil
	}

	return cp.c.commit(ctx, cp.limit)
}

func (cp checkpointer) CheckpointOffset(ctx context.Context, offset topictypes.Offset) error {
	if offset >= cp.limit {
		return xerrors.WithStackTrace(fmt.Errorf("%w: offset %d, last available %d", ErrCheckpointAhead, offset, cp.limit-1))
	}

	return cp.c.commit(ctx, offset+1)
}
