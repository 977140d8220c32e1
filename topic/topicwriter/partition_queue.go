package topicwriter

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

var (
	ErrQueueFull   = errors.New("partlog: partition queue is full")
	ErrQueueClosed = errors.New("partlog: partition queue is closed")
)

type PartitionQueueConfig struct {
	// MaxPutMessageNumber triggers flush when so many messages are pending.
	MaxPutMessageNumber int

	// MaxPutMessageBytes triggers flush when so many bytes are pending.
	// Zero disables the trigger.
	MaxPutMessageBytes int

	// MaxBufferedTime triggers flush when the oldest pending message waits so long.
	// Zero disables the trigger, pending messages then wait for another trigger or a flush.
	MaxBufferedTime time.Duration

	// MaxBufferedBytes and MaxBufferedCount limit pending plus in flight messages.
	// Zero disables the limit.
	MaxBufferedBytes int
	MaxBufferedCount int

	// BlockOnFull makes Enqueue wait for space instead of failing with ErrQueueFull.
	BlockOnFull bool
}

// PartitionQueue buffers messages of one partition until a flush trigger fires.
//
// Messages returned by TryDrain stay accounted as in flight until Release,
// so the buffer limits cover messages that are sent but not acknowledged yet.
type PartitionQueue struct {
	partition topictypes.PartitionID
	cfg       PartitionQueueConfig
	clock     clockwork.Clock

	ready chan struct{}

	m             xsync.Mutex
	pending       []*userMessage
	pendingBytes  int
	inflightCount int
	inflightBytes int
	forceFlush    bool
	closed        bool
	changed       chan struct{}
}

func NewPartitionQueue(partition topictypes.PartitionID, cfg PartitionQueueConfig, clock clockwork.Clock) *PartitionQueue {
	if cfg.MaxPutMessageNumber <= 0 {
		cfg.MaxPutMessageNumber = 1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &PartitionQueue{
		partition: partition,
		cfg:       cfg,
		clock:     clock,
		ready:     make(chan struct{}, 1),
		changed:   make(chan struct{}),
	}
}

func (q *PartitionQueue) Partition() topictypes.PartitionID {
	return q.partition
}

// Enqueue appends the message to the queue.
// The returned future is completed when the message batch is acknowledged or failed.
func (q *PartitionQueue) Enqueue(ctx context.Context, mess Message) (*SendFuture, error) {
	um, err := newUserMessage(mess, q.partition, q.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = q.enqueue(ctx, um); err != nil {
		return nil, err
	}

	return um.future, nil
}

func (q *PartitionQueue) enqueue(ctx context.Context, um *userMessage) error {
	if q.cfg.MaxBufferedBytes > 0 && um.size > q.cfg.MaxBufferedBytes {
		return xerrors.WithStackTrace(ErrQueueFull)
	}

	for {
		var (
			err     error
			added   bool
			changed <-chan struct{}
		)

		q.m.WithLock(func() {
			if q.closed {
				err = ErrQueueClosed

				return
			}
			if !q.hasSpaceLocked(um.size) {
				if !q.cfg.BlockOnFull {
					err = ErrQueueFull

					return
				}
				changed = q.changed

				return
			}

			wasEmpty := len(q.pending) == 0
			um.enqueuedAt = q.clock.Now()
			q.pending = append(q.pending, um)
			q.pendingBytes += um.size
			added = true

			// first message arms the age trigger of the sender
			if wasEmpty || q.sizeTriggeredLocked() {
				q.signalReady()
			}
		})

		switch {
		case err != nil:
			return xerrors.WithStackTrace(err)
		case added:
			return nil
		}

		select {
		case <-ctx.Done():
			return xerrors.WithStackTrace(ctx.Err())
		case <-changed:
		}
	}
}

// TryDrain returns pending messages in enqueue order if any flush trigger fires,
// otherwise the batch is empty. The batch holds at most maxBatchCount messages
// and maxBatchBytes bytes, the first message is taken even if it is larger.
// Messages beyond the limits stay in the queue for the next drain.
func (q *PartitionQueue) TryDrain(maxBatchCount, maxBatchBytes int) Batch {
	batch := Batch{Partition: q.partition}

	q.m.WithLock(func() {
		if len(q.pending) == 0 || !q.shouldFlushLocked(q.clock.Now()) {
			return
		}

		n := 0
		for n < len(q.pending) {
			size := q.pending[n].size
			if maxBatchCount > 0 && n >= maxBatchCount {
				break
			}
			if maxBatchBytes > 0 && n > 0 && batch.bytes+size > maxBatchBytes {
				break
			}
			batch.bytes += size
			n++
		}

		batch.messages = q.pending[:n:n]
		q.pending = append([]*userMessage(nil), q.pending[n:]...)
		q.pendingBytes -= batch.bytes
		q.inflightCount += n
		q.inflightBytes += batch.bytes

		if len(q.pending) == 0 {
			q.forceFlush = q.closed
		}
	})

	return batch
}

// Release frees buffer space taken by a batch returned from TryDrain.
func (q *PartitionQueue) Release(batch Batch) {
	if batch.IsEmpty() {
		return
	}

	q.m.WithLock(func() {
		q.inflightCount -= len(batch.messages)
		q.inflightBytes -= batch.bytes
		q.notifyChangedLocked()
	})
}

// RequestFlush makes next TryDrain return all pending messages regardless of triggers.
func (q *PartitionQueue) RequestFlush() {
	q.m.WithLock(func() {
		if len(q.pending) > 0 {
			q.forceFlush = true
		}
	})
	q.signalReady()
}

// Ready is signaled when a flush trigger may have fired or the age trigger must be rearmed.
func (q *PartitionQueue) Ready() <-chan struct{} {
	return q.ready
}

// NextDeadline returns time left until the oldest pending message ages out,
// ok is false for an empty queue or a disabled age trigger.
func (q *PartitionQueue) NextDeadline() (d time.Duration, ok bool) {
	q.m.WithLock(func() {
		if len(q.pending) == 0 || q.cfg.MaxBufferedTime <= 0 {
			return
		}
		ok = true
		d = q.cfg.MaxBufferedTime - q.clock.Since(q.pending[0].enqueuedAt)
		if d < 0 {
			d = 0
		}
	})

	return d, ok
}

// Close rejects new messages, already pending messages are still drained.
func (q *PartitionQueue) Close() {
	q.m.WithLock(func() {
		q.closed = true
		q.forceFlush = true
		q.notifyChangedLocked()
	})
	q.signalReady()
}

// Purge fails all pending messages with err and returns their number.
// In flight messages are left to their sender.
func (q *PartitionQueue) Purge(err error) int {
	var purged []*userMessage
	q.m.WithLock(func() {
		purged = q.pending
		q.pending = nil
		q.pendingBytes = 0
		q.forceFlush = q.closed
		q.notifyChangedLocked()
	})

	for _, um := range purged {
		um.future.resolve(SendResult{Partition: q.partition, Offset: topictypes.OffsetUnset}, err)
	}

	return len(purged)
}

// WaitIdle waits until there are no pending nor in flight messages.
func (q *PartitionQueue) WaitIdle(ctx context.Context) error {
	for {
		var (
			idle    bool
			changed <-chan struct{}
		)
		q.m.WithLock(func() {
			idle = len(q.pending) == 0 && q.inflightCount == 0
			changed = q.changed
		})
		if idle {
			return nil
		}

		select {
		case <-ctx.Done():
			return xerrors.WithStackTrace(ctx.Err())
		case <-changed:
		}
	}
}

// Len returns number of pending messages.
func (q *PartitionQueue) Len() (n int) {
	q.m.WithLock(func() {
		n = len(q.pending)
	})

	return n
}

// PendingBytes returns size of pending messages.
func (q *PartitionQueue) PendingBytes() (n int) {
	q.m.WithLock(func() {
		n = q.pendingBytes
	})

	return n
}

// BufferedBytes returns size of pending and in flight messages.
func (q *PartitionQueue) BufferedBytes() (n int) {
	q.m.WithLock(func() {
		n = q.pendingBytes + q.inflightBytes
	})

	return n
}

func (q *PartitionQueue) hasSpaceLocked(size int) bool {
	count := len(q.pending) + q.inflightCount
	if q.cfg.MaxBufferedCount > 0 && count+1 > q.cfg.MaxBufferedCount {
		return false
	}

	bytes := q.pendingBytes + q.inflightBytes
	if q.cfg.MaxBufferedBytes > 0 && bytes+size > q.cfg.MaxBufferedBytes {
		return false
	}

	return true
}

func (q *PartitionQueue) sizeTriggeredLocked() bool {
	if len(q.pending) >= q.cfg.MaxPutMessageNumber {
		return true
	}

	return q.cfg.MaxPutMessageBytes > 0 && q.pendingBytes >= q.cfg.MaxPutMessageBytes
}

func (q *PartitionQueue) shouldFlushLocked(now time.Time) bool {
	if q.forceFlush || q.sizeTriggeredLocked() {
		return true
	}

	return q.cfg.MaxBufferedTime > 0 && now.Sub(q.pending[0].enqueuedAt) >= q.cfg.MaxBufferedTime
}

func (q *PartitionQueue) notifyChangedLocked() {
	close(q.changed)
	q.changed = make(chan struct{})
}

func (q *PartitionQueue) signalReady() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Batch is an ordered part of a partition queue taken by one drain.
type Batch struct {
	Partition topictypes.PartitionID

	messages []*userMessage
	bytes    int
}

func (b Batch) IsEmpty() bool {
	return len(b.messages) == 0
}

func (b Batch) Len() int {
	return len(b.messages)
}

func (b Batch) Bytes() int {
	return b.bytes
}

// Messages returns messages in the form passed to a transport.
func (b Batch) Messages() []topictypes.Message {
	res := make([]topictypes.Message, len(b.messages))
	for i, um := range b.messages {
		res[i] = um.Message
	}

	return res
}

func (b Batch) complete(ack topictypes.Ack) {
	for i, um := range b.messages {
		um.future.resolve(SendResult{
			Partition: b.Partition,
			Offset:    ack.FirstOffset + topictypes.Offset(i),
		}, nil)
	}
}

func (b Batch) fail(err error) {
	for _, um := range b.messages {
		um.future.resolve(SendResult{Partition: b.Partition, Offset: topictypes.OffsetUnset}, err)
	}
}
