package topicwriter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/partlog/partlog-go-sdk/internal/backgroundworkers"
	"github.com/partlog/partlog-go-sdk/internal/metrics"
	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/log"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
	"github.com/partlog/partlog-go-sdk/trace"
)

var (
	ErrProducerNotActive = errors.New("partlog: writer is not active")
	ErrProducerClosed    = errors.New("partlog: writer closed before message was sent")
)

// Writer is a producer of one topic. It keeps a queue per partition and
// a sender goroutine per queue, so messages of a partition are sent in order.
type Writer struct {
	cfg       WriterConfig
	topic     string
	transport transport.Transport

	background *backgroundworkers.BackgroundWorker
	senders    *semaphore.Weighted
	refresh    singleflight.Group

	m          xsync.RWMutex
	queues     map[topictypes.PartitionID]*PartitionQueue
	partitions []topictypes.PartitionID

	closing  atomic.Bool
	fatalErr atomic.Pointer[error]
}

// NewWriter describes topic partitions and starts senders.
func NewWriter(ctx context.Context, tr transport.Transport, topic string, opts ...WriterOption) (*Writer, error) {
	cfg := newWriterConfig(opts...)
	cfg.Trace = log.TopicWriter(cfg.Logger).Compose(cfg.Trace)

	w := &Writer{
		cfg:        cfg,
		topic:      topic,
		transport:  tr,
		background: backgroundworkers.New(context.Background()),
		senders:    semaphore.NewWeighted(int64(cfg.SenderConcurrency)),
		queues:     make(map[topictypes.PartitionID]*PartitionQueue),
	}

	if err := w.refreshPartitions(ctx); err != nil {
		_ = w.background.Close(ctx, err)

		return nil, err
	}

	if cfg.PartitionCheckInterval > 0 {
		w.background.Start("topicwriter-partitions", w.partitionsCheckLoop)
	}

	return w, nil
}

func (w *Writer) Topic() string {
	return w.topic
}

// Send puts the message into its partition queue.
// Errors of the queue (ErrQueueFull, ErrQueueClosed) are returned immediately,
// the send result is reported by the future.
func (w *Writer) Send(ctx context.Context, mess Message) (*SendFuture, error) {
	if !w.IsActive() {
		return nil, w.notActiveError()
	}

	q, err := w.queueFor(ctx, &mess)
	if err != nil {
		return nil, err
	}

	fut, err := q.Enqueue(ctx, mess)
	if err != nil {
		if errors.Is(err, ErrQueueClosed) {
			return nil, w.notActiveError()
		}

		return nil, err
	}
	w.reportBuffered(q)

	return fut, nil
}

// Write sends messages and waits until all of them are acknowledged.
// It returns first error of the messages.
func (w *Writer) Write(ctx context.Context, messages ...Message) error {
	futures := make([]*SendFuture, 0, len(messages))
	for i := range messages {
		fut, err := w.Send(ctx, messages[i])
		if err != nil {
			return err
		}
		futures = append(futures, fut)
	}

	var firstErr error
	for _, fut := range futures {
		if _, err := fut.Wait(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// Flush sends all buffered messages and waits for their acknowledgement.
func (w *Writer) Flush(ctx context.Context) error {
	queues := w.snapshotQueues()
	for _, q := range queues {
		q.RequestFlush()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queues {
		q := q
		g.Go(func() error {
			return q.WaitIdle(gctx)
		})
	}

	return g.Wait()
}

// IsActive reports whether the writer accepts messages. A writer becomes
// inactive on Close or after a fatal transport error.
func (w *Writer) IsActive() bool {
	return !w.closing.Load() && w.fatalErr.Load() == nil
}

// Partitions returns known partitions of the topic.
func (w *Writer) Partitions() []topictypes.PartitionID {
	var res []topictypes.PartitionID
	w.m.WithRLock(func() {
		res = append(res, w.partitions...)
	})

	return res
}

// Close flushes buffered messages while ctx allows, then stops senders
// and fails messages left in queues with ErrProducerClosed.
// Repeated calls do nothing.
func (w *Writer) Close(ctx context.Context) error {
	if !w.closing.CompareAndSwap(false, true) {
		return nil
	}

	flushErr := w.Flush(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), w.cfg.StopTimeout)
	defer cancel()
	stopErr := w.background.Close(stopCtx, xerrors.WithStackTrace(ErrProducerClosed))

	dropped := 0
	for _, q := range w.snapshotQueues() {
		q.Close()
		dropped += q.Purge(xerrors.WithStackTrace(ErrProducerClosed))
		w.reportBuffered(q)
	}

	err := flushErr
	if err == nil {
		err = stopErr
	}
	trace.TopicOnWriterClose(w.cfg.Trace, trace.OnWriterCloseInfo{
		Topic:   w.topic,
		Dropped: dropped,
		Error:   err,
	})

	return err
}

func (w *Writer) queueFor(ctx context.Context, mess *Message) (*PartitionQueue, error) {
	if id, ok := mess.Partitioning.PartitionID(); ok {
		if q := w.queue(id); q != nil {
			return q, nil
		}
		if err := w.refreshPartitions(ctx); err != nil {
			return nil, err
		}
		if q := w.queue(id); q != nil {
			return q, nil
		}

		return nil, xerrors.WithStackTrace(transport.NewError("Send", transport.CodeInvalidArgument,
			fmt.Errorf("topic %q has no partition %v", w.topic, id),
		))
	}

	var q *PartitionQueue
	w.m.WithRLock(func() {
		id := w.cfg.Partitioner.Partition(mess, w.partitions)
		q = w.queues[id]
	})
	if q == nil {
		return nil, xerrors.WithStackTrace(fmt.Errorf("partlog: partitioner returned unknown partition for topic %q", w.topic))
	}

	return q, nil
}

func (w *Writer) queue(id topictypes.PartitionID) (q *PartitionQueue) {
	w.m.WithRLock(func() {
		q = w.queues[id]
	})

	return q
}

func (w *Writer) snapshotQueues() []*PartitionQueue {
	var res []*PartitionQueue
	w.m.WithRLock(func() {
		for _, id := range w.partitions {
			res = append(res, w.queues[id])
		}
	})

	return res
}

// refreshPartitions adds queues for new partitions, concurrent calls share one request.
func (w *Writer) refreshPartitions(ctx context.Context) error {
	_, err, _ := w.refresh.Do("describe", func() (interface{}, error) {
		var partitions []topictypes.PartitionID
		_, err := retry.Do(ctx, w.cfg.Clock, w.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
			opCtx, cancel := w.cfg.OperationContext(ctx)
			defer cancel()

			var err error
			partitions, err = w.transport.DescribePartitions(opCtx, w.topic)

			return err
		}, nil)
		if err != nil {
			return nil, xerrors.WithStackTrace(fmt.Errorf("partlog: describe partitions of %q: %w", w.topic, err))
		}
		if len(partitions) == 0 {
			return nil, xerrors.WithStackTrace(fmt.Errorf("partlog: topic %q has no partitions", w.topic))
		}

		w.addPartitions(partitions)

		return nil, nil
	})

	return err
}

func (w *Writer) addPartitions(partitions []topictypes.PartitionID) {
	var added []*PartitionQueue
	w.m.WithLock(func() {
		for _, id := range partitions {
			if _, ok := w.queues[id]; ok {
				continue
			}
			q := NewPartitionQueue(id, w.cfg.Queue, w.cfg.Clock)
			w.queues[id] = q
			w.partitions = append(w.partitions, id)
			added = append(added, q)
		}
		sort.Slice(w.partitions, func(i, j int) bool {
			return w.partitions[i] < w.partitions[j]
		})
	})

	for _, q := range added {
		q := q
		w.background.Start("topicwriter-sender-"+q.Partition().String(), func(ctx context.Context) {
			w.senderLoop(ctx, q)
		})
	}

	trace.TopicOnWriterPartitions(w.cfg.Trace, trace.OnWriterPartitionsInfo{
		Topic:      w.topic,
		Partitions: len(w.Partitions()),
		Added:      len(added),
	})
}

func (w *Writer) partitionsCheckLoop(ctx context.Context) {
	ticker := w.cfg.Clock.NewTicker(w.cfg.PartitionCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := w.refreshPartitions(ctx); err != nil && transport.IsFatal(err) {
				w.deactivate(err)
			}
		}
	}
}

func (w *Writer) senderLoop(ctx context.Context, q *PartitionQueue) {
	for {
		var (
			timer   clockwork.Timer
			timeout <-chan time.Time
		)
		if d, ok := q.NextDeadline(); ok {
			timer = w.cfg.Clock.NewTimer(d)
			timeout = timer.Chan()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return
		case <-q.Ready():
		case <-timeout:
		}
		if timer != nil {
			timer.Stop()
		}

		w.flushQueue(ctx, q)
	}
}

func (w *Writer) flushQueue(ctx context.Context, q *PartitionQueue) {
	for ctx.Err() == nil {
		batch := q.TryDrain(w.cfg.Queue.MaxPutMessageNumber, w.cfg.Queue.MaxPutMessageBytes)
		if batch.IsEmpty() {
			return
		}
		w.sendBatch(ctx, batch)
		q.Release(batch)
		w.reportBuffered(q)
	}
}

func (w *Writer) sendBatch(ctx context.Context, batch Batch) {
	if w.fatalErr.Load() != nil {
		w.failBatch(batch, w.notActiveError(), 0)

		return
	}

	if err := w.senders.Acquire(ctx, 1); err != nil {
		w.failBatch(batch, xerrors.WithStackTrace(ErrProducerClosed), 0)

		return
	}
	defer w.senders.Release(1)

	messages := batch.Messages()
	var ack topictypes.Ack
	attempts, err := retry.Do(ctx, w.cfg.Clock, w.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
		if w.fatalErr.Load() != nil {
			return w.notActiveError()
		}

		opCtx, cancel := w.cfg.OperationContext(ctx)
		defer cancel()

		var err error
		ack, err = w.transport.PutMessages(opCtx, w.topic, batch.Partition, messages)

		return err
	}, func(info retry.Info) {
		metrics.SendRetriesTotal.WithLabelValues(w.topic).Inc()
		trace.TopicOnWriterSendRetry(w.cfg.Trace, trace.OnWriterSendRetryInfo{
			Topic:       w.topic,
			PartitionID: int64(batch.Partition),
			Attempt:     info.Attempt,
			Delay:       info.Delay,
			Error:       info.Error,
		})
	})
	if err != nil {
		if transport.IsFatal(err) {
			w.deactivate(err)
		}
		if ctx.Err() != nil && !errors.Is(err, ErrProducerNotActive) {
			err = fmt.Errorf("%w: %w", ErrProducerClosed, err)
		}
		w.failBatch(batch, xerrors.WithStackTrace(err), attempts)

		return
	}

	batch.complete(ack)
	metrics.MessagesSentTotal.WithLabelValues(w.topic, "ok").Add(float64(batch.Len()))
	metrics.BatchSize.WithLabelValues(w.topic).Observe(float64(batch.Len()))
	trace.TopicOnWriterBatchSent(w.cfg.Trace, trace.OnWriterBatchSentInfo{
		Topic:       w.topic,
		PartitionID: int64(batch.Partition),
		Count:       batch.Len(),
		Bytes:       batch.Bytes(),
		FirstOffset: int64(ack.FirstOffset),
		Attempts:    attempts,
	})
}

func (w *Writer) failBatch(batch Batch, err error, attempts int) {
	batch.fail(err)
	metrics.MessagesSentTotal.WithLabelValues(w.topic, "error").Add(float64(batch.Len()))
	trace.TopicOnWriterBatchSent(w.cfg.Trace, trace.OnWriterBatchSentInfo{
		Topic:       w.topic,
		PartitionID: int64(batch.Partition),
		Count:       batch.Len(),
		Bytes:       batch.Bytes(),
		FirstOffset: int64(topictypes.OffsetUnset),
		Attempts:    attempts,
		Error:       err,
	})
}

// deactivate stops accepting messages after a fatal error and fails everything buffered.
func (w *Writer) deactivate(cause error) {
	if !w.fatalErr.CompareAndSwap(nil, &cause) {
		return
	}

	trace.TopicOnWriterDeactivated(w.cfg.Trace, trace.OnWriterDeactivatedInfo{
		Topic: w.topic,
		Error: cause,
	})

	notActive := w.notActiveError()
	for _, q := range w.snapshotQueues() {
		q.Purge(notActive)
		w.reportBuffered(q)
	}
}

func (w *Writer) notActiveError() error {
	if cause := w.fatalErr.Load(); cause != nil {
		return xerrors.WithStackTrace(fmt.Errorf("%w: %w", ErrProducerNotActive, *cause))
	}

	return xerrors.WithStackTrace(ErrProducerNotActive)
}

func (w *Writer) reportBuffered(q *PartitionQueue) {
	metrics.BufferedBytes.
		WithLabelValues(w.topic, metrics.Partition(int32(q.Partition()))).
		Set(float64(q.BufferedBytes()))
}
