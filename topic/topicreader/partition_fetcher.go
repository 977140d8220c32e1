package topicreader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/partlog/partlog-go-sdk/internal/metrics"
	"github.com/partlog/partlog-go-sdk/internal/xcontext"
	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
	"github.com/partlog/partlog-go-sdk/trace"
)

var errPartitionStopped = errors.New("partlog: partition reading stopped")

// partitionFetcher is the only reader of a partition within a reader.
// Results that arrive after it was stopped or fenced are dropped.
type partitionFetcher struct {
	cfg        *ReaderConfig
	topic      string
	partition  topictypes.PartitionID
	generation int64
	transport  transport.Transport
	processor  MessageProcessor
	committer  *committer

	ctx    context.Context
	cancel xcontext.CancelErrFunc
	done   chan struct{}

	// readOffset is owned by the run goroutine.
	readOffset topictypes.Offset

	// processed is the offset after the last message processed without error.
	processed atomic.Int64

	shutdownOnce sync.Once

	exitM          xsync.Mutex
	exited         bool
	shutdownOnExit bool
}

func newPartitionFetcher(
	parent context.Context,
	cfg *ReaderConfig,
	topic string,
	partition topictypes.PartitionID,
	generation int64,
	tr transport.Transport,
	store checkpoint.Store,
	processor MessageProcessor,
	start, committed topictypes.Offset,
) *partitionFetcher {
	ctx, cancel := xcontext.WithErrCancel(parent)

	f := &partitionFetcher{
		cfg:        cfg,
		topic:      topic,
		partition:  partition,
		generation: generation,
		transport:  tr,
		processor:  processor,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		readOffset: start,
	}
	f.processed.Store(int64(start))
	f.committer = newCommitter(cfg, topic, partition, store, committed, f.onStale)

	return f
}

func (f *partitionFetcher) run() {
	defer close(f.done)

	for f.ctx.Err() == nil {
		messages, err := f.fetch()
		if f.ctx.Err() != nil {
			return
		}
		if err != nil {
			f.sleep(f.cfg.FetchPauseInterval)

			continue
		}
		if len(messages) == 0 {
			f.sleep(f.cfg.EmptyFetchBackoff)

			continue
		}

		batch, err := newBatch(f.topic, f.partition, f.readOffset, messages)
		if err != nil {
			f.traceFetchError(err, 1)
			f.sleep(f.cfg.FetchPauseInterval)

			continue
		}

		if !f.deliver(batch) {
			return
		}
		f.readOffset = batch.LastOffset() + 1
	}
}

func (f *partitionFetcher) fetch() ([]topictypes.Message, error) {
	var messages []topictypes.Message
	attempts, err := retry.Do(f.ctx, f.cfg.Clock, f.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
		opCtx, cancel := f.cfg.OperationContext(ctx)
		defer cancel()

		var err error
		messages, err = f.transport.GetMessages(opCtx, f.topic, f.partition, f.readOffset,
			f.cfg.MaxFetchCount, f.cfg.MaxFetchBytes,
		)

		return err
	}, func(info retry.Info) {
		metrics.FetchErrorsTotal.WithLabelValues(f.topic).Inc()
	})
	if err != nil {
		if f.ctx.Err() == nil {
			metrics.FetchErrorsTotal.WithLabelValues(f.topic).Inc()
			f.traceFetchError(err, attempts)
		}

		return nil, err
	}

	if len(messages) > f.cfg.MaxFetchCount {
		messages = messages[:f.cfg.MaxFetchCount]
	}

	return messages, nil
}

// deliver passes the batch to the processor until it succeeds.
// It returns false if the partition was stopped meanwhile.
func (f *partitionFetcher) deliver(batch Batch) bool {
	cp := checkpointer{c: f.committer, limit: batch.LastOffset() + 1}

	for {
		err := f.processor.Process(f.ctx, batch, cp)
		if f.ctx.Err() != nil {
			if err == nil {
				f.processed.Store(int64(cp.limit))
			}

			return false
		}
		if err == nil {
			break
		}

		processErr := &ProcessingError{
			Topic:     f.topic,
			Partition: f.partition,
			Offsets:   batch.Range(),
			Err:       err,
		}
		metrics.MessagesProcessedTotal.WithLabelValues(f.topic, "error").Add(float64(len(batch.Messages)))
		trace.TopicOnPartitionProcessError(f.cfg.Trace, trace.OnPartitionProcessErrorInfo{
			Topic:       f.topic,
			PartitionID: int64(f.partition),
			FromOffset:  int64(batch.FirstOffset()),
			ToOffset:    int64(batch.LastOffset()),
			Error:       processErr,
		})

		if !f.sleep(f.cfg.ProcessRetryBackoff) {
			return false
		}
	}

	f.processed.Store(int64(cp.limit))
	metrics.MessagesProcessedTotal.WithLabelValues(f.topic, "ok").Add(float64(len(batch.Messages)))

	if f.cfg.CheckpointMode != CheckpointAuto {
		return true
	}

	if err := cp.Checkpoint(f.ctx); err != nil {
		if f.ctx.Err() != nil || errors.Is(err, checkpoint.ErrStaleGeneration) {
			return false
		}
		// next successful checkpoint covers this batch too
		trace.TopicOnPartitionCommittedNotify(f.cfg.Trace, trace.OnPartitionCommittedInfo{
			Topic:           f.topic,
			PartitionID:     int64(f.partition),
			CommittedOffset: int64(f.committer.Committed()),
			Error:           err,
		})
	}

	return true
}

// stop cancels reading and calls Shutdown of the processor after the fetch loop exited.
func (f *partitionFetcher) stop(ctx context.Context) error {
	f.cancel(xerrors.WithStackTrace(errPartitionStopped))

	select {
	case <-f.done:
	case <-ctx.Done():
		if f.handOverShutdown() {
			return xerrors.WithStackTrace(fmt.Errorf("partlog: stop reading %s/%v: %w", f.topic, f.partition, ctx.Err()))
		}
	}

	f.shutdown(ctx, f.committer.Fenced() == nil)

	return nil
}

// handOverShutdown makes the fetch goroutine call Shutdown once its loop exits.
// It returns false if the loop exited already.
func (f *partitionFetcher) handOverShutdown() (handed bool) {
	f.exitM.WithLock(func() {
		handed = !f.exited
		f.shutdownOnExit = handed
	})

	return handed
}

// exit marks the loop exited and reports whether Shutdown was handed over to the fetch goroutine.
func (f *partitionFetcher) exit() (shutdown bool) {
	f.exitM.WithLock(func() {
		f.exited = true
		shutdown = f.shutdownOnExit
	})

	return shutdown
}

func (f *partitionFetcher) shutdown(ctx context.Context, graceful bool) {
	f.shutdownOnce.Do(func() {
		f.processor.Shutdown(ctx, checkpointer{
			c:     f.committer,
			limit: topictypes.Offset(f.processed.Load()),
		})

		trace.TopicOnPartitionReadStop(f.cfg.Trace, trace.OnPartitionReadStopInfo{
			PartitionContext: f.ctx,
			Topic:            f.topic,
			PartitionID:      int64(f.partition),
			Generation:       f.generation,
			CommittedOffset:  int64(f.committer.Committed()),
			Graceful:         graceful,
		})
	})
}

func (f *partitionFetcher) onStale(err error) {
	f.cancel(err)

	trace.TopicOnPartitionStale(f.cfg.Trace, trace.OnPartitionStaleInfo{
		Topic:       f.topic,
		PartitionID: int64(f.partition),
		Generation:  f.generation,
		Error:       err,
	})
	if f.cfg.OnStale != nil {
		f.cfg.OnStale(f.partition, err)
	}
}

func (f *partitionFetcher) traceFetchError(err error, attempts int) {
	trace.TopicOnPartitionFetchError(f.cfg.Trace, trace.OnPartitionFetchErrorInfo{
		Topic:       f.topic,
		PartitionID: int64(f.partition),
		Offset:      int64(f.readOffset),
		Attempts:    attempts,
		Error:       err,
	})
}

// sleep waits d on the clock, it returns false if the fetcher was stopped.
func (f *partitionFetcher) sleep(d time.Duration) bool {
	if d <= 0 {
		return f.ctx.Err() == nil
	}

	select {
	case <-f.ctx.Done():
		return false
	case <-f.cfg.Clock.After(d):
		return true
	}
}
