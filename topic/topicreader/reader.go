package topicreader

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/partlog/partlog-go-sdk/internal/backgroundworkers"
	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/log"
	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
	"github.com/partlog/partlog-go-sdk/trace"
)

var (
	ErrReaderClosed         = errors.New("partlog: reader closed")
	ErrPartitionReadStarted = errors.New("partlog: partition is read already")
)

// Reader is a consumer of one topic. It reads only partitions started explicitly,
// usually by a group coordinator, with one fetch loop per partition.
type Reader struct {
	cfg       ReaderConfig
	topic     string
	transport transport.Transport
	store     checkpoint.Store
	factory   MessageProcessorFactory

	background *backgroundworkers.BackgroundWorker

	m        xsync.Mutex
	fetchers map[topictypes.PartitionID]*partitionFetcher
	closed   bool
}

func NewReader(
	tr transport.Transport,
	store checkpoint.Store,
	topic string,
	factory MessageProcessorFactory,
	opts ...ReaderOption,
) *Reader {
	cfg := newReaderConfig(opts...)
	cfg.Trace = log.TopicReader(cfg.Logger).Compose(cfg.Trace)

	return &Reader{
		cfg:        cfg,
		topic:      topic,
		transport:  tr,
		store:      store,
		factory:    factory,
		background: backgroundworkers.New(context.Background()),
		fetchers:   make(map[topictypes.PartitionID]*partitionFetcher),
	}
}

func (r *Reader) Topic() string {
	return r.topic
}

// StartPartition starts reading the partition from its checkpoint,
// or from the initial position if the partition has no checkpoint yet.
// generation identifies the assignment the partition was received with.
func (r *Reader) StartPartition(ctx context.Context, partition topictypes.PartitionID, generation int64) error {
	if err := r.checkCanStart(partition); err != nil {
		return err
	}

	start, committed, err := r.startOffset(ctx, partition)
	if err != nil {
		return err
	}

	processor := r.factory.CreateProcessor(r.topic, partition)
	if err = processor.Init(ctx, partition, start); err != nil {
		return xerrors.WithStackTrace(fmt.Errorf("partlog: init processor of %s/%v: %w", r.topic, partition, err))
	}

	f := newPartitionFetcher(r.background.Context(), &r.cfg, r.topic, partition, generation,
		r.transport, r.store, processor, start, committed,
	)

	r.m.WithLock(func() {
		err = r.checkCanStartLocked(partition)
		if err == nil {
			r.fetchers[partition] = f
		}
	})
	if err != nil {
		f.cancel(err)
		processor.Shutdown(ctx, checkpointer{c: f.committer, limit: start})

		return err
	}

	info := trace.OnPartitionReadStartInfo{
		PartitionContext: f.ctx,
		Topic:            r.topic,
		PartitionID:      int64(partition),
		Generation:       generation,
		ReadOffset:       int64(start),
	}
	if committed != topictypes.OffsetUnset {
		commitOffset := int64(committed)
		info.CommitOffset = &commitOffset
	}
	trace.TopicOnPartitionReadStart(r.cfg.Trace, info)

	if !r.background.Start("topicreader-partition-"+partition.String(), func(context.Context) {
		r.runFetcher(f)
	}) {
		r.detach(f)

		return xerrors.WithStackTrace(ErrReaderClosed)
	}

	return nil
}

// StopPartition stops reading the partition and calls Shutdown of its processor.
// If ctx is done before the fetch loop exits, the error is returned and Shutdown
// is called later, when the loop exits.
// Stopping a partition that is not read does nothing.
func (r *Reader) StopPartition(ctx context.Context, partition topictypes.PartitionID) error {
	var f *partitionFetcher
	r.m.WithLock(func() {
		f = r.fetchers[partition]
		delete(r.fetchers, partition)
	})
	if f == nil {
		return nil
	}

	return f.stop(ctx)
}

// Partitions returns partitions read now.
func (r *Reader) Partitions() []topictypes.PartitionID {
	var res []topictypes.PartitionID
	r.m.WithLock(func() {
		for id := range r.fetchers {
			res = append(res, id)
		}
	})
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})

	return res
}

// Committed returns the checkpoint known to the reader for a partition it reads.
func (r *Reader) Committed(partition topictypes.PartitionID) (topictypes.Offset, bool) {
	var f *partitionFetcher
	r.m.WithLock(func() {
		f = r.fetchers[partition]
	})
	if f == nil {
		return topictypes.OffsetUnset, false
	}

	return f.committer.Committed(), true
}

// Close stops all partitions, ctx bounds waiting for processors.
// Repeated calls do nothing.
func (r *Reader) Close(ctx context.Context) error {
	var (
		fetchers []*partitionFetcher
		closed   bool
	)
	r.m.WithLock(func() {
		closed = r.closed
		r.closed = true
		for _, f := range r.fetchers {
			fetchers = append(fetchers, f)
		}
		r.fetchers = make(map[topictypes.PartitionID]*partitionFetcher)
	})
	if closed {
		return nil
	}

	var g errgroup.Group
	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			return f.stop(ctx)
		})
	}
	err := g.Wait()

	if closeErr := r.background.Close(ctx, xerrors.WithStackTrace(ErrReaderClosed)); err == nil {
		err = closeErr
	}

	return err
}

func (r *Reader) runFetcher(f *partitionFetcher) {
	f.run()

	handedOver := f.exit()
	fenced := f.committer.Fenced() != nil
	if fenced {
		r.detach(f)
	} else if !handedOver {
		return
	}

	ctx, cancel := r.cfg.OperationContext(context.Background())
	defer cancel()
	f.shutdown(ctx, !fenced)
}

func (r *Reader) detach(f *partitionFetcher) {
	r.m.WithLock(func() {
		if r.fetchers[f.partition] == f {
			delete(r.fetchers, f.partition)
		}
	})
}

func (r *Reader) checkCanStart(partition topictypes.PartitionID) (err error) {
	r.m.WithLock(func() {
		err = r.checkCanStartLocked(partition)
	})

	return err
}

func (r *Reader) checkCanStartLocked(partition topictypes.PartitionID) error {
	if r.closed {
		return xerrors.WithStackTrace(ErrReaderClosed)
	}
	if _, ok := r.fetchers[partition]; ok {
		return xerrors.WithStackTrace(fmt.Errorf("%w: %s/%v", ErrPartitionReadStarted, r.topic, partition))
	}

	return nil
}

// startOffset returns the offset to read from and the committed offset,
// which is topictypes.OffsetUnset if there is no checkpoint.
func (r *Reader) startOffset(
	ctx context.Context,
	partition topictypes.PartitionID,
) (start, committed topictypes.Offset, err error) {
	var (
		cp checkpoint.Checkpoint
		ok bool
	)
	_, err = retry.Do(ctx, r.cfg.Clock, r.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
		opCtx, cancel := r.cfg.OperationContext(ctx)
		defer cancel()

		var err error
		cp, ok, err = r.store.Get(opCtx, r.topic, partition)

		return err
	}, nil)
	if err != nil {
		return 0, 0, xerrors.WithStackTrace(fmt.Errorf("partlog: read checkpoint of %s/%v: %w", r.topic, partition, err))
	}
	if ok {
		return cp.Offset, cp.Offset, nil
	}

	var offsets topictypes.OffsetRange
	_, err = retry.Do(ctx, r.cfg.Clock, r.cfg.RetryPolicy, func(ctx context.Context, attempt int) error {
		opCtx, cancel := r.cfg.OperationContext(ctx)
		defer cancel()

		var err error
		offsets, err = r.transport.GetOffsetRange(opCtx, r.topic, partition)

		return err
	}, nil)
	if err != nil {
		return 0, 0, xerrors.WithStackTrace(fmt.Errorf("partlog: read offsets of %s/%v: %w", r.topic, partition, err))
	}

	if r.cfg.InitialPosition == InitialPositionLatest {
		return offsets.End, topictypes.OffsetUnset, nil
	}

	return offsets.Start, topictypes.OffsetUnset, nil
}
