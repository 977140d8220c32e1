package topicreader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
	"github.com/partlog/partlog-go-sdk/topic/transport/memtransport"
	"github.com/partlog/partlog-go-sdk/trace"
)

const (
	testTopic           = "test-topic"
	emptyFetchBackoff   = time.Second
	processRetryBackoff = 2 * time.Second
	fetchPauseInterval  = 3 * time.Second
	waitTimeout         = 5 * time.Second
)

type testProcessor struct {
	onInit     func(ctx context.Context, partition topictypes.PartitionID, start topictypes.Offset) error
	onProcess  func(ctx context.Context, batch Batch, cp Checkpointer) error
	onShutdown func(ctx context.Context, cp Checkpointer)
}

func (p *testProcessor) Init(ctx context.Context, partition topictypes.PartitionID, start topictypes.Offset) error {
	if p.onInit == nil {
		return nil
	}

	return p.onInit(ctx, partition, start)
}

func (p *testProcessor) Process(ctx context.Context, batch Batch, cp Checkpointer) error {
	if p.onProcess == nil {
		return nil
	}

	return p.onProcess(ctx, batch, cp)
}

func (p *testProcessor) Shutdown(ctx context.Context, cp Checkpointer) {
	if p.onShutdown != nil {
		p.onShutdown(ctx, cp)
	}
}

func singleProcessor(p MessageProcessor) MessageProcessorFactory {
	return MessageProcessorFactoryFunc(func(string, topictypes.PartitionID) MessageProcessor {
		return p
	})
}

// sendBatches returns a processor which passes every batch to the channel.
func sendBatches(batches chan<- Batch) *testProcessor {
	return &testProcessor{
		onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
			batches <- batch

			return nil
		},
	}
}

func newTestTransport(t *testing.T, partitions, messages int) *memtransport.Transport {
	t.Helper()

	tr := memtransport.New(clockwork.NewFakeClock())
	tr.CreateTopic(testTopic, partitions)
	for p := 0; p < partitions; p++ {
		putMessages(t, tr, topictypes.PartitionID(p), messages)
	}

	return tr
}

func putMessages(t *testing.T, tr *memtransport.Transport, partition topictypes.PartitionID, n int) {
	t.Helper()

	if n == 0 {
		return
	}
	messages := make([]topictypes.Message, n)
	for i := range messages {
		messages[i] = topictypes.Message{Data: []byte(fmt.Sprintf("message-%d", i))}
	}
	_, err := tr.PutMessages(context.Background(), testTopic, partition, messages)
	require.NoError(t, err)
}

func newTestReader(
	t *testing.T,
	tr transport.Transport,
	store checkpoint.Store,
	factory MessageProcessorFactory,
	opts ...ReaderOption,
) (*Reader, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	logger, _ := test.NewNullLogger()
	defaults := []ReaderOption{
		WithClock(clock),
		WithLogger(logger),
		WithRetryPolicy(retry.Policy{MaxAttempts: 1}),
		WithEmptyFetchBackoff(emptyFetchBackoff),
		WithProcessRetryBackoff(processRetryBackoff),
		WithFetchPauseInterval(fetchPauseInterval),
	}

	r := NewReader(tr, store, testTopic, factory, append(defaults, opts...)...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
		defer cancel()
		_ = r.Close(ctx)
	})

	return r, clock
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timeout")

		var zero T

		return zero
	}
}

func offsets(b Batch) []topictypes.Offset {
	res := make([]topictypes.Offset, 0, len(b.Messages))
	for _, mess := range b.Messages {
		res = append(res, mess.Offset)
	}

	return res
}

func requireStored(t *testing.T, store checkpoint.Store, partition topictypes.PartitionID, offset topictypes.Offset) {
	t.Helper()

	require.Eventually(t, func() bool {
		cp, ok, err := store.Get(context.Background(), testTopic, partition)

		return err == nil && ok && cp.Offset == offset
	}, waitTimeout, time.Millisecond)
}

func TestReaderRead(t *testing.T) {
	ctx := context.Background()

	t.Run("AutoCheckpoint", func(t *testing.T) {
		tr := newTestTransport(t, 2, 5)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, _ := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)))

		require.NoError(t, r.StartPartition(ctx, 1, 1))
		require.Equal(t, []topictypes.PartitionID{1}, r.Partitions())

		batch := receive(t, batches)
		require.Equal(t, topictypes.PartitionID(1), batch.Partition)
		require.Equal(t, []topictypes.Offset{0, 1, 2, 3, 4}, offsets(batch))
		require.Equal(t, "message-0", string(batch.Messages[0].Data))

		requireStored(t, store, 1, 5)
		committed, ok := r.Committed(1)
		require.True(t, ok)
		require.Equal(t, topictypes.Offset(5), committed)

		_, ok, err := store.Get(ctx, testTopic, 0)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("MaxFetchCount", func(t *testing.T) {
		tr := newTestTransport(t, 1, 7)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, _ := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)), WithMaxFetchCount(3))

		require.NoError(t, r.StartPartition(ctx, 0, 1))

		require.Equal(t, []topictypes.Offset{0, 1, 2}, offsets(receive(t, batches)))
		require.Equal(t, []topictypes.Offset{3, 4, 5}, offsets(receive(t, batches)))
		require.Equal(t, []topictypes.Offset{6}, offsets(receive(t, batches)))
		requireStored(t, store, 0, 7)
	})

	t.Run("EmptyFetchBackoff", func(t *testing.T) {
		tr := newTestTransport(t, 1, 0)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, clock := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)))

		require.NoError(t, r.StartPartition(ctx, 0, 1))

		clock.BlockUntil(1)
		putMessages(t, tr, 0, 2)
		clock.Advance(emptyFetchBackoff)

		require.Equal(t, []topictypes.Offset{0, 1}, offsets(receive(t, batches)))
	})

	t.Run("FetchErrorPause", func(t *testing.T) {
		tr := newTestTransport(t, 1, 2)
		var fail atomic.Bool
		fail.Store(true)
		tr.SetGetHook(func(ctx context.Context, topic string, partition topictypes.PartitionID, from topictypes.Offset) error {
			if fail.Load() {
				return transport.NewError("GetMessages", transport.CodeUnavailable, errors.New("broker is down"))
			}

			return nil
		})

		fetchErrors := make(chan trace.OnPartitionFetchErrorInfo, 10)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, clock := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)), WithTrace(trace.TopicReader{
			OnPartitionFetchError: func(info trace.OnPartitionFetchErrorInfo) {
				fetchErrors <- info
			},
		}))

		require.NoError(t, r.StartPartition(ctx, 0, 1))

		info := receive(t, fetchErrors)
		require.Equal(t, int64(0), info.Offset)
		require.True(t, transport.IsRetryable(info.Error))

		clock.BlockUntil(1)
		fail.Store(false)
		clock.Advance(fetchPauseInterval)

		require.Equal(t, []topictypes.Offset{0, 1}, offsets(receive(t, batches)))
	})
}

func TestReaderStartOffset(t *testing.T) {
	ctx := context.Background()

	t.Run("FromCheckpoint", func(t *testing.T) {
		tr := newTestTransport(t, 1, 6)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		store.Reset(testTopic, 0, 4)

		inits := make(chan topictypes.Offset, 1)
		batches := make(chan Batch, 10)
		p := sendBatches(batches)
		p.onInit = func(ctx context.Context, partition topictypes.PartitionID, start topictypes.Offset) error {
			inits <- start

			return nil
		}
		r, _ := newTestReader(t, tr, store, singleProcessor(p), WithInitialPosition(InitialPositionLatest))

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		require.Equal(t, topictypes.Offset(4), receive(t, inits))
		require.Equal(t, []topictypes.Offset{4, 5}, offsets(receive(t, batches)))
	})

	t.Run("Earliest", func(t *testing.T) {
		tr := newTestTransport(t, 1, 6)
		tr.TruncateBefore(testTopic, 0, 2)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, _ := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)),
			WithInitialPosition(InitialPositionEarliest),
		)

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		require.Equal(t, []topictypes.Offset{2, 3, 4, 5}, offsets(receive(t, batches)))
		committed, ok := r.Committed(0)
		require.True(t, ok)
		require.Eventually(t, func() bool {
			committed, _ = r.Committed(0)

			return committed == 6
		}, waitTimeout, time.Millisecond)
	})

	t.Run("Latest", func(t *testing.T) {
		tr := newTestTransport(t, 1, 6)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, clock := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)),
			WithInitialPosition(InitialPositionLatest),
		)

		require.NoError(t, r.StartPartition(ctx, 0, 1))

		clock.BlockUntil(1)
		putMessages(t, tr, 0, 1)
		clock.Advance(emptyFetchBackoff)

		require.Equal(t, []topictypes.Offset{6}, offsets(receive(t, batches)))
		requireStored(t, store, 0, 7)
	})

	t.Run("InitError", func(t *testing.T) {
		tr := newTestTransport(t, 1, 1)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		initErr := errors.New("test")
		r, _ := newTestReader(t, tr, store, singleProcessor(&testProcessor{
			onInit: func(ctx context.Context, partition topictypes.PartitionID, start topictypes.Offset) error {
				return initErr
			},
		}))

		require.ErrorIs(t, r.StartPartition(ctx, 0, 1), initErr)
		require.Empty(t, r.Partitions())
	})

	t.Run("UnknownTopic", func(t *testing.T) {
		tr := memtransport.New(clockwork.NewFakeClock())
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		r, _ := newTestReader(t, tr, store, singleProcessor(&testProcessor{}))

		err := r.StartPartition(ctx, 0, 1)
		require.Error(t, err)
		require.True(t, transport.IsFatal(err))
	})
}

func TestReaderRedelivery(t *testing.T) {
	ctx := context.Background()

	// batch [10, 19] fails once and is delivered again unchanged
	tr := newTestTransport(t, 1, 30)
	store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
	store.Reset(testTopic, 0, 10)

	var calls atomic.Int32
	batches := make(chan Batch, 10)
	processErrors := make(chan error, 10)
	r, clock := newTestReader(t, tr, store, singleProcessor(&testProcessor{
		onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
			batches <- batch
			if calls.Add(1) == 1 {
				return errors.New("processor failed")
			}

			return nil
		},
	}), WithMaxFetchCount(10), WithTrace(trace.TopicReader{
		OnPartitionProcessError: func(info trace.OnPartitionProcessErrorInfo) {
			processErrors <- info.Error
		},
	}))

	require.NoError(t, r.StartPartition(ctx, 0, 1))

	first := receive(t, batches)
	require.Equal(t, topictypes.Offset(10), first.FirstOffset())
	require.Equal(t, topictypes.Offset(19), first.LastOffset())

	var processErr *ProcessingError
	require.ErrorAs(t, receive(t, processErrors), &processErr)
	require.Equal(t, topictypes.OffsetRange{Start: 10, End: 20}, processErr.Offsets)

	clock.BlockUntil(1)
	cp, _, err := store.Get(ctx, testTopic, 0)
	require.NoError(t, err)
	require.Equal(t, topictypes.Offset(10), cp.Offset)

	clock.Advance(processRetryBackoff)

	second := receive(t, batches)
	require.Equal(t, offsets(first), offsets(second))
	requireStored(t, store, 0, 20)

	third := receive(t, batches)
	require.Equal(t, topictypes.Offset(20), third.FirstOffset())
	requireStored(t, store, 0, 30)
}

func TestReaderManualCheckpoint(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialAndDeferred", func(t *testing.T) {
		tr := newTestTransport(t, 1, 10)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())

		type result struct {
			batch Batch
			err   error
		}
		results := make(chan result, 10)
		r, _ := newTestReader(t, tr, store, singleProcessor(&testProcessor{
			onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
				res := result{batch: batch}
				if batch.FirstOffset() == 5 {
					res.err = cp.CheckpointOffset(ctx, 7)
					if res.err == nil {
						res.err = cp.CheckpointOffset(ctx, 12)
					}
				}
				results <- res

				return nil
			},
		}), WithCheckpointMode(CheckpointManual), WithMaxFetchCount(5))

		require.NoError(t, r.StartPartition(ctx, 0, 1))

		res := receive(t, results)
		require.NoError(t, res.err)
		require.Equal(t, topictypes.Offset(0), res.batch.FirstOffset())

		res = receive(t, results)
		require.Equal(t, topictypes.Offset(5), res.batch.FirstOffset())
		require.ErrorIs(t, res.err, ErrCheckpointAhead)

		requireStored(t, store, 0, 8)
	})

	t.Run("CheckpointOnShutdown", func(t *testing.T) {
		tr := newTestTransport(t, 1, 3)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())

		var shutdowns atomic.Int32
		batches := make(chan Batch, 10)
		p := sendBatches(batches)
		p.onShutdown = func(ctx context.Context, cp Checkpointer) {
			shutdowns.Add(1)
			require.NoError(t, cp.Checkpoint(ctx))
		}
		r, clock := newTestReader(t, tr, store, singleProcessor(p), WithCheckpointMode(CheckpointManual))

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		receive(t, batches)
		clock.BlockUntil(1)

		_, ok, err := store.Get(ctx, testTopic, 0)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, r.StopPartition(ctx, 0))
		require.Empty(t, r.Partitions())
		require.NoError(t, r.StopPartition(ctx, 0))

		require.Equal(t, int32(1), shutdowns.Load())
		cp, ok, err := store.Get(ctx, testTopic, 0)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, topictypes.Offset(3), cp.Offset)
	})

	t.Run("Monotonic", func(t *testing.T) {
		tr := newTestTransport(t, 1, 10)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())

		done := make(chan []topictypes.Offset, 1)
		r, _ := newTestReader(t, tr, store, singleProcessor(&testProcessor{
			onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
				var seen []topictypes.Offset
				for _, offset := range []topictypes.Offset{5, 2, 8, 3} {
					if err := cp.CheckpointOffset(ctx, offset); err != nil {
						return err
					}
					stored, _, err := store.Get(ctx, testTopic, 0)
					if err != nil {
						return err
					}
					seen = append(seen, stored.Offset)
				}
				done <- seen

				return nil
			},
		}), WithCheckpointMode(CheckpointManual))

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		require.Equal(t, []topictypes.Offset{6, 6, 9, 9}, receive(t, done))
	})
}

func TestReaderStaleGeneration(t *testing.T) {
	ctx := context.Background()

	tr := newTestTransport(t, 1, 5)
	store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())

	held := make(chan Checkpointer, 1)
	var (
		shutdownsMtx sync.Mutex
		shutdowns    []error
	)
	zombieProcessor := &testProcessor{
		onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
			select {
			case held <- cp:
			default:
			}

			return nil
		},
		onShutdown: func(ctx context.Context, cp Checkpointer) {
			shutdownsMtx.Lock()
			defer shutdownsMtx.Unlock()
			shutdowns = append(shutdowns, cp.Checkpoint(ctx))
		},
	}
	stale := make(chan error, 1)
	zombie, _ := newTestReader(t, tr, store, singleProcessor(zombieProcessor),
		WithCheckpointMode(CheckpointManual),
		WithOnStale(func(partition topictypes.PartitionID, err error) {
			require.Equal(t, topictypes.PartitionID(0), partition)
			stale <- err
		}),
	)
	require.NoError(t, zombie.StartPartition(ctx, 0, 1))
	delayed := receive(t, held)

	// partition moves to the next generation which commits first
	batches := make(chan Batch, 10)
	owner, _ := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)))
	require.NoError(t, owner.StartPartition(ctx, 0, 2))
	require.Equal(t, []topictypes.Offset{0, 1, 2, 3, 4}, offsets(receive(t, batches)))
	requireStored(t, store, 0, 5)

	err := delayed.Checkpoint(ctx)
	require.ErrorIs(t, err, checkpoint.ErrStaleGeneration)
	require.ErrorIs(t, receive(t, stale), checkpoint.ErrStaleGeneration)

	require.Eventually(t, func() bool {
		return len(zombie.Partitions()) == 0
	}, waitTimeout, time.Millisecond)
	require.Eventually(t, func() bool {
		shutdownsMtx.Lock()
		defer shutdownsMtx.Unlock()

		return len(shutdowns) == 1
	}, waitTimeout, time.Millisecond)
	require.ErrorIs(t, shutdowns[0], checkpoint.ErrStaleGeneration)

	require.ErrorIs(t, delayed.Checkpoint(ctx), checkpoint.ErrStaleGeneration)
	cp, _, err := store.Get(ctx, testTopic, 0)
	require.NoError(t, err)
	require.Equal(t, topictypes.Offset(5), cp.Offset)
	require.Equal(t, []topictypes.PartitionID{0}, owner.Partitions())
}

func TestReaderLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("StartTwice", func(t *testing.T) {
		tr := newTestTransport(t, 1, 0)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		r, _ := newTestReader(t, tr, store, singleProcessor(&testProcessor{}))

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		require.ErrorIs(t, r.StartPartition(ctx, 0, 2), ErrPartitionReadStarted)
	})

	t.Run("RestartAfterStop", func(t *testing.T) {
		tr := newTestTransport(t, 1, 3)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
		batches := make(chan Batch, 10)
		r, clock := newTestReader(t, tr, store, singleProcessor(sendBatches(batches)))

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		receive(t, batches)
		requireStored(t, store, 0, 3)
		clock.BlockUntil(1)
		require.NoError(t, r.StopPartition(ctx, 0))

		putMessages(t, tr, 0, 2)
		require.NoError(t, r.StartPartition(ctx, 0, 2))
		require.Equal(t, []topictypes.Offset{3, 4}, offsets(receive(t, batches)))
	})

	t.Run("Close", func(t *testing.T) {
		tr := newTestTransport(t, 3, 1)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())

		var shutdowns atomic.Int32
		r, _ := newTestReader(t, tr, store, MessageProcessorFactoryFunc(
			func(topic string, partition topictypes.PartitionID) MessageProcessor {
				return &testProcessor{
					onShutdown: func(ctx context.Context, cp Checkpointer) {
						shutdowns.Add(1)
					},
				}
			},
		))

		for p := topictypes.PartitionID(0); p < 3; p++ {
			require.NoError(t, r.StartPartition(ctx, p, 1))
		}

		require.NoError(t, r.Close(ctx))
		require.NoError(t, r.Close(ctx))
		require.Equal(t, int32(3), shutdowns.Load())
		require.Empty(t, r.Partitions())
		require.ErrorIs(t, r.StartPartition(ctx, 0, 2), ErrReaderClosed)
	})

	t.Run("StopTimeout", func(t *testing.T) {
		tr := newTestTransport(t, 1, 1)
		store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())

		started := make(chan struct{})
		release := make(chan struct{})
		shutdowns := make(chan error, 2)
		r, _ := newTestReader(t, tr, store, singleProcessor(&testProcessor{
			onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
				close(started)
				<-release

				return nil
			},
			onShutdown: func(ctx context.Context, cp Checkpointer) {
				shutdowns <- cp.Checkpoint(ctx)
			},
		}), WithCheckpointMode(CheckpointManual))

		require.NoError(t, r.StartPartition(ctx, 0, 1))
		<-started

		stopCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		require.ErrorIs(t, r.StopPartition(stopCtx, 0), context.DeadlineExceeded)
		require.Empty(t, r.Partitions())
		require.Empty(t, shutdowns)

		// the processor finishes its batch after the stop gave up waiting
		close(release)
		require.NoError(t, receive(t, shutdowns))
		requireStored(t, store, 0, 1)
		require.Empty(t, shutdowns)
	})
}
