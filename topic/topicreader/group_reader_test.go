package topicreader

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/retry"
	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

const testGroup = "test-group"

func startTestGroupReader(
	t *testing.T,
	tr transport.Transport,
	store checkpoint.Store,
	registry coordinator.Registry,
	memberID string,
	factory MessageProcessorFactory,
) (*GroupReader, *clockwork.FakeClock) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	clock := clockwork.NewFakeClock()
	g, err := StartGroupReader(context.Background(), tr, store, registry, testGroup, testTopic, factory,
		[]ReaderOption{
			WithClock(clockwork.NewFakeClock()),
			WithLogger(logger),
			WithRetryPolicy(retry.Policy{MaxAttempts: 1}),
			WithEmptyFetchBackoff(emptyFetchBackoff),
		},
		[]coordinator.Option{
			coordinator.WithClock(clock),
			coordinator.WithLogger(logger),
			coordinator.WithMemberID(memberID),
			coordinator.WithHeartbeatInterval(time.Second),
			coordinator.WithRetryPolicy(retry.Policy{MaxAttempts: 1}),
		},
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
		defer cancel()
		_ = g.Close(ctx)
	})

	return g, clock
}

func heartbeat(clock *clockwork.FakeClock) {
	clock.BlockUntil(1)
	clock.Advance(time.Second)
}

func TestGroupReaderTakesOverPartition(t *testing.T) {
	tr := newTestTransport(t, 1, 5)
	store := checkpoint.NewMemoryStore(clockwork.NewFakeClock())
	registry := coordinator.NewMemoryRegistry(clockwork.NewFakeClock(), time.Minute)

	// previous owner commits its first batch when released and never finishes the next one
	releasePrevious := make(chan struct{})
	var previousBatches atomic.Int32
	previous, previousClock := startTestGroupReader(t, tr, store, registry, "b", singleProcessor(&testProcessor{
		onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
			if previousBatches.Add(1) == 1 {
				<-releasePrevious

				return nil
			}
			<-ctx.Done()

			return ctx.Err()
		},
	}))
	require.Equal(t, []topictypes.PartitionID{0}, previous.Partitions())

	// the joined member gets the partition while the previous owner still reads it
	releaseFirst := make(chan struct{})
	batches := make(chan Batch, 10)
	var (
		startsMtx sync.Mutex
		starts    []topictypes.Offset
		created   atomic.Int32
	)
	joined, joinedClock := startTestGroupReader(t, tr, store, registry, "a",
		MessageProcessorFactoryFunc(func(string, topictypes.PartitionID) MessageProcessor {
			first := created.Add(1) == 1

			return &testProcessor{
				onInit: func(ctx context.Context, partition topictypes.PartitionID, start topictypes.Offset) error {
					startsMtx.Lock()
					defer startsMtx.Unlock()
					starts = append(starts, start)

					return nil
				},
				onProcess: func(ctx context.Context, batch Batch, cp Checkpointer) error {
					if first {
						<-releaseFirst

						return nil
					}
					batches <- batch

					return nil
				},
			}
		}),
	)
	require.Equal(t, []topictypes.PartitionID{0}, joined.Partitions())
	require.Equal(t, []topictypes.PartitionID{0}, joined.Coordinator().Assignment().For("a"))

	// previous owner commits first, so the checkpoint of the joined member fails
	close(releasePrevious)
	requireStored(t, store, 0, 5)
	close(releaseFirst)
	require.Eventually(t, func() bool {
		return len(joined.Partitions()) == 0
	}, waitTimeout, time.Millisecond)

	putMessages(t, tr, 0, 3)

	heartbeat(previousClock)
	require.Eventually(t, func() bool {
		return len(previous.Partitions()) == 0
	}, waitTimeout, time.Millisecond)

	heartbeat(joinedClock)
	require.Equal(t, []topictypes.Offset{5, 6, 7}, offsets(receive(t, batches)))
	require.Equal(t, []topictypes.PartitionID{0}, joined.Partitions())
	require.Equal(t, []topictypes.PartitionID{0}, joined.Coordinator().Assignment().For("a"))
	requireStored(t, store, 0, 8)

	startsMtx.Lock()
	defer startsMtx.Unlock()
	require.Equal(t, []topictypes.Offset{0, 5}, starts)
}
