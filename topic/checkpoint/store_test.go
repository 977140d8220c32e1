package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/internal/testutil"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

func TestMemoryStore(t *testing.T) {
	testStore(t, func(t *testing.T, clock clockwork.Clock) Store {
		return NewMemoryStore(clock)
	})

	t.Run("Reset", func(t *testing.T) {
		ctx := context.Background()
		s := NewMemoryStore(clockwork.NewFakeClock())
		s.Reset("t", 1, 100)

		cp, ok, err := s.Get(ctx, "t", 1)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, topictypes.Offset(100), cp.Offset)
	})
}

func TestEtcdStore(t *testing.T) {
	client := testutil.NewEtcdClient(t)
	group := 0

	testStore(t, func(t *testing.T, clock clockwork.Clock) Store {
		group++

		return NewEtcdStore(client, EtcdStoreConfig{
			Group: "group-" + topictypes.PartitionID(group).String(),
			Clock: clock,
		})
	})
}

func testStore(t *testing.T, newStore func(t *testing.T, clock clockwork.Clock) Store) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t, clockwork.NewFakeClock())

		_, ok, err := s.Get(ctx, "t", 0)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("CreateAndAdvance", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.UnixMilli(1_000_000))
		s := newStore(t, clock)

		swapped, err := s.CompareAndSet(ctx, "t", 0, topictypes.OffsetUnset, 10)
		require.NoError(t, err)
		require.True(t, swapped)

		cp, ok, err := s.Get(ctx, "t", 0)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, topictypes.Offset(10), cp.Offset)
		require.Equal(t, topictypes.PartitionID(0), cp.Partition)
		require.True(t, clock.Now().Equal(cp.CommittedAt))

		swapped, err = s.CompareAndSet(ctx, "t", 0, 10, 20)
		require.NoError(t, err)
		require.True(t, swapped)

		// create over existing checkpoint fails
		swapped, err = s.CompareAndSet(ctx, "t", 0, topictypes.OffsetUnset, 5)
		require.NoError(t, err)
		require.False(t, swapped)

		cp, _, err = s.Get(ctx, "t", 0)
		require.NoError(t, err)
		require.Equal(t, topictypes.Offset(20), cp.Offset)
	})

	t.Run("ZombieCompareAndSetFails", func(t *testing.T) {
		s := newStore(t, clockwork.NewFakeClock())

		swapped, err := s.CompareAndSet(ctx, "t", 3, topictypes.OffsetUnset, 10)
		require.NoError(t, err)
		require.True(t, swapped)

		// both owners saw 10, the new one commits first
		swapped, err = s.CompareAndSet(ctx, "t", 3, 10, 20)
		require.NoError(t, err)
		require.True(t, swapped)

		swapped, err = s.CompareAndSet(ctx, "t", 3, 10, 15)
		require.NoError(t, err)
		require.False(t, swapped)

		cp, _, err := s.Get(ctx, "t", 3)
		require.NoError(t, err)
		require.Equal(t, topictypes.Offset(20), cp.Offset)
	})

	t.Run("FailedCreateLeavesNothing", func(t *testing.T) {
		s := newStore(t, clockwork.NewFakeClock())

		swapped, err := s.CompareAndSet(ctx, "t", 4, 7, 8)
		require.NoError(t, err)
		require.False(t, swapped)

		_, ok, err := s.Get(ctx, "t", 4)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("PartitionsAreIndependent", func(t *testing.T) {
		s := newStore(t, clockwork.NewFakeClock())

		swapped, err := s.CompareAndSet(ctx, "t", 1, topictypes.OffsetUnset, 1)
		require.NoError(t, err)
		require.True(t, swapped)

		swapped, err = s.CompareAndSet(ctx, "other", 1, topictypes.OffsetUnset, 2)
		require.NoError(t, err)
		require.True(t, swapped)

		_, ok, err := s.Get(ctx, "t", 2)
		require.NoError(t, err)
		require.False(t, ok)
	})
}
