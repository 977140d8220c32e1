package coordinator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

func partitionRange(n int) []topictypes.PartitionID {
	res := make([]topictypes.PartitionID, n)
	for i := range res {
		res[i] = topictypes.PartitionID(i)
	}

	return res
}

func TestAssign(t *testing.T) {
	t.Run("Ranges", func(t *testing.T) {
		a := Assign(7, []string{"c", "a", "b"}, partitionRange(8))

		require.Equal(t, int64(7), a.Generation)
		require.Equal(t, []topictypes.PartitionID{0, 1, 2}, a.For("a"))
		require.Equal(t, []topictypes.PartitionID{3, 4, 5}, a.For("b"))
		require.Equal(t, []topictypes.PartitionID{6, 7}, a.For("c"))
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := Assign(1, []string{"b", "a", "c"}, []topictypes.PartitionID{3, 1, 0, 2, 4})
		second := Assign(1, []string{"c", "b", "a", "a"}, []topictypes.PartitionID{4, 2, 1, 1, 0, 3})

		require.Equal(t, first, second)
	})

	t.Run("MoreMembersThanPartitions", func(t *testing.T) {
		a := Assign(1, []string{"a", "b", "c"}, partitionRange(2))

		require.Equal(t, []topictypes.PartitionID{0}, a.For("a"))
		require.Equal(t, []topictypes.PartitionID{1}, a.For("b"))
		require.Empty(t, a.For("c"))
		require.Contains(t, a.Members, "c")
	})

	t.Run("NoMembers", func(t *testing.T) {
		a := Assign(1, nil, partitionRange(3))

		require.Empty(t, a.Members)
		require.Nil(t, a.For("a"))
	})

	t.Run("EveryPartitionOnce", func(t *testing.T) {
		for members := 1; members <= 5; members++ {
			for partitions := 0; partitions <= 12; partitions++ {
				t.Run(fmt.Sprintf("%dx%d", members, partitions), func(t *testing.T) {
					ids := make([]string, members)
					for i := range ids {
						ids[i] = fmt.Sprintf("member-%d", i)
					}

					a := Assign(1, ids, partitionRange(partitions))

					seen := make(map[topictypes.PartitionID]int)
					minCount, maxCount := partitions, 0
					for _, id := range ids {
						owned := a.For(id)
						for _, p := range owned {
							seen[p]++
						}
						minCount = min(minCount, len(owned))
						maxCount = max(maxCount, len(owned))
					}

					require.Len(t, seen, partitions)
					for _, n := range seen {
						require.Equal(t, 1, n)
					}
					require.LessOrEqual(t, maxCount-minCount, 1)
				})
			}
		}
	})
}

func TestMemberStateString(t *testing.T) {
	require.Equal(t, "Joining", MemberStateJoining.String())
	require.Equal(t, "Assigned", MemberStateAssigned.String())
	require.Equal(t, "Rebalancing", MemberStateRebalancing.String())
	require.Equal(t, "Left", MemberStateLeft.String())
	require.Equal(t, unspecifiedLabel, MemberStateUnspecified.String())
	require.Equal(t, unknownLabel, MemberState(42).String())
}
