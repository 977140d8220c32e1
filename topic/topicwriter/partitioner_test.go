package topicwriter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

func TestKeyHashPartitioner(t *testing.T) {
	partitions := []topictypes.PartitionID{0, 1, 2, 3}

	t.Run("SameKeySamePartition", func(t *testing.T) {
		p := NewKeyHashPartitioner()
		first := p.Partition(&Message{Key: []byte("user-1")}, partitions)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, p.Partition(&Message{Key: []byte("user-1")}, partitions))
		}
		require.Contains(t, partitions, first)
	})

	t.Run("MessageGroupOverridesKey", func(t *testing.T) {
		p := NewKeyHashPartitioner()
		expected := p.Partition(&Message{Key: []byte("group")}, partitions)
		actual := p.Partition(&Message{
			Key:          []byte("other"),
			Partitioning: NewPartitioningWithMessageGroupID("group"),
		}, partitions)
		require.Equal(t, expected, actual)
	})

	t.Run("RoundRobinWithoutKey", func(t *testing.T) {
		p := NewKeyHashPartitioner()
		var got []topictypes.PartitionID
		for i := 0; i < 8; i++ {
			got = append(got, p.Partition(&Message{}, partitions))
		}
		require.Equal(t, []topictypes.PartitionID{0, 1, 2, 3, 0, 1, 2, 3}, got)
	})
}
