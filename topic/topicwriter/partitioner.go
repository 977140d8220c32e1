package topicwriter

import (
	"sync/atomic"

	"github.com/segmentio/kafka-go"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

// Partitioner chooses a partition for a message without explicit partition id.
// partitions is never empty and sorted ascending.
type Partitioner interface {
	Partition(mess *Message, partitions []topictypes.PartitionID) topictypes.PartitionID
}

// NewKeyHashPartitioner returns a partitioner which hashes message group id or key
// with murmur2 as Kafka clients do, messages without key go round robin.
func NewKeyHashPartitioner() Partitioner {
	return &keyHashPartitioner{
		balancer: kafka.Murmur2Balancer{Consistent: true},
	}
}

type keyHashPartitioner struct {
	balancer kafka.Murmur2Balancer
	next     atomic.Uint64
}

func (p *keyHashPartitioner) Partition(mess *Message, partitions []topictypes.PartitionID) topictypes.PartitionID {
	key := mess.Key
	if id := mess.Partitioning.MessageGroupID(); id != "" {
		key = []byte(id)
	}

	if len(key) == 0 {
		n := p.next.Add(1) - 1

		return partitions[n%uint64(len(partitions))]
	}

	ids := make([]int, len(partitions))
	for i, id := range partitions {
		ids[i] = int(id)
	}

	return topictypes.PartitionID(p.balancer.Balance(kafka.Message{Key: key}, ids...))
}
