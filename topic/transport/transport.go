//go:generate mockgen -source transport.go -destination ../topicwriter/transport_mock_test.go -package topicwriter

package transport

import (
	"context"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

// Transport is the contract of the wire client used by the writer, the reader and the coordinator.
// Implementations must be safe for concurrent use.
type Transport interface {
	PutMessages(
		ctx context.Context,
		topic string,
		partition topictypes.PartitionID,
		messages []topictypes.Message,
	) (topictypes.Ack, error)

	// GetMessages returns up to maxCount messages starting at from, their total
	// size should not exceed maxBytes except for the first message.
	// Empty result means no new messages.
	GetMessages(
		ctx context.Context,
		topic string,
		partition topictypes.PartitionID,
		from topictypes.Offset,
		maxCount int,
		maxBytes int,
	) ([]topictypes.Message, error)

	DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error)

	GetOffsetRange(ctx context.Context, topic string, partition topictypes.PartitionID) (topictypes.OffsetRange, error)
}
