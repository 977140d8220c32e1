package topicreader

import (
	"context"
	"fmt"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

// MessageProcessor handles messages of one partition. Methods of one processor
// are never called concurrently.
//
// Delivery is at least once: a batch is redelivered after Process failed
// or after the partition moved to another reader before its checkpoint,
// so processing must tolerate duplicates.
type MessageProcessor interface {
	// Init is called before the first fetch with the offset reading starts from.
	Init(ctx context.Context, partition topictypes.PartitionID, startOffset topictypes.Offset) error

	// Process handles a batch. On error the checkpoint is not moved
	// and the same batch is delivered again.
	Process(ctx context.Context, batch Batch, checkpointer Checkpointer) error

	// Shutdown is called once when the partition is stopped. The checkpointer
	// covers messages already processed successfully.
	Shutdown(ctx context.Context, checkpointer Checkpointer)
}

// MessageProcessorFactory creates a processor for every started partition.
type MessageProcessorFactory interface {
	CreateProcessor(topic string, partition topictypes.PartitionID) MessageProcessor
}

type MessageProcessorFactoryFunc func(topic string, partition topictypes.PartitionID) MessageProcessor

func (f MessageProcessorFactoryFunc) CreateProcessor(topic string, partition topictypes.PartitionID) MessageProcessor {
	return f(topic, partition)
}

// Checkpointer moves the partition checkpoint. Calls are serialized per partition
// and never move the checkpoint backwards.
// Both methods return an error wrapping checkpoint.ErrStaleGeneration
// if the partition belongs to another reader now.
type Checkpointer interface {
	// Checkpoint commits all messages of the batch.
	Checkpoint(ctx context.Context) error

	// CheckpointOffset commits messages up to offset inclusive.
	CheckpointOffset(ctx context.Context, offset topictypes.Offset) error
}

// ProcessingError is an error returned by MessageProcessor.Process.
type ProcessingError struct {
	Topic     string
	Partition topictypes.PartitionID
	Offsets   topictypes.OffsetRange
	Err       error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("partlog: process %s/%v messages [%d, %d): %v",
		e.Topic, e.Partition, e.Offsets.Start, e.Offsets.End, e.Err,
	)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
