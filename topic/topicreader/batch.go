package topicreader

import (
	"errors"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

var errBadBatchOffsets = errors.New("partlog: fetched messages are not ordered by offset")

// Batch is a part of a partition read by one fetch.
type Batch struct {
	Topic     string
	Partition topictypes.PartitionID
	Messages  []topictypes.Message
}

func newBatch(topic string, partition topictypes.PartitionID, from topictypes.Offset, messages []topictypes.Message) (Batch, error) {
	prev := from - 1
	for i := range messages {
		if messages[i].Offset <= prev {
			return Batch{}, xerrors.WithStackTrace(errBadBatchOffsets)
		}
		prev = messages[i].Offset
	}

	return Batch{
		Topic:     topic,
		Partition: partition,
		Messages:  messages,
	}, nil
}

func (b Batch) IsEmpty() bool {
	return len(b.Messages) == 0
}

func (b Batch) FirstOffset() topictypes.Offset {
	if b.IsEmpty() {
		return topictypes.OffsetUnset
	}

	return b.Messages[0].Offset
}

func (b Batch) LastOffset() topictypes.Offset {
	if b.IsEmpty() {
		return topictypes.OffsetUnset
	}

	return b.Messages[len(b.Messages)-1].Offset
}

// Range returns offsets of the batch, End is the offset after the last message.
func (b Batch) Range() topictypes.OffsetRange {
	if b.IsEmpty() {
		return topictypes.OffsetRange{Start: topictypes.OffsetUnset, End: topictypes.OffsetUnset}
	}

	return topictypes.OffsetRange{Start: b.FirstOffset(), End: b.LastOffset() + 1}
}

func (b Batch) Bytes() int {
	n := 0
	for _, mess := range b.Messages {
		n += mess.Size()
	}

	return n
}
