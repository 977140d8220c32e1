package topicwriter

import (
	"bytes"
	"io"
	"time"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

type Message struct {
	Key       []byte
	CreatedAt time.Time
	Data      io.Reader

	Partitioning Partitioning
}

// Partitioning overrides partition choice by message key.
type Partitioning struct {
	messageGroupID string
	partitionID    topictypes.PartitionID
	hasPartitionID bool
}

// NewPartitioningWithMessageGroupID routes all messages of the group to one partition.
func NewPartitioningWithMessageGroupID(id string) Partitioning {
	return Partitioning{
		messageGroupID: id,
	}
}

func NewPartitioningWithPartitionID(id topictypes.PartitionID) Partitioning {
	return Partitioning{
		partitionID:    id,
		hasPartitionID: true,
	}
}

func (p Partitioning) PartitionID() (topictypes.PartitionID, bool) {
	return p.partitionID, p.hasPartitionID
}

func (p Partitioning) MessageGroupID() string {
	return p.messageGroupID
}

// userMessage is a message accepted by a queue and waiting for its ack.
type userMessage struct {
	topictypes.Message

	partition  topictypes.PartitionID
	enqueuedAt time.Time
	size       int
	future     *SendFuture
}

func newUserMessage(mess Message, partition topictypes.PartitionID, now time.Time) (*userMessage, error) {
	var data []byte
	if mess.Data != nil {
		buf := &bytes.Buffer{}
		if _, err := buf.ReadFrom(mess.Data); err != nil {
			return nil, xerrors.WithStackTrace(err)
		}
		data = buf.Bytes()
	}

	createdAt := mess.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	res := &userMessage{
		Message: topictypes.Message{
			Key:       mess.Key,
			Data:      data,
			CreatedAt: createdAt,
			Offset:    topictypes.OffsetUnset,
		},
		partition:  partition,
		enqueuedAt: now,
		future:     newSendFuture(),
	}
	res.size = res.Message.Size()

	return res, nil
}
