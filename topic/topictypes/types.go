package topictypes

import (
	"strconv"
	"time"
)

type PartitionID int32

func (p PartitionID) String() string {
	return strconv.FormatInt(int64(p), 10)
}

// Offset is a position of a message inside a partition.
type Offset int64

// OffsetUnset means no offset, for example no checkpoint was stored yet.
const OffsetUnset Offset = -1

// Message is a record as it travels over a transport.
// Offset is filled by the broker and meaningful only on read.
type Message struct {
	Key       []byte
	Data      []byte
	CreatedAt time.Time
	Offset    Offset
}

// Size is the number of payload bytes used for buffering limits.
func (m Message) Size() int {
	return len(m.Key) + len(m.Data)
}

// Ack is the broker answer to a put request.
// Messages of the request got offsets FirstOffset, FirstOffset+1, ...
type Ack struct {
	Partition   PartitionID
	FirstOffset Offset
	Count       int
}

// OffsetRange is [Start, End) of offsets currently kept by a partition.
// End is the offset the next appended message will get.
type OffsetRange struct {
	Start Offset
	End   Offset
}
