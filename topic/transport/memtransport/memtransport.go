// Package memtransport keeps topics in process memory.
// It is meant for tests and examples, nothing is persisted.
package memtransport

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/internal/xsync"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

type (
	PutHook func(ctx context.Context, topic string, partition topictypes.PartitionID, messages []topictypes.Message) error
	GetHook func(ctx context.Context, topic string, partition topictypes.PartitionID, from topictypes.Offset) error
)

type Transport struct {
	clock clockwork.Clock

	m       xsync.Mutex
	topics  map[string][]*partitionLog
	putHook PutHook
	getHook GetHook
}

type partitionLog struct {
	start    topictypes.Offset
	messages []topictypes.Message
}

func (l *partitionLog) end() topictypes.Offset {
	return l.start + topictypes.Offset(len(l.messages))
}

var _ transport.Transport = (*Transport)(nil)

func New(clock clockwork.Clock) *Transport {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Transport{
		clock:  clock,
		topics: make(map[string][]*partitionLog),
	}
}

// CreateTopic creates topic or grows it up to partitions.
func (t *Transport) CreateTopic(topic string, partitions int) {
	t.m.WithLock(func() {
		for len(t.topics[topic]) < partitions {
			t.topics[topic] = append(t.topics[topic], &partitionLog{})
		}
	})
}

func (t *Transport) DeleteTopic(topic string) {
	t.m.WithLock(func() {
		delete(t.topics, topic)
	})
}

// TruncateBefore drops messages below offset as retention would.
func (t *Transport) TruncateBefore(topic string, partition topictypes.PartitionID, offset topictypes.Offset) {
	t.m.WithLock(func() {
		l, err := t.partitionLocked("TruncateBefore", topic, partition)
		if err != nil || offset <= l.start {
			return
		}
		if offset > l.end() {
			offset = l.end()
		}
		l.messages = append([]topictypes.Message(nil), l.messages[offset-l.start:]...)
		l.start = offset
	})
}

// SetPutHook installs fault injection called before every put, non nil error is returned to caller.
func (t *Transport) SetPutHook(hook PutHook) {
	t.m.WithLock(func() {
		t.putHook = hook
	})
}

func (t *Transport) SetGetHook(hook GetHook) {
	t.m.WithLock(func() {
		t.getHook = hook
	})
}

// Messages returns a copy of the partition content.
func (t *Transport) Messages(topic string, partition topictypes.PartitionID) []topictypes.Message {
	var res []topictypes.Message
	t.m.WithLock(func() {
		l, err := t.partitionLocked("Messages", topic, partition)
		if err != nil {
			return
		}
		res = append(res, l.messages...)
	})

	return res
}

func (t *Transport) PutMessages(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	messages []topictypes.Message,
) (topictypes.Ack, error) {
	t.m.Lock()
	hook := t.putHook
	t.m.Unlock()

	if hook != nil {
		if err := hook(ctx, topic, partition, messages); err != nil {
			return topictypes.Ack{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return topictypes.Ack{}, transport.NewError("PutMessages", transport.CodeFromContext(err), err)
	}

	t.m.Lock()
	defer t.m.Unlock()

	l, err := t.partitionLocked("PutMessages", topic, partition)
	if err != nil {
		return topictypes.Ack{}, err
	}

	ack := topictypes.Ack{
		Partition:   partition,
		FirstOffset: l.end(),
		Count:       len(messages),
	}
	now := t.clock.Now()
	for i := range messages {
		mess := messages[i]
		mess.Offset = ack.FirstOffset + topictypes.Offset(i)
		if mess.CreatedAt.IsZero() {
			mess.CreatedAt = now
		}
		l.messages = append(l.messages, mess)
	}

	return ack, nil
}

func (t *Transport) GetMessages(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	from topictypes.Offset,
	maxCount int,
	maxBytes int,
) ([]topictypes.Message, error) {
	t.m.Lock()
	hook := t.getHook
	t.m.Unlock()

	if hook != nil {
		if err := hook(ctx, topic, partition, from); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, transport.NewError("GetMessages", transport.CodeFromContext(err), err)
	}

	t.m.Lock()
	defer t.m.Unlock()

	l, err := t.partitionLocked("GetMessages", topic, partition)
	if err != nil {
		return nil, err
	}

	if from < l.start {
		from = l.start
	}

	var (
		res   []topictypes.Message
		bytes int
	)
	for i := from - l.start; i < topictypes.Offset(len(l.messages)); i++ {
		mess := l.messages[i]
		if maxCount > 0 && len(res) >= maxCount {
			break
		}
		if maxBytes > 0 && len(res) > 0 && bytes+mess.Size() > maxBytes {
			break
		}
		bytes += mess.Size()
		res = append(res, mess)
	}

	return res, nil
}

func (t *Transport) DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error) {
	t.m.Lock()
	defer t.m.Unlock()

	partitions, ok := t.topics[topic]
	if !ok {
		return nil, notFound("DescribePartitions", topic)
	}

	res := make([]topictypes.PartitionID, len(partitions))
	for i := range partitions {
		res[i] = topictypes.PartitionID(i)
	}

	return res, nil
}

func (t *Transport) GetOffsetRange(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
) (topictypes.OffsetRange, error) {
	t.m.Lock()
	defer t.m.Unlock()

	l, err := t.partitionLocked("GetOffsetRange", topic, partition)
	if err != nil {
		return topictypes.OffsetRange{}, err
	}

	return topictypes.OffsetRange{Start: l.start, End: l.end()}, nil
}

func (t *Transport) partitionLocked(op, topic string, partition topictypes.PartitionID) (*partitionLog, error) {
	partitions, ok := t.topics[topic]
	if !ok {
		return nil, notFound(op, topic)
	}
	if partition < 0 || int(partition) >= len(partitions) {
		return nil, xerrors.WithStackTrace(transport.NewError(op, transport.CodeInvalidArgument,
			fmt.Errorf("partition %v out of range [0,%d)", partition, len(partitions)),
		))
	}

	return partitions[partition], nil
}

func notFound(op, topic string) error {
	return xerrors.WithStackTrace(transport.NewError(op, transport.CodeNotFound,
		fmt.Errorf("topic %q does not exist", topic),
	))
}
