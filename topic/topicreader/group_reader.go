package topicreader

import (
	"context"
	"errors"

	"github.com/partlog/partlog-go-sdk/topic/checkpoint"
	"github.com/partlog/partlog-go-sdk/topic/coordinator"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

// GroupReader is a Reader driven by a consumer group coordinator:
// it reads exactly the partitions assigned to the member.
type GroupReader struct {
	reader      *Reader
	coordinator *coordinator.Coordinator
}

// StartGroupReader joins group and starts reading the assigned partitions of topic.
// Checkpoints of store must be scoped by group.
func StartGroupReader(
	ctx context.Context,
	tr transport.Transport,
	store checkpoint.Store,
	registry coordinator.Registry,
	group, topic string,
	factory MessageProcessorFactory,
	readerOpts []ReaderOption,
	coordinatorOpts []coordinator.Option,
) (*GroupReader, error) {
	r := NewReader(tr, store, topic, factory, readerOpts...)
	c := coordinator.New(registry, tr, r, group, topic, coordinatorOpts...)

	if err := c.Start(ctx); err != nil {
		return nil, errors.Join(err, r.Close(ctx))
	}

	return &GroupReader{reader: r, coordinator: c}, nil
}

func (g *GroupReader) Reader() *Reader {
	return g.reader
}

func (g *GroupReader) Coordinator() *coordinator.Coordinator {
	return g.coordinator
}

func (g *GroupReader) Partitions() []topictypes.PartitionID {
	return g.reader.Partitions()
}

// Close leaves the group, which gives every processor a chance to checkpoint, then closes the reader.
func (g *GroupReader) Close(ctx context.Context) error {
	return errors.Join(g.coordinator.Stop(ctx), g.reader.Close(ctx))
}
