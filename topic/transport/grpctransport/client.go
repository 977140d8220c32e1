package grpctransport

import (
	"context"
	"math"

	"google.golang.org/grpc"

	partlogv1 "github.com/partlog/partlog-go-sdk/api/partlog/v1"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

var _ transport.Transport = &Client{}

// Client is transport.Transport over a grpc connection to a partlog broker.
type Client struct {
	service partlogv1.LogClient
	opts    []grpc.CallOption
}

func New(cc grpc.ClientConnInterface, opts ...grpc.CallOption) *Client {
	return &Client{
		service: partlogv1.NewLogClient(cc),
		opts:    opts,
	}
}

func (c *Client) PutMessages(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	messages []topictypes.Message,
) (topictypes.Ack, error) {
	resp, err := c.service.PutMessages(ctx, &partlogv1.PutMessagesRequest{
		Topic:     topic,
		Partition: int32(partition),
		Messages:  fromMessages(messages),
	}, c.opts...)
	if err != nil {
		return topictypes.Ack{}, fromStatus("PutMessages", err)
	}

	return topictypes.Ack{
		Partition:   topictypes.PartitionID(resp.GetPartition()),
		FirstOffset: topictypes.Offset(resp.GetFirstOffset()),
		Count:       int(resp.GetCount()),
	}, nil
}

func (c *Client) GetMessages(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	from topictypes.Offset,
	maxCount int,
	maxBytes int,
) ([]topictypes.Message, error) {
	resp, err := c.service.GetMessages(ctx, &partlogv1.GetMessagesRequest{
		Topic:     topic,
		Partition: int32(partition),
		From:      int64(from),
		MaxCount:  clampInt32(maxCount),
		MaxBytes:  clampInt32(maxBytes),
	}, c.opts...)
	if err != nil {
		return nil, fromStatus("GetMessages", err)
	}
	if len(resp.GetMessages()) == 0 {
		return nil, nil
	}

	return toMessages(resp.GetMessages()), nil
}

func (c *Client) DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error) {
	resp, err := c.service.DescribePartitions(ctx, &partlogv1.DescribePartitionsRequest{Topic: topic}, c.opts...)
	if err != nil {
		return nil, fromStatus("DescribePartitions", err)
	}

	return toPartitions(resp.GetPartitions()), nil
}

func (c *Client) GetOffsetRange(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
) (topictypes.OffsetRange, error) {
	resp, err := c.service.GetOffsetRange(ctx, &partlogv1.GetOffsetRangeRequest{
		Topic:     topic,
		Partition: int32(partition),
	}, c.opts...)
	if err != nil {
		return topictypes.OffsetRange{}, fromStatus("GetOffsetRange", err)
	}

	return topictypes.OffsetRange{
		Start: topictypes.Offset(resp.GetStart()),
		End:   topictypes.Offset(resp.GetEnd()),
	}, nil
}

func clampInt32(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}

	return int32(n)
}
