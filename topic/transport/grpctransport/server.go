package grpctransport

import (
	"context"

	"google.golang.org/grpc"

	partlogv1 "github.com/partlog/partlog-go-sdk/api/partlog/v1"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

// RegisterServer exposes tr as the partlog.v1.Log service. Clients created by New can talk to it.
func RegisterServer(s grpc.ServiceRegistrar, tr transport.Transport) {
	partlogv1.RegisterLogServer(s, &server{tr: tr})
}

type server struct {
	partlogv1.UnimplementedLogServer

	tr transport.Transport
}

func (s *server) PutMessages(
	ctx context.Context,
	req *partlogv1.PutMessagesRequest,
) (*partlogv1.PutMessagesResponse, error) {
	ack, err := s.tr.PutMessages(ctx, req.GetTopic(), topictypes.PartitionID(req.GetPartition()),
		toMessages(req.GetMessages()),
	)
	if err != nil {
		return nil, toStatus(err)
	}

	return &partlogv1.PutMessagesResponse{
		Partition:   int32(ack.Partition),
		FirstOffset: int64(ack.FirstOffset),
		Count:       clampInt32(ack.Count),
	}, nil
}

func (s *server) GetMessages(
	ctx context.Context,
	req *partlogv1.GetMessagesRequest,
) (*partlogv1.GetMessagesResponse, error) {
	messages, err := s.tr.GetMessages(ctx, req.GetTopic(), topictypes.PartitionID(req.GetPartition()),
		topictypes.Offset(req.GetFrom()), int(req.GetMaxCount()), int(req.GetMaxBytes()),
	)
	if err != nil {
		return nil, toStatus(err)
	}

	return &partlogv1.GetMessagesResponse{Messages: fromMessages(messages)}, nil
}

func (s *server) DescribePartitions(
	ctx context.Context,
	req *partlogv1.DescribePartitionsRequest,
) (*partlogv1.DescribePartitionsResponse, error) {
	partitions, err := s.tr.DescribePartitions(ctx, req.GetTopic())
	if err != nil {
		return nil, toStatus(err)
	}

	return &partlogv1.DescribePartitionsResponse{Partitions: fromPartitions(partitions)}, nil
}

func (s *server) GetOffsetRange(
	ctx context.Context,
	req *partlogv1.GetOffsetRangeRequest,
) (*partlogv1.GetOffsetRangeResponse, error) {
	r, err := s.tr.GetOffsetRange(ctx, req.GetTopic(), topictypes.PartitionID(req.GetPartition()))
	if err != nil {
		return nil, toStatus(err)
	}

	return &partlogv1.GetOffsetRangeResponse{Start: int64(r.Start), End: int64(r.End)}, nil
}
