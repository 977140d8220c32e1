package grpctransport

import (
	"time"

	partlogv1 "github.com/partlog/partlog-go-sdk/api/partlog/v1"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

func fromMessages(messages []topictypes.Message) []*partlogv1.Message {
	res := make([]*partlogv1.Message, len(messages))
	for i := range messages {
		res[i] = &partlogv1.Message{
			Key:    messages[i].Key,
			Data:   messages[i].Data,
			Offset: int64(messages[i].Offset),
		}
		if !messages[i].CreatedAt.IsZero() {
			res[i].CreatedAtUs = messages[i].CreatedAt.UnixMicro()
		}
	}

	return res
}

func toMessages(messages []*partlogv1.Message) []topictypes.Message {
	res := make([]topictypes.Message, len(messages))
	for i, mess := range messages {
		res[i] = topictypes.Message{
			Key:    mess.GetKey(),
			Data:   mess.GetData(),
			Offset: topictypes.Offset(mess.GetOffset()),
		}
		if mess.GetCreatedAtUs() != 0 {
			res[i].CreatedAt = time.UnixMicro(mess.GetCreatedAtUs())
		}
	}

	return res
}

func fromPartitions(partitions []topictypes.PartitionID) []int32 {
	res := make([]int32, len(partitions))
	for i, p := range partitions {
		res[i] = int32(p)
	}

	return res
}

func toPartitions(partitions []int32) []topictypes.PartitionID {
	res := make([]topictypes.PartitionID, len(partitions))
	for i, p := range partitions {
		res[i] = topictypes.PartitionID(p)
	}

	return res
}
