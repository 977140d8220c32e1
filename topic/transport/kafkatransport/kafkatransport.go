// Package kafkatransport implements transport.Transport on top of a kafka cluster.
package kafkatransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/segmentio/kafka-go"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

var _ transport.Transport = &Transport{}

type Transport struct {
	cfg    Config
	client *kafka.Client
}

func New(brokers []string, opts ...Option) *Transport {
	cfg := newConfig(opts...)

	return &Transport{
		cfg: cfg,
		client: &kafka.Client{
			Addr:    kafka.TCP(brokers...),
			Timeout: cfg.Timeout,
		},
	}
}

func (t *Transport) PutMessages(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	messages []topictypes.Message,
) (topictypes.Ack, error) {
	now := t.cfg.Clock.Now()
	records := make([]kafka.Record, len(messages))
	for i := range messages {
		records[i] = kafka.Record{
			Time:  messages[i].CreatedAt,
			Key:   kafka.NewBytes(messages[i].Key),
			Value: kafka.NewBytes(messages[i].Data),
		}
		if records[i].Time.IsZero() {
			records[i].Time = now
		}
	}

	resp, err := t.client.Produce(ctx, &kafka.ProduceRequest{
		Topic:        topic,
		Partition:    int(partition),
		RequiredAcks: t.cfg.RequiredAcks,
		Records:      kafka.NewRecordReader(records...),
		Compression:  compression(t.cfg.Codec),
	})
	if err != nil {
		return topictypes.Ack{}, wrapError("PutMessages", err)
	}
	if resp.Error != nil {
		return topictypes.Ack{}, wrapError("PutMessages", resp.Error)
	}
	if len(resp.RecordErrors) > 0 {
		first := len(records)
		for i := range resp.RecordErrors {
			first = min(first, i)
		}

		return topictypes.Ack{}, wrapError("PutMessages", fmt.Errorf("record %d: %w", first, resp.RecordErrors[first]))
	}

	return topictypes.Ack{
		Partition:   partition,
		FirstOffset: topictypes.Offset(resp.BaseOffset),
		Count:       len(messages),
	}, nil
}

func (t *Transport) GetMessages(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	from topictypes.Offset,
	maxCount int,
	maxBytes int,
) ([]topictypes.Message, error) {
	messages, err := t.fetch(ctx, topic, partition, from, maxCount, maxBytes)
	if !errors.Is(err, kafka.OffsetOutOfRange) {
		return messages, err
	}

	// the offset was removed by retention or is not written yet
	r, rangeErr := t.GetOffsetRange(ctx, topic, partition)
	if rangeErr != nil {
		return nil, rangeErr
	}
	switch {
	case from < r.Start:
		return t.fetch(ctx, topic, partition, r.Start, maxCount, maxBytes)
	case from >= r.End:
		return nil, nil
	default:
		return nil, err
	}
}

func (t *Transport) fetch(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
	from topictypes.Offset,
	maxCount int,
	maxBytes int,
) ([]topictypes.Message, error) {
	requestBytes := maxBytes
	if requestBytes <= 0 {
		requestBytes = t.cfg.DefaultMaxBytes
	}

	resp, err := t.client.Fetch(ctx, &kafka.FetchRequest{
		Topic:     topic,
		Partition: int(partition),
		Offset:    int64(from),
		MinBytes:  1,
		MaxBytes:  int64(requestBytes),
		MaxWait:   t.cfg.MaxWait,
	})
	if err != nil {
		return nil, wrapError("GetMessages", err)
	}
	if resp.Error != nil {
		return nil, wrapError("GetMessages", resp.Error)
	}

	messages, err := readMessages(resp.Records, from, maxCount, maxBytes)
	if err != nil {
		return nil, wrapError("GetMessages", err)
	}

	return messages, nil
}

// readMessages converts fetched records, skipping records below from
// which a broker returns as part of a compressed batch.
func readMessages(records kafka.RecordReader, from topictypes.Offset, maxCount, maxBytes int) ([]topictypes.Message, error) {
	if records == nil {
		return nil, nil
	}

	var (
		res   []topictypes.Message
		bytes int
	)
	for {
		if maxCount > 0 && len(res) >= maxCount {
			return res, nil
		}

		rec, err := records.ReadRecord()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		if topictypes.Offset(rec.Offset) < from {
			continue
		}

		mess := topictypes.Message{
			CreatedAt: rec.Time,
			Offset:    topictypes.Offset(rec.Offset),
		}
		if mess.Key, err = readBytes(rec.Key); err != nil {
			return nil, err
		}
		if mess.Data, err = readBytes(rec.Value); err != nil {
			return nil, err
		}

		if maxBytes > 0 && len(res) > 0 && bytes+mess.Size() > maxBytes {
			return res, nil
		}
		bytes += mess.Size()
		res = append(res, mess)
	}
}

func readBytes(b kafka.Bytes) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	defer b.Close()

	return io.ReadAll(b)
}

func (t *Transport) DescribePartitions(ctx context.Context, topic string) ([]topictypes.PartitionID, error) {
	resp, err := t.client.Metadata(ctx, &kafka.MetadataRequest{Topics: []string{topic}})
	if err != nil {
		return nil, wrapError("DescribePartitions", err)
	}

	for i := range resp.Topics {
		if resp.Topics[i].Name != topic {
			continue
		}
		if resp.Topics[i].Error != nil {
			return nil, wrapError("DescribePartitions", resp.Topics[i].Error)
		}

		res := make([]topictypes.PartitionID, 0, len(resp.Topics[i].Partitions))
		for _, p := range resp.Topics[i].Partitions {
			res = append(res, topictypes.PartitionID(p.ID))
		}
		sort.Slice(res, func(i, j int) bool {
			return res[i] < res[j]
		})

		return res, nil
	}

	return nil, xerrors.WithStackTrace(transport.NewError("DescribePartitions", transport.CodeNotFound,
		fmt.Errorf("topic %q does not exist", topic),
	))
}

func (t *Transport) GetOffsetRange(
	ctx context.Context,
	topic string,
	partition topictypes.PartitionID,
) (topictypes.OffsetRange, error) {
	resp, err := t.client.ListOffsets(ctx, &kafka.ListOffsetsRequest{
		Topics: map[string][]kafka.OffsetRequest{
			topic: {kafka.FirstOffsetOf(int(partition)), kafka.LastOffsetOf(int(partition))},
		},
	})
	if err != nil {
		return topictypes.OffsetRange{}, wrapError("GetOffsetRange", err)
	}

	for _, p := range resp.Topics[topic] {
		if p.Partition != int(partition) {
			continue
		}
		if p.Error != nil {
			return topictypes.OffsetRange{}, wrapError("GetOffsetRange", p.Error)
		}

		return topictypes.OffsetRange{
			Start: topictypes.Offset(p.FirstOffset),
			End:   topictypes.Offset(p.LastOffset),
		}, nil
	}

	return topictypes.OffsetRange{}, xerrors.WithStackTrace(transport.NewError("GetOffsetRange", transport.CodeNotFound,
		fmt.Errorf("partition %v of topic %q does not exist", partition, topic),
	))
}
