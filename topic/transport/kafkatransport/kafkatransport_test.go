package kafkatransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/topic/topiccodec"
	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

func TestErrorCode(t *testing.T) {
	for _, test := range []struct {
		name string
		err  error
		code transport.Code
	}{
		{name: "UnknownTopic", err: kafka.UnknownTopicOrPartition, code: transport.CodeNotFound},
		{name: "Authorization", err: kafka.TopicAuthorizationFailed, code: transport.CodeUnauthorized},
		{name: "TooLarge", err: kafka.MessageSizeTooLarge, code: transport.CodeInvalidArgument},
		{name: "NotLeader", err: kafka.NotLeaderForPartition, code: transport.CodeUnavailable},
		{name: "RequestTimedOut", err: kafka.RequestTimedOut, code: transport.CodeTimeout},
		{name: "Wrapped", err: fmt.Errorf("produce: %w", kafka.LeaderNotAvailable), code: transport.CodeUnavailable},
		{name: "Deadline", err: context.DeadlineExceeded, code: transport.CodeTimeout},
		{name: "Dial", err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}, code: transport.CodeUnavailable},
		{name: "EOF", err: io.ErrUnexpectedEOF, code: transport.CodeUnavailable},
		{name: "Other", err: errors.New("unexpected"), code: transport.CodeUnknown},
	} {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.code, errorCode(test.err))

			err := wrapError("Op", test.err)
			require.ErrorIs(t, err, test.err)

			var e *transport.Error
			require.ErrorAs(t, err, &e)
			require.Equal(t, test.code, e.Code)
		})
	}

	require.NoError(t, wrapError("Op", nil))
}

func TestReadMessages(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	records := func() kafka.RecordReader {
		res := make([]kafka.Record, 5)
		for i := range res {
			res[i] = kafka.Record{
				Offset: int64(10 + i),
				Time:   created,
				Value:  kafka.NewBytes([]byte(fmt.Sprintf("value-%d", i))),
			}
		}
		res[2].Key = kafka.NewBytes([]byte("key"))

		return kafka.NewRecordReader(res...)
	}

	t.Run("SkipBelowFrom", func(t *testing.T) {
		messages, err := readMessages(records(), 12, 0, 0)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		require.Equal(t, topictypes.Offset(12), messages[0].Offset)
		require.Equal(t, []byte("key"), messages[0].Key)
		require.Equal(t, []byte("value-2"), messages[0].Data)
		require.True(t, created.Equal(messages[0].CreatedAt))
		require.Nil(t, messages[1].Key)
	})

	t.Run("MaxCount", func(t *testing.T) {
		messages, err := readMessages(records(), 10, 2, 0)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		require.Equal(t, topictypes.Offset(11), messages[1].Offset)
	})

	t.Run("MaxBytes", func(t *testing.T) {
		messages, err := readMessages(records(), 10, 0, 15)
		require.NoError(t, err)
		require.Len(t, messages, 2)

		messages, err = readMessages(records(), 10, 0, 1)
		require.NoError(t, err)
		require.Len(t, messages, 1)
	})

	t.Run("NoRecords", func(t *testing.T) {
		messages, err := readMessages(nil, 0, 0, 0)
		require.NoError(t, err)
		require.Empty(t, messages)
	})
}

func TestCompression(t *testing.T) {
	require.Equal(t, kafka.Compression(0), compression(topiccodec.CodecUnspecified))
	require.Equal(t, kafka.Compression(0), compression(topiccodec.CodecRaw))
	require.Equal(t, kafka.Zstd, compression(topiccodec.CodecZstd))
	require.Equal(t, kafka.Gzip, compression(topiccodec.CodecGzip))

	tr := New([]string{"localhost:9092"}, WithCodec(topiccodec.CodecSnappy))
	require.Equal(t, kafka.Snappy, compression(tr.cfg.Codec))
}
