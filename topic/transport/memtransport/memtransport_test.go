package memtransport

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

func messages(values ...string) []topictypes.Message {
	res := make([]topictypes.Message, len(values))
	for i, v := range values {
		res[i] = topictypes.Message{Data: []byte(v)}
	}

	return res
}

func TestTransport(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()

	t.Run("PutGet", func(t *testing.T) {
		tr := New(clock)
		tr.CreateTopic("t", 2)

		ack, err := tr.PutMessages(ctx, "t", 1, messages("a", "b"))
		require.NoError(t, err)
		require.Equal(t, topictypes.Ack{Partition: 1, FirstOffset: 0, Count: 2}, ack)

		ack, err = tr.PutMessages(ctx, "t", 1, messages("c"))
		require.NoError(t, err)
		require.Equal(t, topictypes.Offset(2), ack.FirstOffset)

		res, err := tr.GetMessages(ctx, "t", 1, 1, 10, 0)
		require.NoError(t, err)
		require.Len(t, res, 2)
		require.Equal(t, "b", string(res[0].Data))
		require.Equal(t, topictypes.Offset(1), res[0].Offset)
		require.Equal(t, clock.Now(), res[0].CreatedAt)

		res, err = tr.GetMessages(ctx, "t", 1, 3, 10, 0)
		require.NoError(t, err)
		require.Empty(t, res)
	})

	t.Run("Limits", func(t *testing.T) {
		tr := New(clock)
		tr.CreateTopic("t", 1)
		_, err := tr.PutMessages(ctx, "t", 0, messages("aaaa", "bbbb", "cccc"))
		require.NoError(t, err)

		res, err := tr.GetMessages(ctx, "t", 0, 0, 2, 0)
		require.NoError(t, err)
		require.Len(t, res, 2)

		res, err = tr.GetMessages(ctx, "t", 0, 0, 0, 6)
		require.NoError(t, err)
		require.Len(t, res, 1)

		// first message is returned even if larger than maxBytes
		res, err = tr.GetMessages(ctx, "t", 0, 0, 0, 1)
		require.NoError(t, err)
		require.Len(t, res, 1)
	})

	t.Run("Errors", func(t *testing.T) {
		tr := New(clock)
		tr.CreateTopic("t", 1)

		_, err := tr.PutMessages(ctx, "unknown", 0, messages("a"))
		var trErr *transport.Error
		require.ErrorAs(t, err, &trErr)
		require.Equal(t, transport.CodeNotFound, trErr.Code)

		_, err = tr.GetMessages(ctx, "t", 5, 0, 1, 0)
		require.ErrorAs(t, err, &trErr)
		require.Equal(t, transport.CodeInvalidArgument, trErr.Code)

		hookErr := transport.NewError("PutMessages", transport.CodeUnavailable, errors.New("test"))
		tr.SetPutHook(func(ctx context.Context, topic string, partition topictypes.PartitionID, messages []topictypes.Message) error {
			return hookErr
		})
		_, err = tr.PutMessages(ctx, "t", 0, messages("a"))
		require.ErrorIs(t, err, hookErr)
		require.Empty(t, tr.Messages("t", 0))
	})

	t.Run("DescribeAndRange", func(t *testing.T) {
		tr := New(clock)
		tr.CreateTopic("t", 2)
		tr.CreateTopic("t", 3)

		partitions, err := tr.DescribePartitions(ctx, "t")
		require.NoError(t, err)
		require.Equal(t, []topictypes.PartitionID{0, 1, 2}, partitions)

		_, err = tr.PutMessages(ctx, "t", 0, messages("a", "b", "c"))
		require.NoError(t, err)
		tr.TruncateBefore("t", 0, 2)

		r, err := tr.GetOffsetRange(ctx, "t", 0)
		require.NoError(t, err)
		require.Equal(t, topictypes.OffsetRange{Start: 2, End: 3}, r)

		res, err := tr.GetMessages(ctx, "t", 0, 0, 10, 0)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, topictypes.Offset(2), res[0].Offset)
	})
}
