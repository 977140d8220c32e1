package topicreader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/topic/topictypes"
)

func TestNewBatch(t *testing.T) {
	messages := func(offsets ...topictypes.Offset) []topictypes.Message {
		res := make([]topictypes.Message, len(offsets))
		for i, offset := range offsets {
			res[i] = topictypes.Message{Offset: offset, Data: []byte("12")}
		}

		return res
	}

	t.Run("Ordered", func(t *testing.T) {
		batch, err := newBatch(testTopic, 1, 10, messages(10, 11, 13))
		require.NoError(t, err)
		require.Equal(t, topictypes.Offset(10), batch.FirstOffset())
		require.Equal(t, topictypes.Offset(13), batch.LastOffset())
		require.Equal(t, topictypes.OffsetRange{Start: 10, End: 14}, batch.Range())
		require.Equal(t, 6, batch.Bytes())
	})

	t.Run("BeforeReadOffset", func(t *testing.T) {
		_, err := newBatch(testTopic, 1, 10, messages(9, 10))
		require.ErrorIs(t, err, errBadBatchOffsets)
	})

	t.Run("Unordered", func(t *testing.T) {
		_, err := newBatch(testTopic, 1, 0, messages(0, 2, 1))
		require.ErrorIs(t, err, errBadBatchOffsets)
	})

	t.Run("Empty", func(t *testing.T) {
		var batch Batch
		require.True(t, batch.IsEmpty())
		require.Equal(t, topictypes.OffsetUnset, batch.FirstOffset())
		require.Equal(t, topictypes.OffsetUnset, batch.LastOffset())
	})
}

func TestParseOptions(t *testing.T) {
	t.Run("InitialPosition", func(t *testing.T) {
		for s, expected := range map[string]InitialPosition{
			"":         InitialPositionEarliest,
			"earliest": InitialPositionEarliest,
			"LATEST":   InitialPositionLatest,
		} {
			p, err := ParseInitialPosition(s)
			require.NoError(t, err)
			require.Equal(t, expected, p)
		}

		_, err := ParseInitialPosition("middle")
		require.Error(t, err)
		require.Equal(t, "latest", InitialPositionLatest.String())
	})

	t.Run("CheckpointMode", func(t *testing.T) {
		mode, err := ParseCheckpointMode("manual")
		require.NoError(t, err)
		require.Equal(t, CheckpointManual, mode)

		mode, err = ParseCheckpointMode("auto")
		require.NoError(t, err)
		require.Equal(t, CheckpointAuto, mode)

		_, err = ParseCheckpointMode("sometimes")
		require.Error(t, err)
		require.Equal(t, "CheckpointMode(7)", CheckpointMode(7).String())
	})
}
