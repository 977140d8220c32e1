package log

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/partlog/partlog-go-sdk/trace"
)

func TestTopicWriterLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	tr := TopicWriter(logger)
	trace.TopicOnWriterBatchSent(tr, trace.OnWriterBatchSentInfo{
		Topic:       "t",
		PartitionID: 1,
		Count:       3,
		Bytes:       2048,
		FirstOffset: 10,
		Attempts:    1,
	})
	require.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	require.Equal(t, "2.0 kB", hook.LastEntry().Data["size"])
	require.Equal(t, "topicwriter", hook.LastEntry().Data["component"])

	trace.TopicOnWriterBatchSent(tr, trace.OnWriterBatchSentInfo{Topic: "t", Error: errors.New("test")})
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestTopicReaderLog(t *testing.T) {
	logger, hook := test.NewNullLogger()

	offset := int64(5)
	trace.TopicOnPartitionReadStart(TopicReader(logger), trace.OnPartitionReadStartInfo{
		Topic:        "t",
		PartitionID:  2,
		ReadOffset:   5,
		CommitOffset: &offset,
	})
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, int64(5), hook.LastEntry().Data["commit_offset"])
}

func TestCoordinatorLog(t *testing.T) {
	logger, hook := test.NewNullLogger()

	trace.CoordinatorOnRegistryError(Coordinator(logger), trace.OnCoordinatorRegistryErrorInfo{
		Group: "g",
		Error: errors.New("unreachable"),
	})
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.Equal(t, "g", hook.LastEntry().Data["group"])
}
