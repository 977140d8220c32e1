package trace

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopicWriterCompose(t *testing.T) {
	var calls []string
	a := TopicWriter{OnWriterBatchSent: func(OnWriterBatchSentInfo) { calls = append(calls, "a") }}
	b := TopicWriter{OnWriterBatchSent: func(OnWriterBatchSentInfo) { calls = append(calls, "b") }}

	TopicOnWriterBatchSent(a.Compose(b), OnWriterBatchSentInfo{})
	require.Equal(t, []string{"a", "b"}, calls)

	// empty traces are safe to call
	TopicOnWriterClose(TopicWriter{}, OnWriterCloseInfo{})
	TopicOnPartitionStale(TopicReader{}.Compose(TopicReader{}), OnPartitionStaleInfo{})
	CoordinatorOnRebalance(Coordinator{}, OnCoordinatorRebalanceInfo{})
}
