package trace

import (
	"context"
	"time"
)

type (
	// TopicWriter specified trace of topic writer (producer) activity.
	TopicWriter struct {
		OnWriterBatchSent   func(OnWriterBatchSentInfo)
		OnWriterSendRetry   func(OnWriterSendRetryInfo)
		OnWriterPartitions  func(OnWriterPartitionsInfo)
		OnWriterDeactivated func(OnWriterDeactivatedInfo)
		OnWriterClose       func(OnWriterCloseInfo)
	}

	OnWriterBatchSentInfo struct {
		Topic       string
		PartitionID int64
		Count       int
		Bytes       int
		FirstOffset int64
		Attempts    int
		Error       error
	}
	OnWriterSendRetryInfo struct {
		Topic       string
		PartitionID int64
		Attempt     int
		Delay       time.Duration
		Error       error
	}
	OnWriterPartitionsInfo struct {
		Topic      string
		Partitions int
		Added      int
	}
	OnWriterDeactivatedInfo struct {
		Topic string
		Error error
	}
	OnWriterCloseInfo struct {
		Topic   string
		Dropped int
		Error   error
	}
)

type (
	// TopicReader specified trace of topic reader (consumer) activity.
	TopicReader struct {
		OnPartitionReadStart       func(OnPartitionReadStartInfo)
		OnPartitionReadStop        func(info OnPartitionReadStopInfo)
		OnPartitionCommittedNotify func(OnPartitionCommittedInfo)
		OnPartitionFetchError      func(OnPartitionFetchErrorInfo)
		OnPartitionProcessError    func(OnPartitionProcessErrorInfo)
		OnPartitionStale           func(OnPartitionStaleInfo)
	}

	OnPartitionReadStartInfo struct {
		PartitionContext context.Context
		Topic            string
		PartitionID      int64
		Generation       int64
		ReadOffset       int64
		CommitOffset     *int64
	}
	OnPartitionReadStopInfo struct {
		PartitionContext context.Context
		Topic            string
		PartitionID      int64
		Generation       int64
		CommittedOffset  int64
		Graceful         bool
	}
	OnPartitionCommittedInfo struct {
		Topic           string
		PartitionID     int64
		CommittedOffset int64
		Error           error
	}
	OnPartitionFetchErrorInfo struct {
		Topic       string
		PartitionID int64
		Offset      int64
		Attempts    int
		Error       error
	}
	OnPartitionProcessErrorInfo struct {
		Topic       string
		PartitionID int64
		FromOffset  int64
		ToOffset    int64
		Error       error
	}
	OnPartitionStaleInfo struct {
		Topic       string
		PartitionID int64
		Generation  int64
		Error       error
	}
)

type (
	// Coordinator specified trace of consumer group membership.
	Coordinator struct {
		OnStateChange   func(OnCoordinatorStateChangeInfo)
		OnRebalance     func(OnCoordinatorRebalanceInfo)
		OnRegistryError func(OnCoordinatorRegistryErrorInfo)
	}

	OnCoordinatorStateChangeInfo struct {
		Group    string
		MemberID string
		From     string
		To       string
	}
	OnCoordinatorRebalanceInfo struct {
		Group      string
		MemberID   string
		Generation int64
		Members    int
		Partitions int
		Assigned   []int64
		Added      []int64
		Removed    []int64
		Lost       []int64
		Error      error
	}
	OnCoordinatorRegistryErrorInfo struct {
		Group    string
		MemberID string
		Stale    time.Duration
		Error    error
	}
)
