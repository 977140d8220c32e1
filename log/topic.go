package log

import (
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/partlog/partlog-go-sdk/trace"
)

// TopicWriter returns trace.TopicWriter with logging of writer events into l.
func TopicWriter(l logrus.FieldLogger) trace.TopicWriter {
	l = l.WithField("component", "topicwriter")

	return trace.TopicWriter{
		OnWriterBatchSent: func(info trace.OnWriterBatchSentInfo) {
			entry := l.WithFields(logrus.Fields{
				"topic":     info.Topic,
				"partition": info.PartitionID,
				"count":     info.Count,
				"size":      humanize.Bytes(uint64(info.Bytes)),
				"attempts":  info.Attempts,
			})
			if info.Error != nil {
				entry.WithError(info.Error).Error("batch send failed")

				return
			}
			entry.WithField("first_offset", info.FirstOffset).Debug("batch sent")
		},
		OnWriterSendRetry: func(info trace.OnWriterSendRetryInfo) {
			l.WithFields(logrus.Fields{
				"topic":     info.Topic,
				"partition": info.PartitionID,
				"attempt":   info.Attempt,
				"delay":     info.Delay,
			}).WithError(info.Error).Warn("retry batch send")
		},
		OnWriterPartitions: func(info trace.OnWriterPartitionsInfo) {
			if info.Added == 0 {
				return
			}
			l.WithFields(logrus.Fields{
				"topic":      info.Topic,
				"partitions": info.Partitions,
				"added":      info.Added,
			}).Info("topic partitions grew")
		},
		OnWriterDeactivated: func(info trace.OnWriterDeactivatedInfo) {
			l.WithField("topic", info.Topic).WithError(info.Error).Error("writer deactivated")
		},
		OnWriterClose: func(info trace.OnWriterCloseInfo) {
			entry := l.WithFields(logrus.Fields{
				"topic":   info.Topic,
				"dropped": info.Dropped,
			})
			if info.Error != nil || info.Dropped > 0 {
				entry.WithError(info.Error).Warn("writer closed with pending messages")

				return
			}
			entry.Info("writer closed")
		},
	}
}

// TopicReader returns trace.TopicReader with logging of reader events into l.
func TopicReader(l logrus.FieldLogger) trace.TopicReader {
	l = l.WithField("component", "topicreader")

	return trace.TopicReader{
		OnPartitionReadStart: func(info trace.OnPartitionReadStartInfo) {
			entry := l.WithFields(logrus.Fields{
				"topic":       info.Topic,
				"partition":   info.PartitionID,
				"generation":  info.Generation,
				"read_offset": info.ReadOffset,
			})
			if info.CommitOffset != nil {
				entry = entry.WithField("commit_offset", *info.CommitOffset)
			}
			entry.Info("partition read start")
		},
		OnPartitionReadStop: func(info trace.OnPartitionReadStopInfo) {
			l.WithFields(logrus.Fields{
				"topic":            info.Topic,
				"partition":        info.PartitionID,
				"generation":       info.Generation,
				"committed_offset": info.CommittedOffset,
				"graceful":         info.Graceful,
			}).Info("partition read stop")
		},
		OnPartitionCommittedNotify: func(info trace.OnPartitionCommittedInfo) {
			entry := l.WithFields(logrus.Fields{
				"topic":            info.Topic,
				"partition":        info.PartitionID,
				"committed_offset": info.CommittedOffset,
			})
			if info.Error != nil {
				entry.WithError(info.Error).Warn("checkpoint failed")

				return
			}
			entry.Debug("checkpoint committed")
		},
		OnPartitionFetchError: func(info trace.OnPartitionFetchErrorInfo) {
			l.WithFields(logrus.Fields{
				"topic":     info.Topic,
				"partition": info.PartitionID,
				"offset":    info.Offset,
				"attempts":  info.Attempts,
			}).WithError(info.Error).Warn("fetch failed")
		},
		OnPartitionProcessError: func(info trace.OnPartitionProcessErrorInfo) {
			l.WithFields(logrus.Fields{
				"topic":       info.Topic,
				"partition":   info.PartitionID,
				"from_offset": info.FromOffset,
				"to_offset":   info.ToOffset,
			}).WithError(info.Error).Warn("process failed, batch will be redelivered")
		},
		OnPartitionStale: func(info trace.OnPartitionStaleInfo) {
			l.WithFields(logrus.Fields{
				"topic":      info.Topic,
				"partition":  info.PartitionID,
				"generation": info.Generation,
			}).WithError(info.Error).Error("partition ownership lost")
		},
	}
}

// Coordinator returns trace.Coordinator with logging of group membership into l.
func Coordinator(l logrus.FieldLogger) trace.Coordinator {
	l = l.WithField("component", "coordinator")

	return trace.Coordinator{
		OnStateChange: func(info trace.OnCoordinatorStateChangeInfo) {
			l.WithFields(logrus.Fields{
				"group":  info.Group,
				"member": info.MemberID,
				"from":   info.From,
				"to":     info.To,
			}).Debug("member state changed")
		},
		OnRebalance: func(info trace.OnCoordinatorRebalanceInfo) {
			entry := l.WithFields(logrus.Fields{
				"group":      info.Group,
				"member":     info.MemberID,
				"generation": info.Generation,
				"members":    info.Members,
				"partitions": info.Partitions,
				"assigned":   info.Assigned,
				"added":      info.Added,
				"removed":    info.Removed,
			})
			if len(info.Lost) > 0 {
				entry = entry.WithField("lost", info.Lost)
			}
			if info.Error != nil {
				entry.WithError(info.Error).Warn("rebalanced partially, will retry")

				return
			}
			entry.Info("rebalanced")
		},
		OnRegistryError: func(info trace.OnCoordinatorRegistryErrorInfo) {
			l.WithFields(logrus.Fields{
				"group":  info.Group,
				"member": info.MemberID,
				"stale":  info.Stale,
			}).WithError(info.Error).Warn("registry unreachable")
		},
	}
}
