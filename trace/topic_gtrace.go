package trace

// Compose returns a new TopicWriter which has functional fields composed both from t and x.
func (t TopicWriter) Compose(x TopicWriter) (ret TopicWriter) {
	{
		h1 := t.OnWriterBatchSent
		h2 := x.OnWriterBatchSent
		ret.OnWriterBatchSent = func(info OnWriterBatchSentInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnWriterSendRetry
		h2 := x.OnWriterSendRetry
		ret.OnWriterSendRetry = func(info OnWriterSendRetryInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnWriterPartitions
		h2 := x.OnWriterPartitions
		ret.OnWriterPartitions = func(info OnWriterPartitionsInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnWriterDeactivated
		h2 := x.OnWriterDeactivated
		ret.OnWriterDeactivated = func(info OnWriterDeactivatedInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnWriterClose
		h2 := x.OnWriterClose
		ret.OnWriterClose = func(info OnWriterCloseInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	return ret
}

// Compose returns a new TopicReader which has functional fields composed both from t and x.
func (t TopicReader) Compose(x TopicReader) (ret TopicReader) {
	{
		h1 := t.OnPartitionReadStart
		h2 := x.OnPartitionReadStart
		ret.OnPartitionReadStart = func(info OnPartitionReadStartInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnPartitionReadStop
		h2 := x.OnPartitionReadStop
		ret.OnPartitionReadStop = func(info OnPartitionReadStopInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnPartitionCommittedNotify
		h2 := x.OnPartitionCommittedNotify
		ret.OnPartitionCommittedNotify = func(info OnPartitionCommittedInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnPartitionFetchError
		h2 := x.OnPartitionFetchError
		ret.OnPartitionFetchError = func(info OnPartitionFetchErrorInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnPartitionProcessError
		h2 := x.OnPartitionProcessError
		ret.OnPartitionProcessError = func(info OnPartitionProcessErrorInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnPartitionStale
		h2 := x.OnPartitionStale
		ret.OnPartitionStale = func(info OnPartitionStaleInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	return ret
}

// Compose returns a new Coordinator which has functional fields composed both from t and x.
func (t Coordinator) Compose(x Coordinator) (ret Coordinator) {
	{
		h1 := t.OnStateChange
		h2 := x.OnStateChange
		ret.OnStateChange = func(info OnCoordinatorStateChangeInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnRebalance
		h2 := x.OnRebalance
		ret.OnRebalance = func(info OnCoordinatorRebalanceInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	{
		h1 := t.OnRegistryError
		h2 := x.OnRegistryError
		ret.OnRegistryError = func(info OnCoordinatorRegistryErrorInfo) {
			if h1 != nil {
				h1(info)
			}
			if h2 != nil {
				h2(info)
			}
		}
	}
	return ret
}

func (t TopicWriter) onWriterBatchSent(info OnWriterBatchSentInfo) {
	if fn := t.OnWriterBatchSent; fn != nil {
		fn(info)
	}
}

func (t TopicWriter) onWriterSendRetry(info OnWriterSendRetryInfo) {
	if fn := t.OnWriterSendRetry; fn != nil {
		fn(info)
	}
}

func (t TopicWriter) onWriterPartitions(info OnWriterPartitionsInfo) {
	if fn := t.OnWriterPartitions; fn != nil {
		fn(info)
	}
}

func (t TopicWriter) onWriterDeactivated(info OnWriterDeactivatedInfo) {
	if fn := t.OnWriterDeactivated; fn != nil {
		fn(info)
	}
}

func (t TopicWriter) onWriterClose(info OnWriterCloseInfo) {
	if fn := t.OnWriterClose; fn != nil {
		fn(info)
	}
}

func (t TopicReader) onPartitionReadStart(info OnPartitionReadStartInfo) {
	if fn := t.OnPartitionReadStart; fn != nil {
		fn(info)
	}
}

func (t TopicReader) onPartitionReadStop(info OnPartitionReadStopInfo) {
	if fn := t.OnPartitionReadStop; fn != nil {
		fn(info)
	}
}

func (t TopicReader) onPartitionCommittedNotify(info OnPartitionCommittedInfo) {
	if fn := t.OnPartitionCommittedNotify; fn != nil {
		fn(info)
	}
}

func (t TopicReader) onPartitionFetchError(info OnPartitionFetchErrorInfo) {
	if fn := t.OnPartitionFetchError; fn != nil {
		fn(info)
	}
}

func (t TopicReader) onPartitionProcessError(info OnPartitionProcessErrorInfo) {
	if fn := t.OnPartitionProcessError; fn != nil {
		fn(info)
	}
}

func (t TopicReader) onPartitionStale(info OnPartitionStaleInfo) {
	if fn := t.OnPartitionStale; fn != nil {
		fn(info)
	}
}

func (t Coordinator) onStateChange(info OnCoordinatorStateChangeInfo) {
	if fn := t.OnStateChange; fn != nil {
		fn(info)
	}
}

func (t Coordinator) onRebalance(info OnCoordinatorRebalanceInfo) {
	if fn := t.OnRebalance; fn != nil {
		fn(info)
	}
}

func (t Coordinator) onRegistryError(info OnCoordinatorRegistryErrorInfo) {
	if fn := t.OnRegistryError; fn != nil {
		fn(info)
	}
}

func TopicOnWriterBatchSent(t TopicWriter, info OnWriterBatchSentInfo) {
	t.onWriterBatchSent(info)
}

func TopicOnWriterSendRetry(t TopicWriter, info OnWriterSendRetryInfo) {
	t.onWriterSendRetry(info)
}

func TopicOnWriterPartitions(t TopicWriter, info OnWriterPartitionsInfo) {
	t.onWriterPartitions(info)
}

func TopicOnWriterDeactivated(t TopicWriter, info OnWriterDeactivatedInfo) {
	t.onWriterDeactivated(info)
}

func TopicOnWriterClose(t TopicWriter, info OnWriterCloseInfo) {
	t.onWriterClose(info)
}

func TopicOnPartitionReadStart(t TopicReader, info OnPartitionReadStartInfo) {
	t.onPartitionReadStart(info)
}

func TopicOnPartitionReadStop(t TopicReader, info OnPartitionReadStopInfo) {
	t.onPartitionReadStop(info)
}

func TopicOnPartitionCommittedNotify(t TopicReader, info OnPartitionCommittedInfo) {
	t.onPartitionCommittedNotify(info)
}

func TopicOnPartitionFetchError(t TopicReader, info OnPartitionFetchErrorInfo) {
	t.onPartitionFetchError(info)
}

func TopicOnPartitionProcessError(t TopicReader, info OnPartitionProcessErrorInfo) {
	t.onPartitionProcessError(info)
}

func TopicOnPartitionStale(t TopicReader, info OnPartitionStaleInfo) {
	t.onPartitionStale(info)
}

func CoordinatorOnStateChange(t Coordinator, info OnCoordinatorStateChangeInfo) {
	t.onStateChange(info)
}

func CoordinatorOnRebalance(t Coordinator, info OnCoordinatorRebalanceInfo) {
	t.onRebalance(info)
}

func CoordinatorOnRegistryError(t Coordinator, info OnCoordinatorRegistryErrorInfo) {
	t.onRegistryError(info)
}
