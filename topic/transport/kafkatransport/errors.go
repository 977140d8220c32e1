package kafkatransport

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/segmentio/kafka-go"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

func errorCode(err error) transport.Code {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return transport.CodeFromContext(err)
	}
	// connection closed by the broker
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return transport.CodeUnavailable
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		switch kerr {
		case kafka.UnknownTopicOrPartition, kafka.InvalidTopic:
			return transport.CodeNotFound
		case kafka.TopicAuthorizationFailed,
			kafka.ClusterAuthorizationFailed,
			kafka.SASLAuthenticationFailed,
			kafka.IllegalSASLState:
			return transport.CodeUnauthorized
		case kafka.OffsetOutOfRange,
			kafka.MessageSizeTooLarge,
			kafka.InvalidMessage,
			kafka.InvalidRecord,
			kafka.RecordListTooLarge:
			return transport.CodeInvalidArgument
		}
		switch {
		case kerr.Timeout():
			return transport.CodeTimeout
		case kerr.Temporary():
			return transport.CodeUnavailable
		default:
			return transport.CodeUnknown
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		if nerr.Timeout() {
			return transport.CodeTimeout
		}

		return transport.CodeUnavailable
	}

	return transport.CodeUnknown
}

func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	return xerrors.WithStackTrace(transport.NewError(op, errorCode(err), err))
}
