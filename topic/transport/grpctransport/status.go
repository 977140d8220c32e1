package grpctransport

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/partlog/partlog-go-sdk/internal/xerrors"
	"github.com/partlog/partlog-go-sdk/topic/transport"
)

var codeToStatus = map[transport.Code]codes.Code{
	transport.CodeUnknown:         codes.Unknown,
	transport.CodeUnavailable:     codes.Unavailable,
	transport.CodeTimeout:         codes.DeadlineExceeded,
	transport.CodeInvalidArgument: codes.InvalidArgument,
	transport.CodeUnauthorized:    codes.Unauthenticated,
	transport.CodeNotFound:        codes.NotFound,
}

// toStatus converts an error of the served transport to a grpc status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	var e *transport.Error
	if errors.As(err, &e) {
		code, ok := codeToStatus[e.Code]
		if !ok {
			code = codes.Unknown
		}

		return status.Error(code, e.Err.Error())
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	return status.Error(codes.Unknown, err.Error())
}

func fromStatusCode(code codes.Code) transport.Code {
	switch code {
	case codes.Unavailable, codes.Canceled, codes.Aborted, codes.ResourceExhausted:
		return transport.CodeUnavailable
	case codes.DeadlineExceeded:
		return transport.CodeTimeout
	case codes.InvalidArgument, codes.OutOfRange, codes.FailedPrecondition:
		return transport.CodeInvalidArgument
	case codes.Unauthenticated, codes.PermissionDenied:
		return transport.CodeUnauthorized
	case codes.NotFound, codes.Unimplemented:
		return transport.CodeNotFound
	default:
		return transport.CodeUnknown
	}
}

// fromStatus converts a grpc call error to *transport.Error.
func fromStatus(op string, err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return xerrors.WithStackTrace(transport.NewError(op, transport.CodeFromContext(err), err))
	}

	return xerrors.WithStackTrace(transport.NewError(op, fromStatusCode(st.Code()), err))
}
