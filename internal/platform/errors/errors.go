package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUsage            = errors.New("usage error")
	ErrProtocol         = errors.New("protocol error")
	ErrTransport        = errors.New("transport error")
	ErrChallengeFailed  = errors.New("incorrect answer")
	ErrRejected         = errors.New("request rejected by server")
	ErrStoreUnavailable = errors.New("analytics store unavailable")
)
