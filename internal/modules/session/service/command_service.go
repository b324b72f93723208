package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	sessionout "diagonator/internal/modules/session/port/out"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/logging"
	"diagonator/internal/platform/protocol"
)

const DefaultTimeout = 10 * time.Second

// CommandService performs single request/response exchanges with the server.
type CommandService struct {
	transport sessionout.Transport
	timeout   time.Duration
	logger    hclog.Logger
}

func NewCommandService(transport sessionout.Transport, timeout time.Duration, logger hclog.Logger) *CommandService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &CommandService{transport: transport, timeout: timeout, logger: logger.Named("command")}
}

func (s *CommandService) exchange(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.logger.Debug("sending request", "type", req.RequestType())
	resp, err := s.transport.RoundTrip(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", req.RequestType(), err)
	}
	s.logger.Debug("received response", "request", req.RequestType(), "type", resp.ResponseType())
	if rejected, ok := resp.(protocol.Error); ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRejected, rejected.Msg)
	}
	return resp, nil
}

// Do sends a state-changing request and expects Success.
func (s *CommandService) Do(ctx context.Context, req protocol.Request) error {
	resp, err := s.exchange(ctx, req)
	if err != nil {
		return err
	}
	if _, ok := resp.(protocol.Success); !ok {
		return fmt.Errorf("%w: unexpected %s response to %s", apperrors.ErrProtocol, resp.ResponseType(), req.RequestType())
	}
	return nil
}

// Query sends a read request and expects Info.
func (s *CommandService) Query(ctx context.Context, req protocol.Request) (protocol.SessionInfo, error) {
	resp, err := s.exchange(ctx, req)
	if err != nil {
		return protocol.SessionInfo{}, err
	}
	info, ok := resp.(protocol.Info)
	if !ok {
		return protocol.SessionInfo{}, fmt.Errorf("%w: unexpected %s response to %s", apperrors.ErrProtocol, resp.ResponseType(), req.RequestType())
	}
	return info.Info, nil
}

func (s *CommandService) Info(ctx context.Context) (protocol.SessionInfo, error) {
	return s.Query(ctx, protocol.GetInfo{})
}
