package out

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/logging"
	"diagonator/internal/platform/protocol"
)

// SocketTransport speaks newline-delimited JSON over one unix socket
// connection. Requests are serialized so every response pairs with the
// request written just before it.
type SocketTransport struct {
	path   string
	logger hclog.Logger

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

func NewSocketTransport(path string, logger hclog.Logger) *SocketTransport {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SocketTransport{path: path, logger: logger.Named("socket")}
}

func (t *SocketTransport) RoundTrip(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	payload, err := protocol.EncodeRequest(req)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureConn(ctx); err != nil {
		return nil, err
	}
	deadline, _ := ctx.Deadline()
	if err := t.conn.SetDeadline(deadline); err != nil {
		return nil, t.fail(ctx, "set deadline", err)
	}
	if _, err := t.conn.Write(append(payload, '\n')); err != nil {
		return nil, t.fail(ctx, "write request", err)
	}
	line, err := readFrame(t.reader, maxResponseBytes)
	if err != nil {
		return nil, t.fail(ctx, "read response", err)
	}
	t.logger.Trace("response line", "raw", string(bytes.TrimSpace(line)))
	return protocol.DecodeResponse(bytes.TrimSpace(line))
}

func (t *SocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn, t.reader = nil, nil
	return err
}

func (t *SocketTransport) ensureConn(ctx context.Context) error {
	if t.conn != nil {
		return nil
	}
	d := net.Dialer{Timeout: 10 * time.Second}
	conn, err := d.DialContext(ctx, "unix", t.path)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", apperrors.ErrTransport, t.path, err)
	}
	t.logger.Debug("connected", "path", t.path)
	t.conn = conn
	t.reader = bufio.NewReader(conn)
	return nil
}

// readFrame returns one newline-terminated line of at most limit bytes.
// A line cut short by EOF is not a frame.
func readFrame(r *bufio.Reader, limit int) ([]byte, error) {
	var frame []byte
	for {
		chunk, err := r.ReadSlice('\n')
		frame = append(frame, chunk...)
		if len(frame) > limit {
			return nil, fmt.Errorf("response exceeds %d bytes", limit)
		}
		switch {
		case err == nil:
			return frame, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && len(frame) > 0:
			return nil, fmt.Errorf("unterminated response: %w", io.ErrUnexpectedEOF)
		default:
			return nil, err
		}
	}
}

// fail drops the connection; a half-read stream can no longer be paired.
func (t *SocketTransport) fail(ctx context.Context, op string, err error) error {
	_ = t.conn.Close()
	t.conn, t.reader = nil, nil
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return fmt.Errorf("%w: %s: %v", apperrors.ErrTransport, op, err)
}
