package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"

	sessionout "diagonator/internal/modules/session/port/out"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

// NewTransport picks the transport from the endpoint: http(s) URLs go over
// HTTP, unix:// URLs and bare paths over the local socket.
func NewTransport(endpoint string, logger hclog.Logger) (sessionout.Transport, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: server url is required", apperrors.ErrInvalidInput)
	}
	if !strings.Contains(endpoint, "://") {
		return NewSocketTransport(endpoint, logger), nil
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: server url %q: %v", apperrors.ErrInvalidInput, endpoint, err)
	}
	switch parsed.Scheme {
	case "unix":
		path := parsed.Path
		if parsed.Host != "" {
			path = parsed.Host + path
		}
		if path == "" {
			return nil, fmt.Errorf("%w: server url %q has no socket path", apperrors.ErrInvalidInput, endpoint)
		}
		return NewSocketTransport(path, logger), nil
	case "http", "https":
		return NewHTTPTransport(endpoint, &http.Client{}, logger), nil
	default:
		return nil, fmt.Errorf("%w: unsupported server url scheme %q", apperrors.ErrInvalidInput, parsed.Scheme)
	}
}

// UnconfiguredTransport fails every request; it backs commands when no
// server url was configured.
type UnconfiguredTransport struct{}

func (UnconfiguredTransport) RoundTrip(context.Context, protocol.Request) (protocol.Response, error) {
	return nil, fmt.Errorf("%w: server url is required", apperrors.ErrInvalidInput)
}

func (UnconfiguredTransport) Close() error { return nil }
