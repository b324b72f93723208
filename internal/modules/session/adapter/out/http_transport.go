package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"

	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/logging"
	"diagonator/internal/platform/protocol"
)

const maxResponseBytes = 1 << 20

// HTTPTransport posts each request as a JSON body and decodes the reply body.
type HTTPTransport struct {
	url    string
	client *http.Client
	logger hclog.Logger
}

func NewHTTPTransport(url string, client *http.Client, logger hclog.Logger) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &HTTPTransport{url: url, client: client, logger: logger.Named("http")}
}

func (t *HTTPTransport) RoundTrip(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	payload, err := protocol.EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", apperrors.ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: post %s: %v", apperrors.ErrTransport, t.url, err)
	}
	defer httpResp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", apperrors.ErrTransport, err)
	}
	t.logger.Trace("response body", "status", httpResp.StatusCode, "raw", string(body))

	resp, decodeErr := protocol.DecodeResponse(body)
	if decodeErr != nil && (httpResp.StatusCode < 200 || httpResp.StatusCode > 299) {
		return nil, fmt.Errorf("%w: server answered %s", apperrors.ErrTransport, httpResp.Status)
	}
	return resp, decodeErr
}

func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
