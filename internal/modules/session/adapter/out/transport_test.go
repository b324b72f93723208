package out_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	out "diagonator/internal/modules/session/adapter/out"
	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

func reply(req protocol.Request) protocol.Response {
	switch req.(type) {
	case protocol.GetInfo:
		return protocol.Info{Info: protocol.SessionInfo{
			State:  protocol.StateUnlocked,
			Reason: protocol.Reason{Type: protocol.ReasonNoConstraints},
		}}
	case protocol.EndSession:
		return protocol.Error{Msg: "no session"}
	default:
		return protocol.Success{}
	}
}

func serveSocket(t *testing.T) (string, *atomic.Int32) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	conns := &atomic.Int32{}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conns.Add(1)
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					req, err := protocol.DecodeRequest(scanner.Bytes())
					if err != nil {
						return
					}
					payload, err := protocol.EncodeResponse(reply(req))
					if err != nil {
						return
					}
					if _, err := conn.Write(append(payload, '\n')); err != nil {
						return
					}
				}
			}(conn)
		}
	}()
	return path, conns
}

func TestSocketTransportPairsResponsesOnOneConnection(t *testing.T) {
	t.Parallel()
	path, conns := serveSocket(t)
	transport := out.NewSocketTransport(path, nil)
	defer transport.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first, err := transport.RoundTrip(ctx, protocol.StartSession{})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, ok := first.(protocol.Success); !ok {
		t.Fatalf("expected success, got %T", first)
	}
	second, err := transport.RoundTrip(ctx, protocol.GetInfo{})
	if err != nil {
		t.Fatalf("get info: %v", err)
	}
	info, ok := second.(protocol.Info)
	if !ok || info.Info.State != protocol.StateUnlocked {
		t.Fatalf("expected info, got %#v", second)
	}
	third, err := transport.RoundTrip(ctx, protocol.EndSession{})
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if rejected, ok := third.(protocol.Error); !ok || rejected.Msg != "no session" {
		t.Fatalf("expected error response, got %#v", third)
	}
	if got := conns.Load(); got != 1 {
		t.Fatalf("expected one connection, got %d", got)
	}
}

func TestSocketTransportDialFailure(t *testing.T) {
	t.Parallel()
	transport := out.NewSocketTransport(filepath.Join(t.TempDir(), "missing.sock"), nil)
	_, err := transport.RoundTrip(context.Background(), protocol.GetInfo{})
	if !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSocketTransportTimesOutOnSilentServer(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "silent.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = io.Copy(io.Discard, conn)
	}()
	transport := out.NewSocketTransport(path, nil)
	defer transport.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := transport.RoundTrip(ctx, protocol.GetInfo{}); !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

// serveOnce answers the first request on path with the raw bytes of answer
// and closes the connection.
func serveOnce(t *testing.T, answer []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "once.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		if _, err := bufio.NewReader(conn).ReadBytes('\n'); err != nil {
			return
		}
		_, _ = conn.Write(answer)
	}()
	return path
}

func TestSocketTransportRejectsUnterminatedResponse(t *testing.T) {
	t.Parallel()
	transport := out.NewSocketTransport(serveOnce(t, []byte(`{"type":"Success"}`)), nil)
	defer transport.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := transport.RoundTrip(ctx, protocol.StartSession{}); !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSocketTransportRejectsOversizedResponse(t *testing.T) {
	t.Parallel()
	answer := append(bytes.Repeat([]byte("a"), 2<<20), '\n')
	transport := out.NewSocketTransport(serveOnce(t, answer), nil)
	defer transport.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := transport.RoundTrip(ctx, protocol.GetInfo{}); !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestHTTPTransportPostsJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		req, err := protocol.DecodeRequest(body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		payload, _ := protocol.EncodeResponse(reply(req))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	transport, err := out.NewTransport(srv.URL, nil)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	defer transport.Close()
	resp, err := transport.RoundTrip(context.Background(), protocol.GetInfo{})
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if _, ok := resp.(protocol.Info); !ok {
		t.Fatalf("expected info, got %T", resp)
	}
}

func TestHTTPTransportNonJSONErrorStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()
	transport := out.NewHTTPTransport(srv.URL, srv.Client(), nil)
	if _, err := transport.RoundTrip(context.Background(), protocol.GetInfo{}); !errors.Is(err, apperrors.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestHTTPTransportGarbageBodyIsProtocolError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"Teapot"}`))
	}))
	defer srv.Close()
	transport := out.NewHTTPTransport(srv.URL, srv.Client(), nil)
	if _, err := transport.RoundTrip(context.Background(), protocol.GetInfo{}); !errors.Is(err, apperrors.ErrProtocol) {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestNewTransportSchemes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		endpoint string
		wantErr  bool
		socket   bool
	}{
		{endpoint: "/run/diagonator.sock", socket: true},
		{endpoint: "unix:///run/diagonator.sock", socket: true},
		{endpoint: "http://localhost:3000"},
		{endpoint: "https://example.test/api"},
		{endpoint: "", wantErr: true},
		{endpoint: "ftp://host/file", wantErr: true},
	}
	for _, tc := range cases {
		transport, err := out.NewTransport(tc.endpoint, nil)
		if tc.wantErr {
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Fatalf("%q: expected invalid input, got %v", tc.endpoint, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.endpoint, err)
		}
		_, isSocket := transport.(*out.SocketTransport)
		if isSocket != tc.socket {
			t.Fatalf("%q: socket=%v, got %T", tc.endpoint, tc.socket, transport)
		}
	}
}
