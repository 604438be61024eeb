package roonpipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/bluemancz/roonpipe-launcher/internal/model"
	"github.com/bluemancz/roonpipe-launcher/internal/roonpipe/dto"
)

// DefaultSocketPath is where the RoonPipe daemon listens by default.
const DefaultSocketPath = "/tmp/roonpipe.sock"

// DefaultTimeout bounds a full request/response round trip.
const DefaultTimeout = 5 * time.Second

// Sentinel errors for the failure modes a frontend needs to tell apart.
// Everything else is wrapped with context and can be treated uniformly.
var (
	// ErrUnavailable is returned when the daemon socket is missing or the
	// connection is refused.
	ErrUnavailable = errors.New("roonpipe daemon unavailable")

	// ErrTimeout is returned when the daemon does not answer within the
	// configured timeout.
	ErrTimeout = errors.New("roonpipe request timed out")

	// ErrBadResponse is returned when the daemon's reply cannot be decoded.
	ErrBadResponse = errors.New("invalid response from roonpipe")
)

// Client talks to the RoonPipe daemon over its local unix socket.
//
// The protocol is a single JSON request per connection: dial, write one
// command object, read the JSON reply until the daemon closes the
// connection. No handle outlives a call, so a Client is safe to share and
// costs nothing to keep around.
//
// Example usage:
//
//	client := roonpipe.NewClient("", 0) // defaults
//
//	tracks, err := client.Search(ctx, "miles davis")
//	if errors.Is(err, roonpipe.ErrUnavailable) {
//	    // daemon not running
//	}
//
//	err = client.Play(ctx, tracks[0].Actions()[0].Play)
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a Client for the daemon socket at socketPath.
//
// An empty socketPath selects DefaultSocketPath; a non-positive timeout
// selects DefaultTimeout.
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// SocketPath returns the daemon socket path this client targets.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Available reports whether the daemon socket exists.
//
// This is a cheap pre-flight check, not a guarantee that a subsequent call
// will succeed; the socket can disappear between the check and the dial.
func (c *Client) Available() bool {
	info, err := os.Stat(c.socketPath)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeSocket != 0
}

// Search forwards a query string to the daemon and returns the matching
// track records in the order the daemon ranked them.
//
// A query with no matches returns an empty slice and no error. Daemon-side
// failures are returned as errors wrapping one of the package sentinels
// where applicable.
func (c *Client) Search(ctx context.Context, query string) ([]model.Track, error) {
	resp, err := c.send(ctx, dto.NewSearchRequest(query))
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("roonpipe search failed: %s", resp.Error)
	}
	return resp.ToTracks(), nil
}

// Play sends a play command for one previously returned record.
//
// The daemon acknowledges with a success flag; a false flag without an
// error message is reported as a generic rejection.
func (c *Client) Play(ctx context.Context, req model.PlayRequest) error {
	resp, err := c.send(ctx, dto.NewPlayCommand(req))
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return fmt.Errorf("roonpipe play failed: %s", resp.Error)
	}
	if !resp.Success {
		return fmt.Errorf("roonpipe rejected play command for %s", req)
	}
	return nil
}

// send performs one request/response exchange on a fresh connection.
func (c *Client) send(ctx context.Context, command any) (*dto.Response, error) {
	payload, err := json.Marshal(command)
	if err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	if _, err := conn.Write(payload); err != nil {
		return nil, classifyConnError(err)
	}

	// The daemon signals end-of-reply by closing the connection, so signal
	// end-of-request the same way before reading.
	if uc, ok := conn.(*net.UnixConn); ok {
		if err := uc.CloseWrite(); err != nil {
			return nil, classifyConnError(err)
		}
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return nil, classifyConnError(err)
	}

	var resp dto.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	return &resp, nil
}

// classifyConnError maps transport errors onto the package sentinels.
func classifyConnError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
