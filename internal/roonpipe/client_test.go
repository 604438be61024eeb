package roonpipe

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

// fakeDaemon serves the one-shot JSON protocol on a throwaway unix socket.
// The handler receives the decoded command and returns the raw reply.
func fakeDaemon(t *testing.T, handler func(cmd map[string]any) string) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "roonpipe.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				raw, err := io.ReadAll(conn)
				if err != nil {
					return
				}
				var cmd map[string]any
				if err := json.Unmarshal(raw, &cmd); err != nil {
					return
				}
				_, _ = conn.Write([]byte(handler(cmd)))
			}(conn)
		}
	}()

	return socketPath
}

func TestClient_Search(t *testing.T) {
	socketPath := fakeDaemon(t, func(cmd map[string]any) string {
		assert.Equal(t, "search", cmd["command"])
		assert.Equal(t, "miles davis", cmd["query"])
		return `{"results": [
			{"title": "So What", "subtitle": "Miles Davis", "item_key": "t1",
			 "sessionKey": "s1", "category_key": "c1", "index": 0,
			 "type": "track", "image": "/tmp/a.jpg",
			 "actions": [{"title": "Play Now"}]}
		]}`
	})

	client := NewClient(socketPath, time.Second)
	tracks, err := client.Search(context.Background(), "miles davis")
	require.NoError(t, err)
	require.Len(t, tracks, 1)

	assert.Equal(t, "So What", tracks[0].Title)
	assert.Equal(t, "Miles Davis", tracks[0].Subtitle)
	assert.Equal(t, "t1", tracks[0].ItemKey)
	assert.Equal(t, []string{"Play Now"}, tracks[0].ActionTitles)
}

func TestClient_SearchEmptyResults(t *testing.T) {
	socketPath := fakeDaemon(t, func(map[string]any) string {
		return `{"results": []}`
	})

	client := NewClient(socketPath, time.Second)
	tracks, err := client.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestClient_SearchDaemonError(t *testing.T) {
	socketPath := fakeDaemon(t, func(map[string]any) string {
		return `{"error": "library not ready"}`
	})

	client := NewClient(socketPath, time.Second)
	_, err := client.Search(context.Background(), "miles")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library not ready")
}

func TestClient_SearchUnavailable(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing.sock"), time.Second)

	_, err := client.Search(context.Background(), "miles")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, client.Available())
}

func TestClient_SearchBadResponse(t *testing.T) {
	socketPath := fakeDaemon(t, func(map[string]any) string {
		return `not json at all`
	})

	client := NewClient(socketPath, time.Second)
	_, err := client.Search(context.Background(), "miles")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_SearchTimeout(t *testing.T) {
	// Accept connections but never reply
	socketPath := filepath.Join(t.TempDir(), "roonpipe.sock")
	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				time.Sleep(time.Second)
				conn.Close()
			}(conn)
		}
	}()

	client := NewClient(socketPath, 50*time.Millisecond)
	_, err = client.Search(context.Background(), "miles")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Play(t *testing.T) {
	var got map[string]any
	socketPath := fakeDaemon(t, func(cmd map[string]any) string {
		got = cmd
		return `{"success": true}`
	})

	client := NewClient(socketPath, time.Second)
	err := client.Play(context.Background(), model.PlayRequest{
		ItemKey:     "t1",
		SessionKey:  "s1",
		CategoryKey: "c1",
		Index:       2,
		ActionTitle: "Queue",
	})
	require.NoError(t, err)

	assert.Equal(t, "play", got["command"])
	assert.Equal(t, "t1", got["item_key"])
	assert.Equal(t, "s1", got["session_key"])
	assert.Equal(t, "c1", got["category_key"])
	assert.Equal(t, float64(2), got["item_index"])
	assert.Equal(t, "Queue", got["action_title"])
}

func TestClient_PlayRejected(t *testing.T) {
	socketPath := fakeDaemon(t, func(map[string]any) string {
		return `{"success": false}`
	})

	client := NewClient(socketPath, time.Second)
	err := client.Play(context.Background(), model.PlayRequest{ItemKey: "t1"})
	require.Error(t, err)
}

func TestClient_Available(t *testing.T) {
	socketPath := fakeDaemon(t, func(map[string]any) string { return `{}` })

	client := NewClient(socketPath, time.Second)
	assert.True(t, client.Available())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", 0)
	assert.Equal(t, DefaultSocketPath, client.SocketPath())
	assert.Equal(t, DefaultTimeout, client.timeout)
}
