package dto

import (
	"encoding/json"
	"testing"

	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

func playRequestFixture() model.PlayRequest {
	return model.PlayRequest{
		ItemKey:     "187:0",
		SessionKey:  "sess-9",
		CategoryKey: "163:0",
		Index:       0,
		ActionTitle: "Play Now",
	}
}

func TestResponse_ToTracks(t *testing.T) {
	// Reply captured from a real daemon session
	raw := `{
		"results": [
			{
				"title": "So What",
				"subtitle": "Miles Davis",
				"item_key": "187:0",
				"sessionKey": "sess-9",
				"category_key": "163:0",
				"index": 0,
				"type": "track",
				"image": "/tmp/a.jpg",
				"actions": [{"title": "Play Now"}, {"title": "Queue"}, {"title": ""}]
			},
			{
				"title": "Kind of Blue",
				"item_key": "187:1",
				"sessionKey": "sess-9",
				"category_key": "163:1",
				"index": 1,
				"type": "album"
			}
		]
	}`

	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	tracks := resp.ToTracks()
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}

	first := tracks[0]
	if first.Title != "So What" || first.Subtitle != "Miles Davis" {
		t.Errorf("unexpected first track: %+v", first)
	}
	if first.ItemKey != "187:0" || first.SessionKey != "sess-9" || first.CategoryKey != "163:0" {
		t.Errorf("identifier tuple not carried over: %+v", first)
	}
	if first.ImagePath != "/tmp/a.jpg" {
		t.Errorf("ImagePath = %q, want %q", first.ImagePath, "/tmp/a.jpg")
	}
	if len(first.ActionTitles) != 2 {
		t.Errorf("got %d action titles, want 2 (empty title dropped)", len(first.ActionTitles))
	}

	second := tracks[1]
	if second.Type != "album" {
		t.Errorf("second.Type = %q, want %q", second.Type, "album")
	}
	if len(second.ActionTitles) != 0 {
		t.Errorf("second track should have no actions, got %v", second.ActionTitles)
	}
}

func TestJSONResult_ToTrack_Defaults(t *testing.T) {
	r := JSONResult{Title: "Something"}
	track := r.ToTrack()
	if track.Type != "track" {
		t.Errorf("Type = %q, want default %q", track.Type, "track")
	}
}

func TestNewPlayCommand(t *testing.T) {
	cmd := NewPlayCommand(playRequestFixture())

	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	// The daemon dispatches on the command field and expects snake_case keys
	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if wire["command"] != "play" {
		t.Errorf("command = %v, want %q", wire["command"], "play")
	}
	if wire["item_key"] != "187:0" {
		t.Errorf("item_key = %v, want %q", wire["item_key"], "187:0")
	}
	if wire["action_title"] != "Play Now" {
		t.Errorf("action_title = %v, want %q", wire["action_title"], "Play Now")
	}
}
