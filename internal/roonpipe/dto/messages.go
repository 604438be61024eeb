package dto

import (
	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

// SearchRequest is the wire form of a library search command.
type SearchRequest struct {
	Command string `json:"command"`
	Query   string `json:"query"`
}

// NewSearchRequest builds a search command for the given query string.
func NewSearchRequest(query string) SearchRequest {
	return SearchRequest{Command: "search", Query: query}
}

// PlayCommand is the wire form of a play command.
//
// The daemon requires the full identifier tuple from the originating
// search result plus the title of the action to execute.
type PlayCommand struct {
	Command     string `json:"command"`
	ItemKey     string `json:"item_key"`
	SessionKey  string `json:"session_key"`
	CategoryKey string `json:"category_key"`
	ItemIndex   int    `json:"item_index"`
	ActionTitle string `json:"action_title"`
}

// NewPlayCommand builds a play command from a model.PlayRequest.
func NewPlayCommand(req model.PlayRequest) PlayCommand {
	return PlayCommand{
		Command:     "play",
		ItemKey:     req.ItemKey,
		SessionKey:  req.SessionKey,
		CategoryKey: req.CategoryKey,
		ItemIndex:   req.Index,
		ActionTitle: req.ActionTitle,
	}
}

// Response is the envelope the daemon wraps every reply in.
//
// Error is set when the command failed daemon-side. Success acknowledges a
// play command. Results carries search hits and is absent for other
// commands.
type Response struct {
	Error   string       `json:"error,omitempty"`
	Success bool         `json:"success,omitempty"`
	Results []JSONResult `json:"results,omitempty"`
}

// JSONResult represents one search hit as serialized by the daemon.
//
// Note the mixed key style: most fields are snake_case but the session key
// arrives as "sessionKey". The struct tags mirror the daemon exactly.
type JSONResult struct {
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	ItemKey     string       `json:"item_key"`
	SessionKey  string       `json:"sessionKey"`
	CategoryKey string       `json:"category_key"`
	Index       int          `json:"index"`
	Type        string       `json:"type"`
	Image       string       `json:"image"`
	Actions     []JSONAction `json:"actions"`
}

// JSONAction represents one playback action offered for a search hit.
type JSONAction struct {
	Title string `json:"title"`
}

// ToTrack converts a wire result to a model.Track.
//
// Actions without a title are dropped; a missing type defaults to "track"
// so downstream display code always has a label to work with.
func (r *JSONResult) ToTrack() model.Track {
	kind := r.Type
	if kind == "" {
		kind = "track"
	}

	var titles []string
	for _, a := range r.Actions {
		if a.Title != "" {
			titles = append(titles, a.Title)
		}
	}

	return model.Track{
		ItemKey:      r.ItemKey,
		SessionKey:   r.SessionKey,
		CategoryKey:  r.CategoryKey,
		Index:        r.Index,
		Type:         kind,
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		ImagePath:    r.Image,
		ActionTitles: titles,
	}
}

// ToTracks converts all results in the response, preserving order.
func (resp *Response) ToTracks() []model.Track {
	tracks := make([]model.Track, 0, len(resp.Results))
	for i := range resp.Results {
		tracks = append(tracks, resp.Results[i].ToTrack())
	}
	return tracks
}
