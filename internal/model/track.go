package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Track represents one search result returned by the RoonPipe daemon.
//
// A Track is a request-scoped, read-only copy of a daemon-owned record.
// It carries everything needed to display the result in a launcher and to
// play it later:
//   - Title and Subtitle for display
//   - Type (e.g. "track", "album", "artist") for the subtext label
//   - ImagePath, a local artwork file supplied by the daemon
//   - The identifier tuple (ItemKey, SessionKey, CategoryKey, Index) that
//     the daemon requires to start playback
//   - ActionTitles, the playback actions the daemon offers for this record
//     (e.g. "Play Now", "Queue")
//
// Tracks are created per query and discarded once the result list has been
// rendered or an action has been taken; nothing is persisted.
type Track struct {
	// ItemKey identifies the record inside the daemon's browse session.
	ItemKey string

	// SessionKey identifies the daemon browse session the record came from.
	SessionKey string

	// CategoryKey identifies the search category the record belongs to.
	CategoryKey string

	// Index is the record's position within its category.
	Index int

	// Type is the record kind as reported by the daemon ("track", "album", ...).
	// Defaults to "track" when the daemon omits it.
	Type string

	// Title is the display title.
	Title string

	// Subtitle is the secondary line, typically the artist name.
	// May be empty.
	Subtitle string

	// ImagePath is a local artwork file path supplied by the daemon.
	// Empty when no artwork is available.
	ImagePath string

	// ActionTitles lists the playback actions the daemon offers, in the
	// order they were returned.
	ActionTitles []string
}

// PlayRequest carries the identifier tuple and the chosen action title for
// one play command. Each Track maps to exactly one identifier tuple, so a
// PlayRequest built from a Track always targets that single record.
type PlayRequest struct {
	ItemKey     string
	SessionKey  string
	CategoryKey string
	Index       int
	ActionTitle string
}

// Action is a selectable playback action derived from a Track.
//
// ID is a stable, launcher-friendly identifier computed from the action
// title ("Play Now" becomes "play_now"). Play holds the full request to
// send when the action is chosen.
type Action struct {
	// ID is the action identifier, derived from Title via ActionID.
	ID string

	// Title is the human-readable action name from the daemon.
	Title string

	// Play is the play command to issue when this action is selected.
	Play PlayRequest
}

// Actions builds the selectable actions for the track.
//
// One Action is produced per action title the daemon returned, each
// carrying this track's identifier tuple. Titles that sanitize to an empty
// ID are skipped.
func (t *Track) Actions() []Action {
	actions := make([]Action, 0, len(t.ActionTitles))
	for _, title := range t.ActionTitles {
		id := ActionID(title)
		if id == "" {
			continue
		}
		actions = append(actions, Action{
			ID:    id,
			Title: title,
			Play: PlayRequest{
				ItemKey:     t.ItemKey,
				SessionKey:  t.SessionKey,
				CategoryKey: t.CategoryKey,
				Index:       t.Index,
				ActionTitle: title,
			},
		})
	}
	return actions
}

// DefaultAction returns the action matching preferred (case-insensitive),
// falling back to the first available action. The second return value is
// false when the track has no actions at all.
func (t *Track) DefaultAction(preferred string) (Action, bool) {
	actions := t.Actions()
	if len(actions) == 0 {
		return Action{}, false
	}
	for _, a := range actions {
		if strings.EqualFold(a.Title, preferred) {
			return a, true
		}
	}
	return actions[0], true
}

// TypeLabel returns the track type with the first letter capitalized,
// defaulting to "Track" when the daemon did not report a type.
func (t *Track) TypeLabel() string {
	kind := t.Type
	if kind == "" {
		kind = "track"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

var actionIDInvalid = regexp.MustCompile(`[^a-z0-9_]+`)

// ActionID derives a stable action identifier from an action title.
//
// The title is lowercased, spaces become underscores and any remaining
// non-alphanumeric runs are dropped:
//
//	ActionID("Play Now")  // "play_now"
//	ActionID("Queue")     // "queue"
func ActionID(title string) string {
	id := strings.ToLower(strings.TrimSpace(title))
	id = strings.ReplaceAll(id, " ", "_")
	id = actionIDInvalid.ReplaceAllString(id, "")
	return strings.Trim(id, "_")
}

// String implements fmt.Stringer for log output.
func (p PlayRequest) String() string {
	return fmt.Sprintf("%s (%s)", p.ItemKey, p.ActionTitle)
}
