package model

import "fmt"

// Item is one selectable entry produced for the launcher host.
//
// Items come in two flavors:
//   - Result items, built from a Track via NewItem. These carry the
//     track's actions and are playable.
//   - Informational items, built via NewInfoItem. These have no actions
//     and exist only to show a message ("RoonPipe is not running",
//     "No tracks found") in place of results.
//
// Example:
//
//	item := model.NewItem(2, track, iconPath)
//	// item.Text = "So What"
//	// item.Subtext = "Track • Miles Davis"
//	// item.Actions[0].Play carries the track's identifier tuple
type Item struct {
	// ID uniquely identifies the item within one result list.
	ID string

	// Text is the primary display line.
	Text string

	// Subtext is the secondary display line.
	Subtext string

	// IconPath is a local image file for the item's icon.
	IconPath string

	// Actions lists the selectable actions. Empty for informational items.
	Actions []Action
}

// Playable reports whether selecting the item can trigger playback.
func (i *Item) Playable() bool {
	return len(i.Actions) > 0
}

// NewItem builds a display item from a track record.
//
// The item ID encodes the record type and its position in the result list,
// matching the "roonpipe-<type>-<index>" scheme the daemon's other
// frontends use. The subtext combines the type label and the subtitle
// ("Track • Miles Davis"), or just the label when the record has no
// subtitle.
func NewItem(position int, track Track, iconPath string) Item {
	kind := track.Type
	if kind == "" {
		kind = "track"
	}

	subtext := track.TypeLabel()
	if track.Subtitle != "" {
		subtext = fmt.Sprintf("%s • %s", subtext, track.Subtitle)
	}

	title := track.Title
	if title == "" {
		title = "Unknown"
	}

	return Item{
		ID:       fmt.Sprintf("roonpipe-%s-%d", kind, position),
		Text:     title,
		Subtext:  subtext,
		IconPath: iconPath,
		Actions:  track.Actions(),
	}
}

// NewInfoItem builds an informational, non-playable item.
func NewInfoItem(id, text, subtext, iconPath string) Item {
	return Item{
		ID:       id,
		Text:     text,
		Subtext:  subtext,
		IconPath: iconPath,
	}
}
