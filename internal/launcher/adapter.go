package launcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/bluemancz/roonpipe-launcher/internal/config"
	"github.com/bluemancz/roonpipe-launcher/internal/icons"
	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

// EventLevel indicates the severity/type of an adapter event.
type EventLevel int

const (
	LevelInfo EventLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
)

// Event represents a diagnostic message from the adapter.
//
// Launcher hosts have no channel for asynchronous error display, so
// failures surface as events for whichever frontend cares to show or log
// them; the adapter itself always degrades to placeholder items.
type Event struct {
	Message string
	Level   EventLevel
}

// Daemon is the slice of the RoonPipe client the adapter needs.
// *roonpipe.Client satisfies it; tests substitute a mock.
type Daemon interface {
	// Available reports whether the daemon socket exists.
	Available() bool

	// Search returns the track records matching the query.
	Search(ctx context.Context, query string) ([]model.Track, error)

	// Play issues one play command.
	Play(ctx context.Context, req model.PlayRequest) error
}

// Adapter is the stateless bridge between a launcher host and the RoonPipe
// daemon: it turns query strings into display items and selected actions
// into play commands.
//
// Each call is independent; the adapter holds no state across invocations
// beyond its configuration.
type Adapter struct {
	daemon   Daemon
	icons    *icons.Resolver
	settings *config.Settings
	onEvent  func(Event)
}

// New creates an Adapter.
//
// onEvent receives diagnostic events and may be nil.
func New(daemon Daemon, resolver *icons.Resolver, settings *config.Settings, onEvent func(Event)) *Adapter {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if resolver == nil {
		resolver = icons.NewResolver(settings.Icons.Fallback, config.IconCacheDir(), settings.Icons.Size, settings.Icons.Resize)
	}
	return &Adapter{
		daemon:   daemon,
		icons:    resolver,
		settings: settings,
		onEvent:  onEvent,
	}
}

// Query forwards a search string to the daemon and maps the response to an
// ordered list of display items.
//
// Degradation rules, in order:
//   - empty (or whitespace-only) query: empty list, daemon not contacted
//   - daemon socket missing: one "RoonPipe is not running" item
//   - search failure: one item describing the failure
//   - no matches: one "No tracks found" item
//
// Otherwise one playable item is produced per record, in daemon order,
// truncated to MaxResults when configured. Query never returns an error;
// every failure mode is represented as items so a host can render the call
// result unconditionally.
func (a *Adapter) Query(ctx context.Context, query string) []model.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if !a.daemon.Available() {
		a.event(Event{Message: "RoonPipe daemon is not running", Level: LevelWarning})
		return []model.Item{model.NewInfoItem(
			"roonpipe-not-running",
			"RoonPipe is not running",
			"Start RoonPipe daemon first: roonpipe",
			a.icons.Fallback(),
		)}
	}

	tracks, err := a.daemon.Search(ctx, query)
	if err != nil {
		a.event(Event{Message: fmt.Sprintf("Search %q failed: %v", query, err), Level: LevelError})
		return []model.Item{model.NewInfoItem(
			"roonpipe-error",
			friendlyError(err),
			"Error occurred while searching Roon tracks",
			a.icons.Fallback(),
		)}
	}

	if len(tracks) == 0 {
		a.event(Event{Message: fmt.Sprintf("No results for %q", query), Level: LevelVerbose})
		return []model.Item{model.NewInfoItem(
			"roonpipe-no-results",
			"No tracks found",
			fmt.Sprintf("No results for %q", query),
			a.icons.Fallback(),
		)}
	}

	if max := a.settings.MaxResults; max > 0 && len(tracks) > max {
		tracks = tracks[:max]
	}

	a.event(Event{Message: fmt.Sprintf("%d results for %q", len(tracks), query), Level: LevelVerbose})

	// Scale artwork in parallel before the serial Resolve pass; each
	// Resolve then hits the cache.
	paths := make([]string, 0, len(tracks))
	for _, track := range tracks {
		paths = append(paths, track.ImagePath)
	}
	a.icons.Warm(ctx, paths)

	items := make([]model.Item, 0, len(tracks))
	for i, track := range tracks {
		items = append(items, model.NewItem(i, track, a.icons.Resolve(track.ImagePath)))
	}
	return items
}

// Activate issues the play command for one selected action.
//
// Exactly one command is sent, carrying exactly the identifier tuple the
// action was built with. The error return is informational; hosts that
// treat activation as fire-and-forget can discard it, and the failure is
// also reported through the event callback.
func (a *Adapter) Activate(ctx context.Context, action model.Action) error {
	if err := a.daemon.Play(ctx, action.Play); err != nil {
		a.event(Event{Message: fmt.Sprintf("Play %s failed: %v", action.Play, err), Level: LevelError})
		return err
	}
	a.event(Event{Message: fmt.Sprintf("Playing %s", action.Play), Level: LevelInfo})
	return nil
}

// Settings exposes the adapter's configuration to frontends.
func (a *Adapter) Settings() *config.Settings {
	return a.settings
}

func (a *Adapter) event(e Event) {
	if a.onEvent != nil {
		a.onEvent(e)
	}
}

// friendlyError shortens transport errors to something fit for a result
// line; the full error goes to the event callback.
func friendlyError(err error) string {
	msg := err.Error()
	if idx := strings.IndexByte(msg, ':'); idx > 0 {
		return msg[:idx]
	}
	return msg
}
