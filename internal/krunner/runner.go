package krunner

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/bluemancz/roonpipe-launcher/internal/launcher"
	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

const (
	// ServiceName is the well-known bus name the runner claims.
	ServiceName = "io.github.roonpipe.runner"

	// ObjectPath is where the runner object is exported.
	ObjectPath = "/runner"

	// Interface is KRunner's D-Bus plugin interface.
	Interface = "org.kde.krunner1"
)

// ErrNameTaken is returned by Serve when another runner instance already
// owns the well-known bus name.
var ErrNameTaken = errors.New("krunner service name already taken")

// KRunner match type values (subset used here).
const (
	matchInformational int32 = 50
	matchPossible      int32 = 30
	matchExact         int32 = 100
)

// RemoteMatch is one entry of the a(sssida{sv}) array Match returns.
// Field order is fixed by the org.kde.krunner1 interface.
type RemoteMatch struct {
	ID         string
	Text       string
	IconName   string
	Type       int32
	Relevance  float64
	Properties map[string]dbus.Variant
}

// RemoteAction is one entry of the a(sss) array Actions returns.
type RemoteAction struct {
	ID       string
	Text     string
	IconName string
}

// Runner exposes the query adapter to KRunner over the session bus.
//
// KRunner calls Match once per (debounced) keystroke and Run when the user
// picks a match. Between those two calls the runner keeps the actions of
// the last match set, keyed by match ID, because Run only receives ids.
// That map is the runner's sole state and is replaced wholesale on every
// Match.
type Runner struct {
	adapter *launcher.Adapter
	trigger string

	mu      sync.Mutex
	actions map[string][]model.Action
}

// New creates a Runner around the adapter. The trigger keyword (usually
// "roon ") is stripped from incoming queries; queries without it are
// ignored so the runner stays quiet for unrelated searches.
func New(adapter *launcher.Adapter, trigger string) *Runner {
	return &Runner{
		adapter: adapter,
		trigger: trigger,
		actions: make(map[string][]model.Action),
	}
}

// Serve claims the well-known name and exports the runner on conn,
// then blocks until ctx is done.
func (r *Runner) Serve(ctx context.Context, conn *dbus.Conn) error {
	reply, err := conn.RequestName(ServiceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return ErrNameTaken
	}

	if err := conn.Export(r, ObjectPath, Interface); err != nil {
		return err
	}
	if err := conn.Export(introspect.Introspectable(introspectXML), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return err
	}

	<-ctx.Done()

	_, _ = conn.ReleaseName(ServiceName)
	return ctx.Err()
}

// Match handles org.kde.krunner1.Match.
//
// The trigger keyword is required and stripped; everything after it is
// forwarded through the adapter. Informational items (daemon down, no
// results) come back as low-relevance informational matches with no
// actions, so selecting them does nothing.
func (r *Runner) Match(query string) ([]RemoteMatch, *dbus.Error) {
	stripped, ok := r.stripTrigger(query)
	if !ok {
		return nil, nil
	}

	items := r.adapter.Query(context.Background(), stripped)
	matches, actions := toMatches(items)

	r.mu.Lock()
	r.actions = actions
	r.mu.Unlock()

	return matches, nil
}

// Actions handles org.kde.krunner1.Actions.
//
// KRunner treats these as runner-global; the per-match "actions" property
// set in Match narrows them to what each record actually supports.
func (r *Runner) Actions() ([]RemoteAction, *dbus.Error) {
	return []RemoteAction{
		{ID: "play_now", Text: "Play Now", IconName: "media-playback-start"},
		{ID: "queue", Text: "Queue", IconName: "media-playlist-append"},
	}, nil
}

// Run handles org.kde.krunner1.Run.
//
// An empty actionID means the match itself was activated; the record's
// first action is used. Unknown match or action ids are ignored; KRunner
// offers no channel to report anything after the fact, and a stale id must
// never disturb the host.
func (r *Runner) Run(matchID, actionID string) *dbus.Error {
	r.mu.Lock()
	actions := r.actions[matchID]
	r.mu.Unlock()

	if len(actions) == 0 {
		return nil
	}

	chosen := actions[0]
	if actionID != "" {
		for _, a := range actions {
			if a.ID == actionID {
				chosen = a
				break
			}
		}
	}

	_ = r.adapter.Activate(context.Background(), chosen)
	return nil
}

// stripTrigger removes the trigger keyword from the query. With no
// configured trigger every query passes through unchanged.
func (r *Runner) stripTrigger(query string) (string, bool) {
	if r.trigger == "" {
		return query, true
	}
	trimmed := strings.TrimPrefix(query, r.trigger)
	if trimmed == query {
		// Accept the bare keyword too, so "roon" without the trailing
		// space does not produce unrelated noise.
		if strings.TrimSpace(query) == strings.TrimSpace(r.trigger) {
			return "", true
		}
		return "", false
	}
	return trimmed, true
}

// toMatches converts adapter items to KRunner matches plus the action map
// Run needs later.
//
// Relevance follows daemon ranking: the first result is an exact match and
// each following one steps down, bottoming out above informational level.
func toMatches(items []model.Item) ([]RemoteMatch, map[string][]model.Action) {
	matches := make([]RemoteMatch, 0, len(items))
	actions := make(map[string][]model.Action, len(items))

	for i, item := range items {
		props := map[string]dbus.Variant{
			"subtext": dbus.MakeVariant(item.Subtext),
		}

		m := RemoteMatch{
			ID:         item.ID,
			Text:       item.Text,
			IconName:   item.IconPath,
			Properties: props,
		}

		if !item.Playable() {
			m.Type = matchInformational
			m.Relevance = 0.1
			matches = append(matches, m)
			continue
		}

		ids := make([]string, 0, len(item.Actions))
		for _, a := range item.Actions {
			ids = append(ids, a.ID)
		}
		props["actions"] = dbus.MakeVariant(ids)

		m.Type = matchPossible
		if i == 0 {
			m.Type = matchExact
		}
		m.Relevance = relevanceFor(i)

		actions[item.ID] = item.Actions
		matches = append(matches, m)
	}

	return matches, actions
}

func relevanceFor(position int) float64 {
	r := 1.0 - float64(position)*0.05
	if r < 0.2 {
		r = 0.2
	}
	return r
}

const introspectXML = `
<node>
	<interface name="org.kde.krunner1">
		<method name="Match">
			<arg name="query" type="s" direction="in"/>
			<arg name="matches" type="a(sssida{sv})" direction="out"/>
		</method>
		<method name="Actions">
			<arg name="matches" type="a(sss)" direction="out"/>
		</method>
		<method name="Run">
			<arg name="matchId" type="s" direction="in"/>
			<arg name="actionId" type="s" direction="in"/>
		</method>
	</interface>
	<interface name="org.freedesktop.DBus.Introspectable">
		<method name="Introspect">
			<arg name="xml" type="s" direction="out"/>
		</method>
	</interface>
</node>`
