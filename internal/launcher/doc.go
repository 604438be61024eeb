// Package launcher contains the query adapter shared by every frontend.
//
// The Adapter is a stateless request mapper: a search string in, an
// ordered list of display items out, and a play command per selected
// action. It owns the error-degradation policy: a missing daemon, a
// failed search or an empty result set all become informational items
// rather than errors, so no failure can propagate into a launcher host:
//
//	adapter := launcher.New(client, resolver, settings, nil)
//
//	items := adapter.Query(ctx, "miles davis")
//	// items are playable results, or a single placeholder
//
//	if items[0].Playable() {
//	    _ = adapter.Activate(ctx, items[0].Actions[0])
//	}
//
// Diagnostics flow through an optional event callback in the same shape
// the CLI and TUI frontends consume.
package launcher
