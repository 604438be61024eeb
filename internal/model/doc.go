// Package model defines the core data structures used throughout
// roonpipe-launcher.
//
// # Track
//
// Track is a request-scoped copy of one search result owned by the
// RoonPipe daemon:
//
//	track := model.Track{ItemKey: "t1", Title: "So What", Subtitle: "Miles Davis"}
//	actions := track.Actions() // one Action per daemon-offered action title
//
// # Item
//
// Item is what the launcher frontends display. Result items are built from
// tracks; informational items replace results when the daemon is down or a
// query matched nothing:
//
//	item := model.NewItem(0, track, "/path/to/art.jpg")
//	info := model.NewInfoItem("roonpipe-no-results", "No tracks found", "", icon)
//
// # PlayRequest
//
// PlayRequest is the identifier tuple sent back to the daemon to start
// playback. Every playable Item action carries exactly one PlayRequest, so
// selecting a result can never address more than one record.
//
// All values in this package are transient: created per query, discarded
// after the result list is rendered or an action is taken.
package model
