// Package roonpipe implements the client side of the RoonPipe daemon's
// local control interface.
//
// The daemon listens on a unix socket (by default /tmp/roonpipe.sock) and
// speaks a simple one-shot JSON protocol: each connection carries exactly
// one command object and one reply, with the reply terminated by the
// daemon closing the connection.
//
// # Commands
//
// Two commands exist. A library search:
//
//	{"command": "search", "query": "miles davis"}
//
// and a play request carrying the identifier tuple from an earlier search
// result:
//
//	{"command": "play", "item_key": "...", "session_key": "...",
//	 "category_key": "...", "item_index": 0, "action_title": "Play Now"}
//
// # Usage
//
//	client := roonpipe.NewClient("", 0)
//
//	tracks, err := client.Search(ctx, "miles davis")
//	if err != nil {
//	    // errors.Is against ErrUnavailable / ErrTimeout / ErrBadResponse
//	}
//
//	if action, ok := tracks[0].DefaultAction("Play Now"); ok {
//	    _ = client.Play(ctx, action.Play)
//	}
//
// Wire types live in the dto subpackage; frontends only ever see
// model.Track and model.PlayRequest.
package roonpipe
