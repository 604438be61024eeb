// Package krunner exposes the query adapter as a KRunner D-Bus plugin.
//
// KRunner discovers out-of-process runners through the org.kde.krunner1
// interface: it calls Match with the current query, renders the returned
// matches alongside other results, and calls Run with the match (and
// optionally action) id the user selected.
//
// The runner claims io.github.roonpipe.runner on the session bus and
// serves until its context is cancelled:
//
//	conn, _ := dbus.ConnectSessionBus()
//	runner := krunner.New(adapter, settings.Trigger)
//	err := runner.Serve(ctx, conn)
//
// A matching .desktop file (X-Plasma-API=DBus, X-Plasma-DBusRunner-Service)
// registers the service with KRunner; see the repository README.
package krunner
