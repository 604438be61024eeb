// Package config provides configuration management for roonpipe-launcher.
//
// Settings are read from TOML files merged in order (XDG config dir first,
// then the working directory), with sensible defaults for everything:
//
//	settings, err := config.Load()
//	// settings.SocketPath  = "/tmp/roonpipe.sock"
//	// settings.Timeout()   = 5s
//	// settings.Debounce()  = 200ms
//
// A config file only needs to name what it changes:
//
//	socket_path = "/run/user/1000/roonpipe.sock"
//	max_results = 15
//
//	[icons]
//	resize = true
//	size = 96
package config
