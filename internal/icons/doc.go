// Package icons resolves daemon-supplied artwork paths into icon files
// for launcher display.
//
// The RoonPipe daemon references artwork by cached local path; nothing is
// fetched over the network at query time. This package validates those
// paths, substitutes a fallback icon when artwork is missing, and can
// optionally scale artwork down into an XDG cache directory so hosts get
// launcher-sized images instead of full covers:
//
//	r := icons.NewResolver(fallbackIcon, config.IconCacheDir(), 128, true)
//	item := model.NewItem(i, track, r.Resolve(track.ImagePath))
//
// Resolve never returns an error; every failure degrades to either the
// fallback icon or the unscaled artwork path.
package icons
