package icons

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// warmWorkers bounds concurrent artwork processing during Warm.
const warmWorkers = 4

// Resolver maps daemon-supplied artwork paths to icon files a launcher
// can display.
//
// The daemon hands out local artwork paths with its search results; a path
// may be missing or stale, and launcher hosts generally want small square
// icons rather than full-size cover art. Resolve handles both concerns:
//
//	r := icons.NewResolver("/usr/share/icons/roon.png", cacheDir, 128, true)
//
//	iconPath := r.Resolve(track.ImagePath)
//	// missing artwork        -> fallback icon
//	// resize disabled        -> artwork path unchanged
//	// resize enabled         -> scaled JPEG under cacheDir
//
// Resolution never fails: any processing error falls back to the original
// artwork path.
type Resolver struct {
	fallback string
	cacheDir string
	size     int
	resize   bool
}

// NewResolver creates a Resolver.
//
// fallback is returned for records without usable artwork and may be
// empty. cacheDir holds resized icons and is created lazily. size is the
// maximum icon edge in pixels; resize enables scaling.
func NewResolver(fallback, cacheDir string, size int, resize bool) *Resolver {
	return &Resolver{
		fallback: fallback,
		cacheDir: cacheDir,
		size:     size,
		resize:   resize,
	}
}

// Fallback returns the configured fallback icon path.
func (r *Resolver) Fallback() string {
	return r.fallback
}

// Resolve returns the icon file to display for the given artwork path.
//
// An empty or non-existent path resolves to the fallback icon. With
// resizing disabled the artwork path is returned unchanged. With resizing
// enabled the artwork is scaled into the cache directory once and the
// cached file is returned on subsequent calls; if scaling fails for any
// reason the original artwork path is returned instead.
func (r *Resolver) Resolve(artworkPath string) string {
	if artworkPath == "" {
		return r.fallback
	}
	if _, err := os.Stat(artworkPath); err != nil {
		return r.fallback
	}
	if !r.resize {
		return artworkPath
	}

	cached, err := r.resized(artworkPath)
	if err != nil {
		return artworkPath
	}
	return cached
}

// Warm pre-populates the resize cache for a batch of artwork paths.
//
// Processing runs with bounded concurrency and stops early when ctx is
// cancelled. Individual failures are ignored; Resolve will fall back per
// path later. Warm is a no-op when resizing is disabled.
func (r *Resolver) Warm(ctx context.Context, artworkPaths []string) {
	if !r.resize {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(warmWorkers)

	for _, path := range artworkPaths {
		if path == "" {
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := os.Stat(path); err != nil {
				return nil
			}
			_, _ = r.resized(path)
			return nil
		})
	}

	_ = g.Wait()
}

// resized returns the cached scaled copy of the artwork, creating it on
// first use.
func (r *Resolver) resized(artworkPath string) (string, error) {
	cachePath := r.cachePath(artworkPath)
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	data, err := os.ReadFile(artworkPath)
	if err != nil {
		return "", err
	}

	scaled, err := scaleImage(data, r.size, r.size)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.cacheDir, 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(cachePath, scaled, 0644); err != nil {
		return "", err
	}

	return cachePath, nil
}

// cachePath derives a stable cache file name from the artwork path and
// icon size, so a size change invalidates the cache naturally.
func (r *Resolver) cachePath(artworkPath string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d", artworkPath, r.size)
	return filepath.Join(r.cacheDir, fmt.Sprintf("%016x.jpg", h.Sum64()))
}

// scaleImage resizes an image to fit within maxWidth x maxHeight,
// preserving aspect ratio, and re-encodes it as JPEG.
//
// Catmull-Rom is used for high-quality scaling. Images already within the
// bounds are re-encoded without scaling up.
func scaleImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
