// Package assets loads sprites from the sprite host and icons from the local
// asset root. A failed load yields nil and a warning; it is never an error for
// the caller, who shows a text placeholder instead.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/time/rate"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const DefaultSpriteBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites"

// Size is a target display size in pixels.
type Size struct {
	Width  int
	Height int
}

// Asset is a decoded bitmap scaled to its target size. Each load produces a
// fresh Asset; nothing is shared between renders.
type Asset struct {
	Source string
	Size   Size
	Image  image.Image
}

type Loader struct {
	httpClient    *http.Client
	rateLimiter   *rate.Limiter
	spriteBaseURL string
	root          string
}

// NewLoader builds a loader for sprites under spriteBaseURL and local files
// under root.
func NewLoader(spriteBaseURL, root string, rateLimit float64, burst int) *Loader {
	if spriteBaseURL == "" {
		spriteBaseURL = DefaultSpriteBaseURL
	}
	if rateLimit <= 0 {
		rateLimit = 5
	}
	if burst <= 0 {
		burst = 5
	}
	return &Loader{
		httpClient:    &http.Client{},
		rateLimiter:   rate.NewLimiter(rate.Limit(rateLimit), burst),
		spriteBaseURL: strings.TrimRight(spriteBaseURL, "/"),
		root:          root,
	}
}

func (l *Loader) SpriteURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d.png", l.spriteBaseURL, id)
}

func (l *Loader) ShinySpriteURL(id int) string {
	return fmt.Sprintf("%s/pokemon/shiny/%d.png", l.spriteBaseURL, id)
}

// TypeIconPath is the local icon for a type tag, e.g. {root}/types/fire.png.
func (l *Loader) TypeIconPath(typeName string) string {
	return filepath.Join(l.root, "types", strings.ToLower(typeName)+".png")
}

func (l *Loader) BackgroundPath() string {
	return filepath.Join(l.root, "pokedex.jpg")
}

// LoadRemote fetches, decodes and resizes the image at url.
func (l *Loader) LoadRemote(ctx context.Context, url string, size Size) *Asset {
	data, err := l.get(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("asset unavailable")
		return nil
	}
	return decode(url, data, size)
}

// LoadLocal reads, decodes and resizes the image at path.
func (l *Loader) LoadLocal(path string, size Size) *Asset {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("asset unavailable")
		return nil
	}
	return decode(path, data, size)
}

func decode(source string, data []byte, size Size) *Asset {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("asset unavailable: decode failed")
		return nil
	}
	log.Debug().Str("source", source).Str("format", format).Int("w", size.Width).Int("h", size.Height).Msg("asset loaded")
	return &Asset{Source: source, Size: size, Image: Resize(img, size)}
}

// Resize scales img to exactly size. A non-positive dimension keeps the
// source bounds.
func Resize(img image.Image, size Size) image.Image {
	b := img.Bounds()
	if size.Width <= 0 || size.Height <= 0 || (b.Dx() == size.Width && b.Dy() == size.Height) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, error) {
	if err := l.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, 4<<20)) // sprites are a few KB
}
