package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// DefaultFontPaths are tried in order when resolving a face.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSansBold.ttf",
}

// BuiltinFont names the fallback face in FontCache.Source.
const BuiltinFont = "builtin"

// FontCache resolves font faces by point size and keeps them for its
// lifetime. Faces carry glyph caches that are not safe for concurrent use,
// so drawing goes through Use, which serializes callers.
type FontCache struct {
	mu      sync.Mutex
	paths   []string
	faces   map[float64]font.Face
	sources map[float64]string
}

// NewFontCache uses DefaultFontPaths when no paths are given.
func NewFontCache(paths ...string) *FontCache {
	if len(paths) == 0 {
		paths = DefaultFontPaths
	}
	return &FontCache{
		paths:   paths,
		faces:   map[float64]font.Face{},
		sources: map[float64]string{},
	}
}

// Use calls fn with the face for size while holding the cache lock.
func (c *FontCache) Use(size float64, fn func(font.Face)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.faceLocked(size))
}

// Source reports the file a size resolved to, or BuiltinFont.
func (c *FontCache) Source(size float64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faceLocked(size)
	return c.sources[size]
}

func (c *FontCache) faceLocked(size float64) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	face, source := font.Face(basicfont.Face7x13), BuiltinFont
	for _, path := range c.paths {
		f, err := loadFace(path, size)
		if err != nil {
			continue
		}
		face, source = f, path
		break
	}
	c.faces[size] = face
	c.sources[size] = source
	return face
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
