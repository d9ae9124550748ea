// Package encode writes frame sequences as animated images.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FrameDelay is how long each frame is shown. Animations loop forever.
const FrameDelay = 120 * time.Millisecond

// delayCentis is FrameDelay in the 1/100 s units both formats use.
const delayCentis = 12

var ErrNoFrames = errors.New("no frames to encode")

// Sink writes an animation to path. Implementations leave nothing at path
// when they fail.
type Sink interface {
	Save(path string, frames []image.Image) error
}

// ForPath picks a sink by file extension: .png and .apng produce an animated
// PNG, anything else a GIF quantized onto palette.
func ForPath(path string, palette color.Palette) Sink {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".apng":
		return APNG{}
	default:
		return GIF{Palette: palette}
	}
}

// writeAtomic lets write fill a temporary file next to path and renames it
// into place only when write succeeds.
func writeAtomic(path string, write func(tmp string) error) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
