package encode

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/setanarut/apng"
)

// APNG encodes frames as an animated PNG with full color.
type APNG struct{}

func (APNG) Save(path string, frames []image.Image) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	return writeAtomic(path, func(tmp string) (err error) {
		// apng.Save reports problems by panicking or by leaving the file
		// empty, so both are checked here.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("encode apng: %v", r)
			}
		}()
		apng.Save(tmp, frames, delayCentis)

		info, err := os.Stat(tmp)
		if err != nil {
			return err
		}
		if info.Size() == 0 {
			return errors.New("encode apng: empty output")
		}
		return nil
	})
}
