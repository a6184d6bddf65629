package flamemaker

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// SafeWrite noisily saves pic under a name made of prefix, the seed and ext
func (s Seed) SafeWrite(pic Picture, prefix, ext string) error {
	fname := s.GetFilename(prefix, ext)
	if err := SafeWrite(pic, fname); err != nil {
		fmt.Printf("Problem saving %s: %v\n", fname, err)
		return err
	}
	fmt.Printf("Saved to %s\n", fname)
	return nil
}

// SafeWrite writes pic to a temp file then renames it to fname. The format
// follows the extension: .png, .bmp, .tif/.tiff, .ppm, .svg or .pdf.
func SafeWrite(pic Picture, fname string) error {
	if err := MaybeCreateDir(path.Dir(fname)); err != nil {
		return err
	}

	ext := strings.ToLower(path.Ext(fname))
	// same folder, so the rename below stays on one drive
	tmpfile, err := ioutil.TempFile(path.Dir(fname), ".flame.*"+ext)
	if err != nil {
		return err
	}
	tmpName := tmpfile.Name()
	err = writeFormat(tmpfile, pic, ext)
	if cerr := tmpfile.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fname); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Chmod(fname, 0664)
}

func writeFormat(f *os.File, pic Picture, ext string) error {
	switch ext {
	case ".png":
		img, err := pic.Image()
		if err != nil {
			return err
		}
		return gg.NewContextForRGBA(img).EncodePNG(f)
	case ".bmp":
		img, err := pic.Image()
		if err != nil {
			return err
		}
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		img, err := pic.Image()
		if err != nil {
			return err
		}
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".ppm":
		return WritePPM(f, pic, PPMMaxIntensity)
	case ".svg", ".pdf":
		ctx := NewContext(float64(pic.Acc.Width()), float64(pic.Acc.Height()))
		if err := ctx.DrawPicture(pic); err != nil {
			return err
		}
		// canvas writes by name
		if ext == ".svg" {
			return ctx.WriteSVG(f.Name())
		}
		return ctx.WritePDF(f.Name())
	}
	return fmt.Errorf("unsupported file format %s", ext)
}

// MaybeCreateDir creates dir and its parents if needed
func MaybeCreateDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0775)
}
