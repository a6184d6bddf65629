package flamemaker

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // palette sources
	_ "image/jpeg" // palette sources
	_ "image/png"  // palette sources
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/scottkirkwood/flamemaker/flame"
	"github.com/scottkirkwood/flamemaker/palette"
	_ "golang.org/x/image/bmp"  // palette sources
	_ "golang.org/x/image/tiff" // palette sources
)

// Picture is an accumulator with what it takes to tone map it.
type Picture struct {
	Acc        *flame.Accumulator
	Palette    palette.Palette
	Background palette.Color
}

// Bounds is the size of the accumulator, as an image rectangle
func (p Picture) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Acc.Width(), p.Acc.Height())
}

// Image tone maps every cell into a new RGBA image.
func (p Picture) Image() (*image.RGBA, error) {
	img := image.NewRGBA(p.Bounds())
	if err := p.Draw(img, image.Point{}); err != nil {
		return nil, err
	}
	return img, nil
}

// Draw tone maps every cell into dst, with cell (0, 0) at origin.
// Cells falling outside dst are skipped.
func (p Picture) Draw(dst *image.RGBA, origin image.Point) error {
	for y := 0; y < p.Acc.Height(); y++ {
		for x := 0; x < p.Acc.Width(); x++ {
			pt := origin.Add(image.Pt(x, y))
			if !pt.In(dst.Bounds()) {
				continue
			}
			c, err := p.Acc.Color(p.Palette, p.Background, x, y)
			if err != nil {
				return err
			}
			dst.Set(pt.X, pt.Y, c)
		}
	}
	return nil
}

// DecodeImages takes a list of image files and decodes them into image.Image
// types. Note that the number of images returned may not be the number of
// image files passed in. Namely, an image file is skipped if it cannot be
// read or deocoded into an image type that Go understands.
func DecodeImages(imageFiles []string) ([]string, []image.Image) {
	// A temporary type used to transport decoded images over channels.
	type tmpImage struct {
		img  image.Image
		name string
	}

	// Decoded all images specified in parallel.
	imgChans := make([]chan tmpImage, len(imageFiles))
	for i, fName := range imageFiles {
		imgChans[i] = make(chan tmpImage, 1)
		go func(i int, fName string) {
			defer close(imgChans[i])
			file, err := os.Open(fName)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer file.Close()

			start := time.Now()
			img, kind, err := image.Decode(file)
			if err != nil {
				fmt.Printf("Could not decode '%s' into a supported image "+
					"format: %s\n", fName, err)
				return
			}
			fmt.Printf("Decoded '%s' into image type '%s' (%s).\n",
				fName, kind, time.Since(start))

			imgChans[i] <- tmpImage{
				img:  img,
				name: filepath.Base(fName),
			}
		}(i, fName)
	}

	// Now collect all the decoded images into a slice of names and a slice
	// of images.
	names := make([]string, 0)
	imgs := make([]image.Image, 0)
	for _, imgChan := range imgChans {
		if tmpImg, ok := <-imgChan; ok {
			names = append(names, tmpImg.name)
			imgs = append(imgs, tmpImg.img)
		}
	}

	return names, imgs
}

// ErrNoImage is returned when a palette image could not be decoded
var ErrNoImage = errors.New("no image decoded")

// PaletteFromImage builds an interpolated palette out of the n most
// frequent colors of an image file, most frequent first.
func PaletteFromImage(fname string, n int) (*palette.Interpolated, error) {
	_, imgs := DecodeImages([]string{fname})
	if len(imgs) == 0 {
		return nil, fmt.Errorf("%s: %w", fname, ErrNoImage)
	}
	return PaletteOf(imgs[0], n)
}

// PaletteOf picks the n most frequent colors of m. Ties keep the order in
// which the colors are first met scanning rows top down.
func PaletteOf(m image.Image, n int) (*palette.Interpolated, error) {
	type colCount struct {
		col   color.Color
		count int
		first int
	}
	bounds := m.Bounds()
	counts := make(map[color.RGBA64]*colCount, 512)
	order := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			col := color.RGBA64Model.Convert(m.At(x, y)).(color.RGBA64)
			if cc, ok := counts[col]; ok {
				cc.count++
				continue
			}
			counts[col] = &colCount{col: col, count: 1, first: order}
			order++
		}
	}
	toSort := make([]*colCount, 0, len(counts))
	for _, cc := range counts {
		toSort = append(toSort, cc)
	}
	sort.Slice(toSort, func(i, j int) bool {
		if toSort[i].count != toSort[j].count {
			return toSort[i].count > toSort[j].count
		}
		return toSort[i].first < toSort[j].first
	})
	if len(toSort) > n {
		toSort = toSort[:n]
	}
	colors := make([]palette.Color, len(toSort))
	for i, cc := range toSort {
		colors[i] = palette.FromStdColor(cc.col)
	}
	return palette.NewInterpolated(colors)
}

// VpCenter inspects the canvas and image geometry, and determines where the
// origin of the image should be painted into the canvas.
// If the image is bigger than the canvas, this is always (0, 0).
// If the image is the same size, then it is also (0, 0).
// If a dimension of the image is smaller than the canvas, then:
// x = (canvas_width - image_width) / 2 and
// y = (canvas_height - image_height) / 2
func VpCenter(bounds image.Rectangle, canWidth, canHeight int) image.Point {
	xmargin, ymargin := 0, 0
	if bounds.Dx() < canWidth {
		xmargin = (canWidth - bounds.Dx()) / 2
	}
	if bounds.Dy() < canHeight {
		ymargin = (canHeight - bounds.Dy()) / 2
	}
	return image.Point{xmargin, ymargin}
}
