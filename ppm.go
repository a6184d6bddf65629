package flamemaker

import (
	"bufio"
	"fmt"
	"io"

	"github.com/scottkirkwood/flamemaker/palette"
)

// PPMMaxIntensity is the channel maximum written by SafeWrite for .ppm files
const PPMMaxIntensity = 100

// WritePPM writes pic as a plain text (P3) PPM image, gamma encoding each
// channel into [0, max].
func WritePPM(w io.Writer, pic Picture, max int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n%d\n", pic.Acc.Width(), pic.Acc.Height(), max)
	for y := 0; y < pic.Acc.Height(); y++ {
		for x := 0; x < pic.Acc.Width(); x++ {
			c, err := pic.Acc.Color(pic.Palette, pic.Background, x, y)
			if err != nil {
				return err
			}
			if x > 0 {
				bw.WriteByte(' ')
			}
			r, _ := palette.SRGBEncode(c.R(), max)
			g, _ := palette.SRGBEncode(c.G(), max)
			b, _ := palette.SRGBEncode(c.B(), max)
			fmt.Fprintf(bw, "%d %d %d", r, g, b)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
