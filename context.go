package flamemaker

import (
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/pdf"
	"github.com/tdewolff/canvas/svg"
)

// Context draws pictures as vector graphics, one square per grid cell.
type Context struct {
	c   *canvas.Canvas
	ctx *canvas.Context
}

// NewContext returns an empty canvas of width x height cells.
func NewContext(width, height float64) *Context {
	ctx := &Context{
		c: canvas.New(width, height),
	}
	ctx.ctx = canvas.NewContext(ctx.c)
	return ctx
}

// WriteSVG writes to an SVG file
func (ctx *Context) WriteSVG(fname string) error {
	return ctx.c.WriteFile(fname, svg.Writer)
}

// WritePDF writes to a PDF file
func (ctx *Context) WritePDF(fname string) error {
	return ctx.c.WriteFile(fname, pdf.Writer)
}

// FillRect fills a w x h rectangle whose bottom left corner is x, y.
func (ctx *Context) FillRect(col color.Color, x, y, w, h float64) {
	ctx.ctx.SetFillColor(col)
	ctx.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// DrawPicture paints the background over the whole canvas, then one unit
// square for every cell that was hit. The canvas y axis points up, so row 0
// of the picture goes at the top.
func (ctx *Context) DrawPicture(pic Picture) error {
	w, h := pic.Acc.Width(), pic.Acc.Height()
	ctx.FillRect(pic.Background, 0, 0, float64(w), float64(h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hits, err := pic.Acc.Hits(x, y)
			if err != nil {
				return err
			}
			if hits == 0 {
				continue
			}
			c, err := pic.Acc.Color(pic.Palette, pic.Background, x, y)
			if err != nil {
				return err
			}
			ctx.FillRect(c, float64(x), float64(h-1-y), 1, 1)
		}
	}
	return nil
}
