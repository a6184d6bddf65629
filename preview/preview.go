// Renders a flame progressively in the terminal, two grid rows per line
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/scottkirkwood/flamemaker"
	"github.com/scottkirkwood/flamemaker/flame"
	"github.com/scottkirkwood/flamemaker/palette"
)

// upperHalf shows the even row in its foreground, the odd one in its background
const upperHalf = '▀'

var (
	seedFlag    = flag.String("seed", "", "Hex value for the seed to use")
	presetFlag  = flag.String("preset", "shark-fin", "Flame to render, one of "+strings.Join(flame.PresetNames(), ", "))
	sceneFlag   = flag.String("scene", "", "JSON scene file, replaces -preset")
	densityFlag = flag.Int("density", 0, "Iterations per pixel, 0 keeps the scene's")
)

type preview struct {
	screen  tcell.Screen
	scene   *flamemaker.Scene
	seed    flamemaker.Seed
	builder *flame.AccumulatorBuilder
	chain   *flame.Chain
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Printf("Preview failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var scene *flamemaker.Scene
	var err error
	if *sceneFlag != "" {
		scene, err = flamemaker.LoadScene(*sceneFlag)
	} else {
		scene, err = flamemaker.PresetScene(*presetFlag)
	}
	if err != nil {
		return err
	}
	if *densityFlag > 0 {
		scene.Density = *densityFlag
	}
	hexSeed := *seedFlag
	if hexSeed == "" {
		hexSeed = scene.Seed
	}
	g, err := flamemaker.Init(hexSeed)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	p := &preview{screen: screen, scene: scene, seed: g}
	if err := p.restart(); err != nil {
		return err
	}
	return p.loop()
}

// restart fits the scene to the screen and starts a new chain.
func (p *preview) restart() error {
	w, h := p.screen.Size()
	if err := p.scene.Resize(w, 2*h); err != nil {
		return err
	}
	if p.builder == nil {
		b, err := flame.NewAccumulatorBuilder(p.scene.Frame, p.scene.Width, p.scene.Height)
		if err != nil {
			return err
		}
		p.builder = b
	} else if err := p.builder.Clear(p.scene.Frame, p.scene.Width, p.scene.Height); err != nil {
		return err
	}
	p.chain = p.scene.Flame.NewChain(p.seed.Rand())
	return nil
}

func (p *preview) loop() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		if p.builder.IsComplete() {
			// idle until a key or a resize
			if quit, err := p.handle(<-events); quit || err != nil {
				return err
			}
			continue
		}
		select {
		case ev := <-events:
			if quit, err := p.handle(ev); quit || err != nil {
				return err
			}
		default:
			if _, err := p.chain.ComputeStep(p.builder, p.scene.Density); err != nil {
				return err
			}
			if err := drawPicture(p.screen, p.scene.Picture(p.builder.Build())); err != nil {
				return err
			}
			p.screen.Show()
		}
	}
}

func (p *preview) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true, nil
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			return false, p.restart()
		}
	case *tcell.EventResize:
		p.screen.Sync()
		return false, p.restart()
	}
	return false, nil
}

// drawPicture paints grid rows 2y and 2y+1 into screen line y. A missing
// last odd row shows as background.
func drawPicture(s tcell.Screen, pic flamemaker.Picture) error {
	for y := 0; 2*y < pic.Acc.Height(); y++ {
		for x := 0; x < pic.Acc.Width(); x++ {
			top, err := pic.Acc.Color(pic.Palette, pic.Background, x, 2*y)
			if err != nil {
				return err
			}
			bottom := pic.Background
			if 2*y+1 < pic.Acc.Height() {
				if bottom, err = pic.Acc.Color(pic.Palette, pic.Background, x, 2*y+1); err != nil {
					return err
				}
			}
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			s.SetContent(x, y, upperHalf, nil, style)
		}
	}
	return nil
}

func cellColor(c palette.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
