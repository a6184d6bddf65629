// Renders a flame fractal into an image file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/scottkirkwood/flamemaker"
	"github.com/scottkirkwood/flamemaker/flame"
	"github.com/scottkirkwood/flamemaker/palette"
)

const paletteColors = 8

var (
	seedFlag          = flag.String("seed", "", "Hex value for the seed to use")
	presetFlag        = flag.String("preset", "shark-fin", "Flame to render, one of "+strings.Join(flame.PresetNames(), ", "))
	sceneFlag         = flag.String("scene", "", "JSON scene file, replaces -preset")
	widthFlag         = flag.Int("width", 0, "Image width in pixels, 0 keeps the scene's")
	heightFlag        = flag.Int("height", 0, "Image height in pixels, 0 keeps the scene's")
	densityFlag       = flag.Int("density", 0, "Iterations per pixel, 0 keeps the scene's")
	workersFlag       = flag.Int("workers", 0, "Chains run in parallel, 0 for one per CPU")
	progressFlag      = flag.Bool("progress", false, "Run a single chain and print its progress")
	outFlag           = flag.String("out", "samples/flame-", "Output file prefix, the seed is appended")
	extFlag           = flag.String("ext", ".png", "Output format: .png, .bmp, .tiff, .ppm, .svg or .pdf")
	paletteImageFlag  = flag.String("palette-image", "", "Take the palette from the most frequent colors of this image")
	randomPaletteFlag = flag.Int("random-palette", 0, "Use that many random colors as palette")
	huePaletteFlag    = flag.Int("hue-palette", 0, "Use that many random hues as palette")
)

func main() {
	flag.Parse()
	scene, err := loadScene()
	if err != nil {
		fmt.Printf("Unable to load the scene: %v\n", err)
		os.Exit(1)
	}
	hexSeed := *seedFlag
	if hexSeed == "" {
		hexSeed = scene.Seed
	}
	g, err := flamemaker.Init(hexSeed)
	if err != nil {
		fmt.Printf("Unable to set the seed: %v\n", err)
	}
	if err := pickPalette(scene, g); err != nil {
		fmt.Printf("Unable to get palette: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	fmt.Printf("Rendering %dx%d at density %d, seed %x\n", scene.Width, scene.Height, scene.Density, g.GetSeed())
	var acc *flame.Accumulator
	if *progressFlag {
		acc, err = renderWithProgress(ctx, scene, g)
	} else {
		acc, err = scene.Flame.ComputeParallel(ctx, scene.Frame, scene.Width, scene.Height, scene.Density, g.GetSeed(), *workersFlag)
	}
	if err != nil {
		fmt.Printf("Unable to render: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered in %s\n", time.Since(start))

	if err := g.SafeWrite(scene.Picture(acc), *outFlag, *extFlag); err != nil {
		os.Exit(1)
	}
}

func loadScene() (*flamemaker.Scene, error) {
	var scene *flamemaker.Scene
	var err error
	if *sceneFlag != "" {
		scene, err = flamemaker.LoadScene(*sceneFlag)
	} else {
		scene, err = flamemaker.PresetScene(*presetFlag)
	}
	if err != nil {
		return nil, err
	}
	if *widthFlag > 0 || *heightFlag > 0 {
		w, h := scene.Width, scene.Height
		if *widthFlag > 0 {
			w = *widthFlag
		}
		if *heightFlag > 0 {
			h = *heightFlag
		}
		if err := scene.Resize(w, h); err != nil {
			return nil, err
		}
	}
	if *densityFlag > 0 {
		scene.Density = *densityFlag
	}
	return scene, nil
}

func pickPalette(scene *flamemaker.Scene, g flamemaker.Seed) error {
	var err error
	switch {
	case *paletteImageFlag != "":
		var p *palette.Interpolated
		p, err = flamemaker.PaletteFromImage(*paletteImageFlag, paletteColors)
		if err == nil {
			fmt.Printf("Num colors %d\n", len(p.Colors()))
			scene.Palette = p
		}
	case *randomPaletteFlag > 0:
		scene.Palette, err = palette.NewRandom(*randomPaletteFlag, g.Rand())
	case *huePaletteFlag > 0:
		scene.Palette, err = palette.NewHue(*huePaletteFlag, g.Rand())
	}
	return err
}

// renderWithProgress runs one chain a percent at a time.
func renderWithProgress(ctx context.Context, scene *flamemaker.Scene, g flamemaker.Seed) (*flame.Accumulator, error) {
	b, err := flame.NewAccumulatorBuilder(scene.Frame, scene.Width, scene.Height)
	if err != nil {
		return nil, err
	}
	chain := scene.Flame.NewChain(g.Rand())
	for !b.IsComplete() {
		if err := ctx.Err(); err != nil {
			fmt.Println()
			return nil, err
		}
		if _, err := chain.ComputeStep(b, scene.Density); err != nil {
			return nil, err
		}
		fmt.Printf("\r%3d%%", b.Progress())
	}
	fmt.Println()
	return b.Build(), nil
}
