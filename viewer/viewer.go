// Renders a scene file progressively in a window, starting over whenever
// the file is saved
package main

import (
	"flag"
	"fmt"
	"hash/crc64"
	"image"
	"image/color"
	"image/draw"
	"io/ioutil"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/scottkirkwood/flamemaker"
	"github.com/scottkirkwood/flamemaker/flame"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

const (
	maxWinWidth  = 1000
	maxWinHeight = 768
)

var (
	seedFlag   = flag.String("seed", "", "Hex value for the seed to use")
	presetFlag = flag.String("preset", "shark-fin", "Flame shown when there is no scene file")
	outFlag    = flag.String("out", "samples/flame-", "Prefix of the files saved with S")
)

// reloadEvent is sent to the window when the scene file changed.
type reloadEvent struct {
	scene *flamemaker.Scene
}

// render is one progressive rendering of a scene.
type render struct {
	scene   *flamemaker.Scene
	seed    flamemaker.Seed
	builder *flame.AccumulatorBuilder
	chain   *flame.Chain
}

func newRender(scene *flamemaker.Scene) (*render, error) {
	hexSeed := *seedFlag
	if hexSeed == "" {
		hexSeed = scene.Seed
	}
	g, err := flamemaker.Init(hexSeed)
	if err != nil {
		return nil, err
	}
	b, err := flame.NewAccumulatorBuilder(scene.Frame, scene.Width, scene.Height)
	if err != nil {
		return nil, err
	}
	return &render{
		scene:   scene,
		seed:    g,
		builder: b,
		chain:   scene.Flame.NewChain(g.Rand()),
	}, nil
}

// step runs one more percent, returns true once complete.
func (r *render) step() (bool, error) {
	return r.chain.ComputeStep(r.builder, r.scene.Density)
}

func (r *render) picture() flamemaker.Picture {
	return r.scene.Picture(r.builder.Build())
}

func main() {
	flag.Parse()
	sceneFile := flag.Arg(0)
	scene, err := loadScene(sceneFile)
	if err != nil {
		fmt.Printf("Unable to load the scene: %v\n", err)
		return
	}
	r, err := newRender(scene)
	if err != nil {
		fmt.Printf("Unable to start rendering: %v\n", err)
		return
	}
	driver.Main(func(s screen.Screen) {
		view(s, r, sceneFile)
	})
}

func loadScene(fname string) (*flamemaker.Scene, error) {
	if fname == "" {
		return flamemaker.PresetScene(*presetFlag)
	}
	return flamemaker.LoadScene(fname)
}

func view(s screen.Screen, r *render, sceneFile string) {
	winSize := image.Point{r.scene.Width, r.scene.Height}
	if winSize.X > maxWinWidth {
		winSize.X = maxWinWidth
	}
	if winSize.Y > maxWinHeight {
		winSize.Y = maxWinHeight
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  winSize.X,
		Height: winSize.Y,
		Title:  "flame",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer w.Release()

	b, err := s.NewBuffer(image.Point{r.scene.Width, r.scene.Height})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer func() { b.Release() }()

	if sceneFile != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fmt.Printf("Failed to create watcher: %v\n", err)
		} else {
			defer watcher.Close()
			// editors often replace the file, so watch its folder
			if err := watcher.Add(filepath.Dir(sceneFile)); err != nil {
				fmt.Printf("Problem adding folder watcher: %v\n", err)
			}
			fmt.Printf("Monitoring %q\n", sceneFile)
			go watchForEvents(watcher, sceneFile, w)
		}
	}

	var sz size.Event
	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			switch e.Code {
			case key.CodeEscape, key.CodeQ:
				return
			case key.CodeS:
				r.seed.SafeWrite(r.picture(), *outFlag, ".png")
			case key.CodeR:
				// restart with a new chain from the same seed
				if err := r.builder.Clear(r.scene.Frame, r.scene.Width, r.scene.Height); err != nil {
					fmt.Println(err)
					return
				}
				r.chain = r.scene.Flame.NewChain(r.seed.Rand())
				w.Send(paint.Event{})
			}

		case reloadEvent:
			nr, err := newRender(e.scene)
			if err != nil {
				fmt.Printf("Unable to restart: %v\n", err)
				continue
			}
			if nr.scene.Width != r.scene.Width || nr.scene.Height != r.scene.Height {
				b.Release()
				b, err = s.NewBuffer(image.Point{nr.scene.Width, nr.scene.Height})
				if err != nil {
					fmt.Println(err)
					return
				}
			}
			r = nr
			fmt.Printf("Reloaded %dx%d\n", r.scene.Width, r.scene.Height)
			w.Send(paint.Event{})

		case paint.Event:
			done, err := r.step()
			if err != nil {
				fmt.Printf("Render error: %v\n", err)
				return
			}
			if err := r.picture().Draw(b.RGBA(), image.Point{}); err != nil {
				fmt.Printf("Render error: %v\n", err)
				return
			}
			dp := flamemaker.VpCenter(b.Bounds(), sz.WidthPx, sz.HeightPx)
			if dp != (image.Point{}) {
				w.Fill(sz.Bounds(), color.Black, draw.Src)
			}
			w.Upload(dp, b, b.Bounds())
			w.Publish()
			if done {
				fmt.Printf("Done, %d%%\n", r.builder.Progress())
			} else {
				w.Send(paint.Event{})
			}

		case size.Event:
			sz = e

		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}

		case error:
			fmt.Printf("Screen error: %v\n", e)
			return

		case mouse.Event:
		}
	}
}

func watchForEvents(watcher *fsnotify.Watcher, sceneFile string, w screen.Window) {
	sceneFile = filepath.Clean(sceneFile)
	lastCrc := fileChecksum(sceneFile)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sceneFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			checksum := fileChecksum(sceneFile)
			if checksum == lastCrc {
				continue
			}
			lastCrc = checksum
			scene, err := flamemaker.LoadScene(sceneFile)
			if err != nil {
				// half written or broken, wait for the next save
				fmt.Printf("Unable to reload: %v\n", err)
				continue
			}
			w.Send(reloadEvent{scene: scene})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Println("ERROR", err)
		}
	}
}

func fileChecksum(fname string) uint64 {
	h := crc64.New(crc64.MakeTable(crc64.ECMA))
	bytes, err := ioutil.ReadFile(fname)
	if err != nil {
		fmt.Printf("Readfile error %q: %v\n", fname, err)
		return 0
	}
	h.Write(bytes)
	return h.Sum64()
}
