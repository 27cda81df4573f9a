package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"time"

	"github.com/lumenforge/gopathtracer/pkg/camera"
	"github.com/lumenforge/gopathtracer/pkg/integrator"
	"github.com/lumenforge/gopathtracer/pkg/renderer"
	"github.com/lumenforge/gopathtracer/pkg/scene"
)

// Config holds the command-line configuration for a render.
type Config struct {
	Width    int
	Height   int
	SPP      int
	MaxDepth int
	Mode     string
	Workers  int
	Output   string
	Help     bool
}

func main() {
	cfg := parseFlags()
	if cfg.Help {
		flag.PrintDefaults()
		return
	}

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "gopathtracer: ", log.LstdFlags)

	desc := defaultScene(cfg.Width, cfg.Height)
	sc, err := scene.Build(desc, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scene construction failed: %v\n", err)
		os.Exit(1)
	}

	cam := camera.New(camera.Config{
		LookFrom: desc.Camera.LookFrom,
		LookAt:   desc.Camera.LookAt,
		Up:       desc.Camera.Up,
		VFOV:     desc.Camera.VFOV,
		Width:    cfg.Width,
		Height:   cfg.Height,
	})

	integ := integrator.New(integrator.Config{
		Mode:       mode,
		MaxDepth:   cfg.MaxDepth,
		Background: sc.Background,
	})

	fmt.Println("Starting path tracer...")
	start := time.Now()

	// A samples-per-pixel value supplied by the scene overrides the flag.
	spp := cfg.SPP
	if desc.SamplesPerPixel > 0 {
		spp = sc.SamplesPerPixel
	}

	fb, stats := renderer.Render(cam, sc, integ, spp, cfg.MaxDepth, cfg.Workers, func(done, total int) {
		fmt.Printf("\rtiles: %d/%d", done, total)
	})

	fmt.Printf("\nRender completed in %v (%d samples over %d pixels)\n", time.Since(start), stats.TotalSamples, stats.TotalPixels)

	if err := writePNG(cfg.Output, fb); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", cfg.Output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", cfg.Output)
}

func parseFlags() Config {
	cfg := Config{}
	flag.IntVar(&cfg.Width, "width", 640, "image width in pixels")
	flag.IntVar(&cfg.Height, "height", 480, "image height in pixels")
	flag.IntVar(&cfg.SPP, "spp", 16, "samples per pixel")
	flag.IntVar(&cfg.MaxDepth, "max-depth", 8, "maximum path recursion depth")
	flag.StringVar(&cfg.Mode, "mode", "matte-reflect", "render mode: normal, object, flat, lambert, matte-reflect, barycentric, aabb")
	flag.IntVar(&cfg.Workers, "workers", 0, "number of parallel workers (0 = auto-detect CPU count)")
	flag.StringVar(&cfg.Output, "out", "render.png", "output PNG path")
	flag.BoolVar(&cfg.Help, "help", false, "show usage")
	flag.Parse()
	return cfg
}

func parseMode(name string) (integrator.Mode, error) {
	switch name {
	case "normal":
		return integrator.Normal, nil
	case "object":
		return integrator.Object, nil
	case "flat":
		return integrator.Flat, nil
	case "lambert":
		return integrator.Lambert, nil
	case "matte-reflect":
		return integrator.MatteReflect, nil
	case "barycentric":
		return integrator.Barycentric, nil
	case "aabb":
		return integrator.AABBMode, nil
	default:
		return 0, fmt.Errorf("unknown render mode %q", name)
	}
}

// writePNG tone-maps the linear framebuffer with a simple gamma curve
// and writes it as an 8-bit PNG (spec §6: "external codec encodes as
// EXR/PNG" — this is that external collaborator, kept thin and out of
// the core render path).
func writePNG(path string, fb *renderer.Framebuffer) error {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: toSRGB8(c.X),
				G: toSRGB8(c.Y),
				B: toSRGB8(c.Z),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func toSRGB8(linear float64) uint8 {
	if linear <= 0 {
		return 0
	}
	if linear >= 1 {
		return 255
	}
	return uint8(math.Pow(linear, 1.0/2.2)*255 + 0.5)
}
