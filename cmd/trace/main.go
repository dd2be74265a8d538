package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/user/raytracer/internal/display"
	"github.com/user/raytracer/internal/engine"
	"github.com/user/raytracer/internal/scene"
	"github.com/user/raytracer/internal/ui"
)

func main() {
	scenePath := flag.String("scene", "", "path to scene JSON file (empty: built-in demo scene)")
	headless := flag.Bool("headless", false, "render without a window and save the image")
	output := flag.String("out", "render.png", "output file for headless render (.png or .webp)")
	width := flag.Int("width", 0, "override render width")
	height := flag.Int("height", 0, "override render height")
	depth := flag.Int("depth", 0, "override max recursion depth")
	shadows := flag.Bool("shadows", true, "enable shadow rays")
	reflections := flag.Bool("reflections", true, "enable reflection rays")
	frontend := flag.String("display", "fyne", "interactive frontend: fyne or gl")
	mode := flag.String("mode", "trace", "headless render mode: trace, wireframe or flat")
	flag.Parse()

	// The toggles only override the scene document when given explicitly;
	// their defaults must not clobber a document that disables a feature.
	var shadowsOv, reflectionsOv *bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shadows":
			shadowsOv = shadows
		case "reflections":
			reflectionsOv = reflections
		}
	})

	log.Printf("raytracer: scene=%q headless=%v mode=%s out=%s display=%s", *scenePath, *headless, *mode, *output, *frontend)

	if *headless || *frontend == "gl" {
		rt, err := buildTracer(*scenePath, *width, *height, *depth, shadowsOv, reflectionsOv)
		if err != nil {
			log.Println("setup error:", err)
			os.Exit(1)
		}
		if *headless {
			if err := renderHeadless(rt, *mode, *output); err != nil {
				log.Println("headless render error:", err)
				os.Exit(1)
			}
			return
		}
		if err := display.Run(rt, "Go Ray Tracer"); err != nil {
			log.Println("display error:", err)
			os.Exit(1)
		}
		return
	}

	if err := ui.Run(*scenePath); err != nil {
		log.Println("ui error:", err)
		os.Exit(1)
	}
}

func buildTracer(scenePath string, width, height, depth int, shadows, reflections *bool) (*engine.RayTracer, error) {
	doc := scene.Default()
	baseDir := "."
	if scenePath != "" {
		loaded, err := scene.Load(scenePath)
		if err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
		doc = loaded
		baseDir = filepath.Dir(scenePath)
	}

	doc.Settings.Override(width, height, depth, shadows, reflections)

	rt, err := engine.BuildRayTracer(doc, baseDir)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return rt, nil
}

func renderHeadless(rt *engine.RayTracer, mode, outPath string) error {
	var img image.Image
	switch mode {
	case "trace":
		rt.Render()
		img = rt.Framebuffer().Image()
	case "wireframe":
		img = rt.RenderWireframe()
	case "flat":
		img = rt.RenderFlat()
	default:
		return fmt.Errorf("unknown render mode %q", mode)
	}

	if err := engine.SaveImage(outPath, img); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	log.Printf("raytracer: wrote %s", outPath)
	return nil
}
