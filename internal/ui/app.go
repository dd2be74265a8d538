// Package ui is the interactive fyne frontend: a preview canvas over the ray
// tracer with controls for shadows, reflections, recursion depth and camera.
package ui

import (
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/go-gl/mathgl/mgl64"
	xdraw "golang.org/x/image/draw"

	"github.com/user/raytracer/internal/engine"
	"github.com/user/raytracer/internal/scene"
)

// Maximum on-screen preview size; larger framebuffers are scaled down for
// display only, the full-resolution buffer is kept for saving.
const (
	maxDisplayW = 1024
	maxDisplayH = 768
)

// Run starts the interactive UI. scenePath may be empty, in which case the
// built-in default scene is used.
func Run(scenePath string) error {
	log.Printf("ui: starting with scene %q", scenePath)

	a := app.New()
	w := a.NewWindow("Go Ray Tracer")

	doc, baseDir, err := loadSceneDoc(scenePath)
	if err != nil {
		return err
	}

	rt, err := engine.BuildRayTracer(doc, baseDir)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	imgCanvas := canvas.NewImageFromImage(rt.Framebuffer().Image())
	imgCanvas.FillMode = canvas.ImageFillContain
	fbW, fbH := rt.Framebuffer().Size()
	dispW, dispH := fitDisplay(fbW, fbH)
	imgCanvas.SetMinSize(fyne.NewSize(float32(dispW), float32(dispH)))

	status := widget.NewLabel("Idle")

	// Scene edits are fenced: while a render is in flight no control may
	// touch the tracer, so every mutation goes through withScene below.
	var mu sync.Mutex
	rendering := false

	startRender := func() {
		mu.Lock()
		if rendering {
			mu.Unlock()
			return
		}
		rendering = true
		mu.Unlock()

		status.SetText("Rendering...")
		go func() {
			start := time.Now()
			rt.Render()
			preview := scalePreview(rt.Framebuffer().Image())

			imgCanvas.Image = preview
			imgCanvas.Refresh()
			status.SetText(fmt.Sprintf("Done in %v", time.Since(start).Round(time.Millisecond)))

			mu.Lock()
			rendering = false
			mu.Unlock()
		}()
	}

	// withScene applies a tracer mutation only when no render is running,
	// then kicks off a new render.
	withScene := func(apply func()) {
		mu.Lock()
		if rendering {
			mu.Unlock()
			status.SetText("Busy rendering, try again")
			return
		}
		apply()
		mu.Unlock()
		startRender()
	}

	shadowsCheck := widget.NewCheck("Shadows", func(on bool) {
		withScene(func() { rt.EnableShadows(on) })
	})
	shadowsCheck.SetChecked(rt.ShadowsEnabled())

	reflectionsCheck := widget.NewCheck("Reflections", func(on bool) {
		withScene(func() { rt.EnableReflections(on) })
	})
	reflectionsCheck.SetChecked(rt.ReflectionsEnabled())

	depthEntry := widget.NewEntry()
	depthEntry.SetText(strconv.Itoa(rt.MaxDepth()))
	applyDepth := widget.NewButton("Apply depth", func() {
		d, err := strconv.Atoi(depthEntry.Text)
		if err != nil || d < 1 {
			status.SetText("Depth must be a positive integer")
			return
		}
		withScene(func() { rt.SetMaxDepth(d) })
	})

	// Camera controls.
	cam := rt.Scene().Camera()
	posX, posY, posZ := newFloatEntry(cam.Position[0]), newFloatEntry(cam.Position[1]), newFloatEntry(cam.Position[2])
	lookX, lookY, lookZ := newFloatEntry(cam.Target[0]), newFloatEntry(cam.Target[1]), newFloatEntry(cam.Target[2])
	fovEntry := newFloatEntry(cam.FOV)

	applyCamera := widget.NewButton("Apply camera", func() {
		withScene(func() {
			c := rt.Scene().Camera()
			c.Position = mglVec(parseF(posX, c.Position[0]), parseF(posY, c.Position[1]), parseF(posZ, c.Position[2]))
			c.Target = mglVec(parseF(lookX, c.Target[0]), parseF(lookY, c.Target[1]), parseF(lookZ, c.Target[2]))
			c.FOV = parseF(fovEntry, c.FOV)
			rt.Scene().SetCamera(c)
		})
	})

	reloadButton := widget.NewButton("Reload scene", func() {
		withScene(func() {
			newDoc, newBase, err := loadSceneDoc(scenePath)
			if err != nil {
				status.SetText(fmt.Sprintf("Reload failed: %v", err))
				return
			}
			if err := engine.PopulateScene(rt.Scene(), newDoc, newBase); err != nil {
				status.SetText(fmt.Sprintf("Reload failed: %v", err))
				return
			}
			doc = newDoc
			log.Printf("ui: scene reloaded")
		})
	})

	outEntry := widget.NewEntry()
	outEntry.SetText("render.png")
	saveButton := widget.NewButton("Save image", func() {
		mu.Lock()
		busy := rendering
		mu.Unlock()
		if busy {
			status.SetText("Busy rendering, try again")
			return
		}
		if err := engine.SaveImage(outEntry.Text, rt.Framebuffer().Image()); err != nil {
			status.SetText(fmt.Sprintf("Save failed: %v", err))
			return
		}
		status.SetText("Saved " + outEntry.Text)
	})

	controls := container.NewVBox(
		widget.NewButton("Render", startRender),
		shadowsCheck,
		reflectionsCheck,
		container.NewGridWithColumns(2, widget.NewLabel("Max depth"), depthEntry),
		applyDepth,
		widget.NewSeparator(),
		widget.NewLabel("Camera"),
		container.NewGridWithColumns(2,
			widget.NewLabel("Pos X"), posX,
			widget.NewLabel("Pos Y"), posY,
			widget.NewLabel("Pos Z"), posZ,
			widget.NewLabel("Look X"), lookX,
			widget.NewLabel("Look Y"), lookY,
			widget.NewLabel("Look Z"), lookZ,
			widget.NewLabel("FOV"), fovEntry,
		),
		applyCamera,
		widget.NewSeparator(),
		reloadButton,
		container.NewGridWithColumns(2, widget.NewLabel("Output"), outEntry),
		saveButton,
		status,
	)

	w.SetContent(container.NewBorder(nil, nil, nil, controls, imgCanvas))
	startRender()
	w.ShowAndRun()
	return nil
}

func loadSceneDoc(scenePath string) (*scene.Scene, string, error) {
	if scenePath == "" {
		return scene.Default(), ".", nil
	}
	doc, err := scene.Load(scenePath)
	if err != nil {
		return nil, "", err
	}
	return doc, filepath.Dir(scenePath), nil
}

// scalePreview downsamples the framebuffer image when it exceeds the preview
// area; full-size buffers are shown as-is.
func scalePreview(img *image.RGBA) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxDisplayW && b.Dy() <= maxDisplayH {
		return img
	}
	w, h := fitDisplay(b.Dx(), b.Dy())
	preview := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(preview, preview.Bounds(), img, b, xdraw.Src, nil)
	return preview
}

// fitDisplay shrinks (w, h) proportionally into the preview area.
func fitDisplay(w, h int) (int, int) {
	if w <= maxDisplayW && h <= maxDisplayH {
		return w, h
	}
	aspect := float64(w) / float64(h)
	outW := maxDisplayW
	outH := int(float64(outW) / aspect)
	if outH > maxDisplayH {
		outH = maxDisplayH
		outW = int(float64(outH) * aspect)
	}
	return outW, outH
}

func mglVec(x, y, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, y, z}
}

func newFloatEntry(v float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%.2f", v))
	return e
}

func parseF(e *widget.Entry, def float64) float64 {
	v, err := strconv.ParseFloat(e.Text, 64)
	if err != nil {
		return def
	}
	return v
}
