package renderer

import (
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/camera"
	"github.com/lumenforge/gopathtracer/pkg/integrator"
	"github.com/lumenforge/gopathtracer/pkg/scene"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func smallScene(t *testing.T) *scene.Scene {
	t.Helper()
	desc := scene.Description{
		Materials: []scene.MaterialDescription{
			{Type: scene.MaterialDiffuse, Reflectance: scene.FlatReflectance(vecmath.NewVec3(0.6, 0.6, 0.6))},
		},
		Shapes: []scene.ShapeDescription{
			{Type: scene.ShapeSphere, MaterialID: 0, Center: vecmath.NewVec3(0, 0, -1), Radius: 0.5},
		},
		BackgroundColor: func() *vecmath.Vec3 { c := vecmath.NewVec3(0.4, 0.5, 0.7); return &c }(),
	}
	sc, err := scene.Build(desc, nil, nil)
	if err != nil {
		t.Fatalf("scene.Build failed: %v", err)
	}
	return sc
}

func TestRenderProducesFullFramebuffer(t *testing.T) {
	sc := smallScene(t)
	cam := camera.New(camera.Config{
		LookFrom: vecmath.NewVec3(0, 0, 1), LookAt: vecmath.NewVec3(0, 0, -1), Up: vecmath.NewVec3(0, 1, 0),
		VFOV: 60, Width: 24, Height: 18,
	})
	integ := integrator.New(integrator.Config{Mode: integrator.Normal, MaxDepth: 2})

	fb, stats := Render(cam, sc, integ, 1, 2, 2, nil)
	if fb.Width != 24 || fb.Height != 18 {
		t.Fatalf("framebuffer dims = %dx%d, want 24x18", fb.Width, fb.Height)
	}
	if stats.TotalPixels != 24*18 {
		t.Errorf("TotalPixels = %d, want %d", stats.TotalPixels, 24*18)
	}
	if stats.TilesDone != stats.TotalTiles {
		t.Errorf("TilesDone = %d, want TotalTiles = %d", stats.TilesDone, stats.TotalTiles)
	}
}

func TestRenderDeterministicAcrossWorkerCounts(t *testing.T) {
	sc := smallScene(t)
	cam := camera.New(camera.Config{
		LookFrom: vecmath.NewVec3(0, 0, 1), LookAt: vecmath.NewVec3(0, 0, -1), Up: vecmath.NewVec3(0, 1, 0),
		VFOV: 60, Width: 32, Height: 32,
	})
	integ := integrator.New(integrator.Config{Mode: integrator.MatteReflect, MaxDepth: 4, Background: vecmath.NewVec3(0.4, 0.5, 0.7)})

	fb1, _ := Render(cam, sc, integ, 2, 4, 1, nil)
	fb4, _ := Render(cam, sc, integ, 2, 4, 4, nil)

	for i := range fb1.Pixels {
		if fb1.Pixels[i].Subtract(fb4.Pixels[i]).Length() > 1e-12 {
			t.Fatalf("pixel %d differs between 1-worker and 4-worker renders: %v vs %v", i, fb1.Pixels[i], fb4.Pixels[i])
		}
	}
}

func TestRenderProgressCallback(t *testing.T) {
	sc := smallScene(t)
	cam := camera.New(camera.Config{
		LookFrom: vecmath.NewVec3(0, 0, 1), LookAt: vecmath.NewVec3(0, 0, -1), Up: vecmath.NewVec3(0, 1, 0),
		VFOV: 60, Width: 16, Height: 16,
	})
	integ := integrator.New(integrator.Config{Mode: integrator.Normal, MaxDepth: 1})

	calls := 0
	lastDone := 0
	_, stats := Render(cam, sc, integ, 1, 1, 2, func(done, total int) {
		calls++
		lastDone = done
	})
	if calls == 0 {
		t.Error("progress callback never invoked")
	}
	if lastDone != stats.TotalTiles {
		t.Errorf("final progress done = %d, want %d", lastDone, stats.TotalTiles)
	}
}

func TestFramebufferSetAt(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Set(2, 1, vecmath.NewVec3(1, 2, 3))
	if got := fb.At(2, 1); got != (vecmath.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("At(2,1) = %v, want (1,2,3)", got)
	}
}
