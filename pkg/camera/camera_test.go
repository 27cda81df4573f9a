package camera

import (
	"math"
	"testing"

	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

func TestCameraLooksDownNegativeZ(t *testing.T) {
	cam := New(Config{
		LookFrom: vecmath.NewVec3(0, 0, 0),
		LookAt:   vecmath.NewVec3(0, 0, -1),
		Up:       vecmath.NewVec3(0, 1, 0),
		VFOV:     90,
		Width:    100,
		Height:   100,
	})
	ray := cam.RayTo(50, 50)
	if ray.Direction.Subtract(vecmath.NewVec3(0, 0, -1)).Length() > 1e-6 {
		t.Errorf("center ray direction = %v, want (0,0,-1)", ray.Direction)
	}
	if ray.Origin != (vecmath.Vec3{}) {
		t.Errorf("ray origin = %v, want look-from", ray.Origin)
	}
}

func TestCameraRayIsNormalized(t *testing.T) {
	cam := New(Config{
		LookFrom: vecmath.NewVec3(1, 2, 3),
		LookAt:   vecmath.NewVec3(0, 0, 0),
		Up:       vecmath.NewVec3(0, 1, 0),
		VFOV:     60,
		Width:    320,
		Height:   200,
	})
	for _, p := range [][2]float64{{0, 0}, {320, 0}, {0, 200}, {160, 100}} {
		ray := cam.RayTo(p[0], p[1])
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("RayTo(%v,%v) direction not normalized: %v", p[0], p[1], ray.Direction.Length())
		}
	}
}

func TestCameraWidthHeight(t *testing.T) {
	cam := New(Config{Width: 640, Height: 480, VFOV: 40, Up: vecmath.NewVec3(0, 1, 0), LookFrom: vecmath.NewVec3(0, 0, 1)})
	if cam.Width() != 640 || cam.Height() != 480 {
		t.Errorf("Width/Height = %d/%d, want 640/480", cam.Width(), cam.Height())
	}
}
