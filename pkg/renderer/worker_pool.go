package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/lumenforge/gopathtracer/pkg/camera"
	"github.com/lumenforge/gopathtracer/pkg/core"
	"github.com/lumenforge/gopathtracer/pkg/integrator"
	"github.com/lumenforge/gopathtracer/pkg/scene"
	"github.com/lumenforge/gopathtracer/pkg/vecmath"
)

// ProgressFunc is called once per completed tile, with the number of
// tiles completed so far and the total tile count (spec §5: "The
// progress reporter is updated with an atomic increment per completed
// tile").
type ProgressFunc func(done, total int)

// Render partitions the camera's image into 16x16 tiles and renders them
// across a worker pool (spec §4.7/§5). numWorkers <= 0 selects
// runtime.NumCPU(). The returned Framebuffer and RenderStats are
// deterministic for identical inputs and worker counts, independent of
// scheduling interleaving, because each tile's RNG stream is seeded only
// from its own (tile_x, tile_y) (spec §5).
func Render(cam *camera.Camera, sc *scene.Scene, integ integrator.Integrator, spp, maxDepth, numWorkers int, onProgress ProgressFunc) (*Framebuffer, RenderStats) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	width, height := cam.Width(), cam.Height()
	fb := NewFramebuffer(width, height)

	tiles := NewTileGrid(width, height)
	tilesX := (width + TileSize - 1) / TileSize

	taskQueue := make(chan *Tile, len(tiles))
	for _, t := range tiles {
		taskQueue <- t
	}
	close(taskQueue)

	var done int64
	var totalSamples int64
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tile := range taskQueue {
				samples := renderTile(tile, tilesX, cam, sc, integ, spp, maxDepth, fb)
				atomic.AddInt64(&totalSamples, int64(samples))
				d := atomic.AddInt64(&done, 1)
				if onProgress != nil {
					onProgress(int(d), len(tiles))
				}
			}
		}()
	}
	wg.Wait()

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: int(totalSamples),
		TilesDone:    len(tiles),
		TotalTiles:   len(tiles),
	}
	return fb, stats
}

// renderTile renders one tile in row-major pixel order, writing directly
// into the shared framebuffer. Tiles never overlap, so concurrent writes
// from different workers touch disjoint cells (spec §5's "Pixels within
// a tile are written in row-major order by a single worker").
func renderTile(tile *Tile, tilesX int, cam *camera.Camera, sc *scene.Scene, integ integrator.Integrator, spp, maxDepth int, fb *Framebuffer) int {
	rng := tile.Seed(tilesX)
	samples := 0

	for y := tile.Y0; y < tile.Y1; y++ {
		for x := tile.X0; x < tile.X1; x++ {
			fb.Set(x, y, samplePixel(cam, sc, integ, rng, x, y, spp, maxDepth))
			samples += spp
		}
	}
	return samples
}

// samplePixel implements spec §4.7's per-pixel sampling rule: a single
// deterministic center sample when spp == 1, otherwise spp jittered
// samples averaged together.
func samplePixel(cam *camera.Camera, sc *scene.Scene, integ integrator.Integrator, rng *core.RNG, x, y, spp, maxDepth int) vecmath.Vec3 {
	if spp <= 1 {
		ray := cam.RayTo(float64(x)+0.5, float64(y)+0.5)
		return integ.Radiance(ray, sc, rng, maxDepth)
	}

	sum := vecmath.Vec3{}
	for s := 0; s < spp; s++ {
		jx, jy := rng.Vec2()
		ray := cam.RayTo(float64(x)+jx, float64(y)+jy)
		sum = sum.Add(integ.Radiance(ray, sc, rng, maxDepth))
	}
	return sum.Multiply(1.0 / float64(spp))
}
