// Package renderer implements the tiled parallel render loop from
// spec.md §4.7/§5: 16x16 tiles dispatched to a worker pool, each with an
// independent PCG-32 stream, producing a deterministic framebuffer.
package renderer

import (
	"github.com/lumenforge/gopathtracer/pkg/core"
)

// TileSize is the fixed tile edge length (spec §4.7: "Image is
// partitioned into 16x16 tiles").
const TileSize = 16

// Tile is a rectangular pixel region dispatched to a single worker.
type Tile struct {
	ID         int
	X0, Y0     int
	X1, Y1     int // exclusive upper bounds
	TileX      int
	TileY      int
}

// NewTileGrid partitions a width x height image into 16x16 tiles in
// row-major order, used both for dispatch and for the tile seed formula
// (spec §4.7: "A tile's seed is tile_y * tiles_x + tile_x").
func NewTileGrid(width, height int) []*Tile {
	tilesX := (width + TileSize - 1) / TileSize
	tilesY := (height + TileSize - 1) / TileSize

	var tiles []*Tile
	id := 0
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * TileSize
			y0 := ty * TileSize
			x1 := min(x0+TileSize, width)
			y1 := min(y0+TileSize, height)
			tiles = append(tiles, &Tile{
				ID: id, X0: x0, Y0: y0, X1: x1, Y1: y1, TileX: tx, TileY: ty,
			})
			id++
		}
	}
	return tiles
}

// Seed returns the tile's PCG-32 RNG, seeded from (1, tile_y*tiles_x+tile_x)
// (spec §4.7).
func (t *Tile) Seed(tilesX int) *core.RNG {
	seq := uint64(t.TileY*tilesX + t.TileX)
	return core.NewRNG(1, seq)
}
