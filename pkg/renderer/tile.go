package renderer

import "image"

// DefaultTileSize is the square tile edge used to split the frame into
// independent work units, matching the teacher's worker-pool tiling grain.
const DefaultTileSize = 32

// Tile is one rectangular, non-overlapping region of the frame buffer —
// safe for a single worker to own without synchronization.
type Tile struct {
	Bounds image.Rectangle
	ID     int
}

// splitIntoTiles divides a width x height frame into tileSize x tileSize
// tiles (the last row/column may be smaller), grounded on the teacher's
// tile-grid layout in pkg/renderer/progressive.go.
func splitIntoTiles(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	var tiles []Tile
	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			maxX, maxY := x+tileSize, y+tileSize
			if maxX > width {
				maxX = width
			}
			if maxY > height {
				maxY = height
			}
			tiles = append(tiles, Tile{
				Bounds: image.Rect(x, y, maxX, maxY),
				ID:     id,
			})
			id++
		}
	}
	return tiles
}
