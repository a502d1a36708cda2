package renderer

// A tile is one independent unit of render work: a rectangular pixel block
// owned exclusively by the worker processing it.
type tile struct {
	index      int
	x, y, w, h uint32
}

// Partition a frame into square tiles of the given edge length. Tiles in
// the last row/column are truncated at the frame bounds. Every pixel
// belongs to exactly one tile.
func makeTiles(frameW, frameH, tileSize uint32) []tile {
	tiles := make([]tile, 0, ((frameW+tileSize-1)/tileSize)*((frameH+tileSize-1)/tileSize))

	index := 0
	for y := uint32(0); y < frameH; y += tileSize {
		h := tileSize
		if y+h > frameH {
			h = frameH - y
		}
		for x := uint32(0); x < frameW; x += tileSize {
			w := tileSize
			if x+w > frameW {
				w = frameW - x
			}
			tiles = append(tiles, tile{index: index, x: x, y: y, w: w, h: h})
			index++
		}
	}

	return tiles
}
