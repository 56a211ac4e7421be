package game

// Coords returns the column and row of a tile index.
func (s *WorldState) Coords(tile int) (x, y int) {
	return tile % s.Width, tile / s.Width
}

// Index returns the tile index of a column and row, or -1 when off the map.
func (s *WorldState) Index(x, y int) int {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return -1
	}
	return y*s.Width + x
}

// Neighbors returns the tiles adjacent to tile (8-neighbourhood) in index order.
func (s *WorldState) Neighbors(tile int) []int {
	return s.TilesInRadius(tile, 1, false)
}

// TilesInRadius returns every tile within Chebyshev distance r of tile in
// index order, the center included when self is set.
func (s *WorldState) TilesInRadius(tile, r int, self bool) []int {
	x, y := s.Coords(tile)
	tiles := make([]int, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 && !self {
				continue
			}
			if i := s.Index(x+dx, y+dy); i >= 0 {
				tiles = append(tiles, i)
			}
		}
	}
	return tiles
}

// Distance is the Chebyshev distance between two tiles.
func (s *WorldState) Distance(a, b int) int {
	ax, ay := s.Coords(a)
	bx, by := s.Coords(b)
	dx, dy := ax-bx, ay-by
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

func (s *WorldState) Adjacent(a, b int) bool {
	return a != b && s.Distance(a, b) == 1
}

// isWater reports whether a terrain can only be crossed by naval units.
func isWater(t TerrainType) bool {
	return t == Water || t == Ocean
}

// isLand includes ice, which land units walk on.
func isLand(t TerrainType) bool {
	return !isWater(t)
}
