package world

import "github.com/VoidMesh/tileworld/internal/coord"

// Walkable reports whether c can be entered, and whether a tile exists there.
func (s *Store) Walkable(c coord.Coord) (bool, bool) {
	t, ok := s.TileAt(c)
	if !ok {
		return false, false
	}
	return t.Walkable, true
}

// Neighbours lists the in-bounds tiles around c in direction order.
func (s *Store) Neighbours(c coord.Coord) []coord.Coord {
	out := make([]coord.Coord, 0, len(coord.Directions))
	for _, d := range coord.Directions {
		n := c.Add(d)
		if s.bounds.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}
