package edge

import "github.com/VoidMesh/tileworld/internal/coord"

// MaxLookahead bounds how far cliff refinement may walk into right and top
// neighbours while resolving a right-hand cliff end.
const MaxLookahead = 4

// HillGrid is the view of the world cliff refinement reads and rewrites.
// Neighbour must clamp at the map border. HillEdge reports false for tiles
// that do not exist.
type HillGrid interface {
	Neighbour(c coord.Coord, d coord.Direction) coord.Coord
	HillEdge(c coord.Coord) (Type, bool)
	SetHillEdge(c coord.Coord, t Type)
}

// RefineCliff turns the raw hill edge at c into cliff faces. Tiles must be
// visited bottom-up so the tile below is already final. It returns the
// resulting hill edge.
func RefineCliff(g HillGrid, c coord.Coord) Type {
	own, ok := g.HillEdge(c)
	if !ok {
		return None
	}

	// A bottom edge left unrefined below (merged tiles are skipped) still
	// carries a face on top of it.
	if own == None {
		if below, ok := hillAt(g, c, coord.Bot); ok && below == Bot {
			g.SetHillEdge(c, Cliff)
		}
	}

	switch own {
	case Bot:
		g.SetHillEdge(c, CliffBot)
	case BotLeftOnly:
		if below, ok := hillAt(g, c, coord.Bot); ok {
			if below == None {
				g.SetHillEdge(c, Bot)
			} else {
				g.SetHillEdge(c, BotLeft)
			}
		}
	case BotRightOnly:
		g.SetHillEdge(c, CliffEndRight)
	}

	if below, ok := hillAt(g, c, coord.Bot); ok {
		mountainEdge(g, c, below, MaxLookahead)
	}

	final, _ := g.HillEdge(c)
	return final
}

// mountainEdge advances the cliff state of c given the hill edge of the tile
// beneath it. Faces are two tiles tall, so the state below decides whether c
// continues the face or caps it.
func mountainEdge(g HillGrid, c coord.Coord, below Type, budget int) {
	if budget < 0 {
		return
	}

	switch below {
	case BotLeft:
		g.SetHillEdge(c, CliffLeft)
	case BotRight:
		g.SetHillEdge(c, CliffRight)
	case CliffLeft:
		g.SetHillEdge(c, CliffEndLeft)
	case CliffRight:
		g.SetHillEdge(c, CliffEndRight)

	case CliffEndLeft:
		left, okL := hillAt(g, c, coord.Left)
		top, okT := hillAt(g, c, coord.Top)
		if !okL || !okT {
			return
		}
		if left == CliffLeft || left == BotLeft || top == TopLeft {
			g.SetHillEdge(c, Left)
		}

	case CliffEndRight:
		right := g.Neighbour(c, coord.Right)
		top := g.Neighbour(c, coord.Top)
		if br, ok := hillAt(g, c, coord.BotRight); ok {
			mountainEdge(g, right, br, budget-1)
		}
		if own, ok := g.HillEdge(c); ok {
			mountainEdge(g, top, own, budget-1)
		}

		rightEdge, okR := g.HillEdge(right)
		topEdge, okT := g.HillEdge(top)
		if !okR || !okT {
			return
		}
		if rightEdge == CliffRight || topEdge == Right || rightEdge == BotRight {
			g.SetHillEdge(c, Right)
		}

	case Cliff:
		left, ok := hillAt(g, c, coord.Left)
		if ok && left != CliffLeft {
			g.SetHillEdge(c, CliffEndBot)
		}

	case CliffBot:
		g.SetHillEdge(c, Cliff)

	case Left:
		left, ok := hillAt(g, c, coord.Left)
		if ok && (left == CliffLeft || left == BotLeft) {
			g.SetHillEdge(c, Left)
		}

	case Right:
		right := g.Neighbour(c, coord.Right)
		br, ok := hillAt(g, c, coord.BotRight)
		if !ok {
			return
		}
		mountainEdge(g, right, br, budget-1)

		rightEdge, ok := g.HillEdge(right)
		if !ok {
			return
		}
		br, _ = hillAt(g, c, coord.BotRight)
		if rightEdge == CliffRight || br == BotRight {
			g.SetHillEdge(c, Right)
		}
	}
}

func hillAt(g HillGrid, c coord.Coord, d coord.Direction) (Type, bool) {
	return g.HillEdge(g.Neighbour(c, d))
}
