package edge

import "github.com/VoidMesh/tileworld/internal/coord"

// Sameness has bit d set when the neighbour in coord.Direction d counts as
// the same as the tile being classified.
type Sameness uint8

// AllSameMask is a Sameness with every neighbour the same.
const AllSameMask Sameness = 0xff

// With returns s with direction d marked same or different.
func (s Sameness) With(d coord.Direction, same bool) Sameness {
	if same {
		return s | 1<<uint(d)
	}
	return s &^ (1 << uint(d))
}

// Same reports whether the neighbour in direction d is the same.
func (s Sameness) Same(d coord.Direction) bool {
	return s&(1<<uint(d)) != 0
}

// AllSame reports whether no neighbour differs.
func (s Sameness) AllSame() bool {
	return s == AllSameMask
}

// NewSameness builds a vector by asking same for each direction.
func NewSameness(same func(d coord.Direction) bool) Sameness {
	var s Sameness
	for _, d := range coord.Directions {
		s = s.With(d, same(d))
	}
	return s
}

var (
	edgeTable [256]Type
	hillTable [256]Type
)

func init() {
	for i := 0; i < 256; i++ {
		t := decide(Sameness(i))
		edgeTable[i] = t
		if t.Rare() {
			t = None
		}
		hillTable[i] = t
	}
}

// decide walks the cases in precedence order: single cardinal sides, two
// adjacent sides, lone corners, then the rare three-sided shapes.
func decide(s Sameness) Type {
	l, t := s.Same(coord.Left), s.Same(coord.Top)
	r, b := s.Same(coord.Right), s.Same(coord.Bot)

	switch {
	case !l && t && r && b:
		return Left
	case l && t && !r && b:
		return Right
	case l && !t && r && b:
		return Top
	case l && t && r && !b:
		return Bot
	case !l && t && r && !b:
		return BotLeft
	case !l && !t && r && b:
		return TopLeft
	case l && !t && !r && b:
		return TopRight
	case l && t && !r && !b:
		return BotRight
	}

	if l && t && r && b {
		switch {
		case !s.Same(coord.BotLeft):
			return BotLeftOnly
		case !s.Same(coord.TopLeft):
			return TopLeftOnly
		case !s.Same(coord.TopRight):
			return TopRightOnly
		case !s.Same(coord.BotRight):
			return BotRightOnly
		}
		return None
	}

	switch {
	case l && !t && !r && !b:
		return RareTRB
	case !l && !t && !r && b:
		return RareLTR
	case !l && t && !r && !b:
		return RareRBL
	case !l && !t && r && !b:
		return RareBLT
	case !l && t && !r && b:
		return RareTB
	}
	return None
}

// Classify returns the biome edge type for a sameness vector.
func Classify(s Sameness) Type {
	return edgeTable[s]
}

// ClassifyHill returns the hill edge type for a height sameness vector. Rare
// shapes are not tracked for height and come back as None.
func ClassifyHill(s Sameness) Type {
	return hillTable[s]
}
