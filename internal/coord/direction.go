package coord

// Direction is one of the eight grid neighbours of a tile.
type Direction int

// The order matters: it is the bit order of edge.Sameness.
const (
	Left Direction = iota
	TopLeft
	Top
	TopRight
	Right
	BotRight
	Bot
	BotLeft
)

// Directions lists all eight directions in bit order.
var Directions = [8]Direction{Left, TopLeft, Top, TopRight, Right, BotRight, Bot, BotLeft}

var offsets = [8]Coord{
	Left:     {X: -1, Y: 0},
	TopLeft:  {X: -1, Y: 1},
	Top:      {X: 0, Y: 1},
	TopRight: {X: 1, Y: 1},
	Right:    {X: 1, Y: 0},
	BotRight: {X: 1, Y: -1},
	Bot:      {X: 0, Y: -1},
	BotLeft:  {X: -1, Y: -1},
}

var directionNames = [8]string{"left", "topLeft", "top", "topRight", "right", "botRight", "bot", "botLeft"}

func (d Direction) String() string {
	if d < Left || d > BotLeft {
		return "unknown"
	}
	return directionNames[d]
}

// Offset returns the unit step for d.
func (d Direction) Offset() Coord {
	return offsets[d]
}

// Diagonal reports whether d moves along both axes.
func (d Direction) Diagonal() bool {
	off := offsets[d]
	return off.X != 0 && off.Y != 0
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}
