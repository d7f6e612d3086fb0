package edge

import "fmt"

// Type classifies which sides of a tile border a different biome or a lower
// height band. The zero value is None.
type Type uint8

const (
	None Type = iota
	Left
	Top
	Right
	Bot
	BotLeft
	TopLeft
	BotRight
	TopRight
	BotLeftOnly
	TopLeftOnly
	BotRightOnly
	TopRightOnly
	RareTRB
	RareLTR
	RareRBL
	RareBLT
	RareTB
	Cliff
	CliffLeft
	CliffEndLeft
	CliffRight
	CliffEndRight
	CliffBot
	CliffEndBot
	Staircase
	StaircaseTop
	StaircaseBot

	numTypes
)

var typeNames = [numTypes]string{
	None:          "none",
	Left:          "left",
	Top:           "top",
	Right:         "right",
	Bot:           "bot",
	BotLeft:       "botLeft",
	TopLeft:       "topLeft",
	BotRight:      "botRight",
	TopRight:      "topRight",
	BotLeftOnly:   "botLeftOnly",
	TopLeftOnly:   "topLeftOnly",
	BotRightOnly:  "botRightOnly",
	TopRightOnly:  "topRightOnly",
	RareTRB:       "rareTRB",
	RareLTR:       "rareLTR",
	RareRBL:       "rareRBL",
	RareBLT:       "rareBLT",
	RareTB:        "rareTB",
	Cliff:         "cliff",
	CliffLeft:     "cliffLeft",
	CliffEndLeft:  "cliffEndLeft",
	CliffRight:    "cliffRight",
	CliffEndRight: "cliffEndRight",
	CliffBot:      "cliffBot",
	CliffEndBot:   "cliffEndBot",
	Staircase:     "staircase",
	StaircaseTop:  "staircaseTop",
	StaircaseBot:  "staircaseBot",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, numTypes)
	for t, name := range typeNames {
		m[name] = Type(t)
	}
	return m
}()

func (t Type) String() string {
	if t >= numTypes {
		return fmt.Sprintf("edge.Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	t, ok := typesByName[s]
	if !ok {
		return None, fmt.Errorf("unknown edge type %q", s)
	}
	return t, nil
}

func (t Type) MarshalText() ([]byte, error) {
	if t >= numTypes {
		return nil, fmt.Errorf("invalid edge type %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Rare reports whether t is one of the degenerate three-sided cases.
func (t Type) Rare() bool {
	return t >= RareTRB && t <= RareTB
}

// Staircase reports whether t is part of a placed staircase.
func (t Type) Staircase() bool {
	return t == Staircase || t == StaircaseTop || t == StaircaseBot
}

// Blocking reports whether a hill edge of this type stops movement.
func (t Type) Blocking() bool {
	return t != None && !t.Staircase()
}
