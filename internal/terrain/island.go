package terrain

// IslandMask attenuates a height sample by its distance to the nearest map
// border so the world reads as one island surrounded by ocean. It returns the
// masked value and whether the tile counts as landmass.
func IslandMask(width, height, x, y int, value float64) (float64, bool) {
	half := (width + height) / 2
	inner := half / 100 * 2
	outer := half / 100 * 10

	d := distanceToEdge(x, y, width, height)
	switch {
	case d <= inner:
		return 0, false
	case d >= outer:
		return value, true
	}

	factor := float64(d-inner) / float64(outer-inner)
	masked := value * factor
	return masked, masked >= landmassCutoff(width, height)
}

// landmassCutoff is the masked height below which a coastal tile is sea.
func landmassCutoff(width, height int) float64 {
	switch {
	case width >= 512 && height >= 512:
		return 0.10
	case width >= 256 && height >= 256:
		return 0.15
	default:
		return 0.10
	}
}

func distanceToEdge(x, y, width, height int) int {
	return min(y, x, width-x, height-y)
}
