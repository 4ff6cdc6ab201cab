package grid

type (
	// Cache remembers the lines of the previous call and returns them again
	// while the visible window does not change, which is the common case when
	// redrawing at a fixed rate. The returned slices must not be modified.
	Cache struct {
		timeKey    timeKey
		timeLines  []TimeLine
		timeValid  bool
		pitchKey   [2]int
		pitchLines []PitchLine
		pitchValid bool
	}

	timeKey struct {
		start, end, zoom, bpm float64
	}
)

func (c *Cache) TimeLines(start, end, pxPerSecond, bpm float64) []TimeLine {
	key := timeKey{start, end, pxPerSecond, bpm}
	if !c.timeValid || c.timeKey != key {
		c.timeLines = TimeLines(start, end, pxPerSecond, bpm)
		c.timeKey = key
		c.timeValid = true
	}
	return c.timeLines
}

func (c *Cache) PitchLines(low, high int) []PitchLine {
	key := [2]int{low, high}
	if !c.pitchValid || c.pitchKey != key {
		c.pitchLines = PitchLines(low, high)
		c.pitchKey = key
		c.pitchValid = true
	}
	return c.pitchLines
}
