package tileset

import "time"

// CurrentFrame returns the tile id visible after elapsed time in a cycle of
// frames. Frame i is shown for t in [cum(i-1), cum(i)) where t is elapsed
// modulo the cycle length, so a time exactly on a boundary picks the later
// frame. A cycle of length zero always shows its first frame.
//
// CurrentFrame is pure: equal inputs always give equal outputs.
func CurrentFrame(frames []Frame, elapsed time.Duration) (int, error) {
	if len(frames) == 0 {
		return 0, ErrEmptyAnimation
	}

	cycle := CycleLength(frames)
	if cycle <= 0 {
		return frames[0].TileID, nil
	}

	t := elapsed % cycle
	if t < 0 {
		t += cycle
	}

	var cum time.Duration
	for _, f := range frames {
		if f.Duration > t-cum {
			return f.TileID, nil
		}
		cum += f.Duration
	}
	return frames[len(frames)-1].TileID, nil
}

// CycleLength is the sum of all frame durations, capped at the largest
// time.Duration.
func CycleLength(frames []Frame) time.Duration {
	var cycle time.Duration
	for _, f := range frames {
		if f.Duration > maxCycle-cycle {
			return maxCycle
		}
		cycle += f.Duration
	}
	return cycle
}
