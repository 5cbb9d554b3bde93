package tileset

import "time"

// DefaultTickRate is the simulation rate of the game loop in ticks per second.
const DefaultTickRate = 60

// Clock converts simulation ticks into animation time. Each tick lasts a
// whole number of milliseconds, 1000/TickRate truncated, so every client
// running the same tick count resolves the same frames.
type Clock struct {
	TickRate int
}

// TickDuration is the length of one tick.
func (c Clock) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Duration(1000/rate) * time.Millisecond
}

// Elapsed returns the animation time reached after tick ticks.
func (c Clock) Elapsed(tick int64) time.Duration {
	return time.Duration(tick) * c.TickDuration()
}

// FrameAtTick resolves the frame shown by id in ts at the given tick.
func (c Clock) FrameAtTick(ts *Tileset, id int, tick int64) (int, error) {
	return ts.FrameAt(id, c.Elapsed(tick))
}
