package tileset

import (
	"errors"
	"math"
	"testing"
	"time"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestCurrentFrameUniformCycle(t *testing.T) {
	frames := []Frame{
		{TileID: 0, Duration: ms(350)},
		{TileID: 10, Duration: ms(350)},
		{TileID: 20, Duration: ms(350)},
		{TileID: 30, Duration: ms(350)},
	}

	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"start", 0, 0},
		{"end_of_first", ms(349), 0},
		{"boundary_picks_later", ms(350), 10},
		{"third", ms(700), 20},
		{"last_ms", ms(1399), 30},
		{"wrap", ms(1400), 0},
		{"two_cycles", ms(2800), 0},
		{"sub_ms", ms(349) + 999*time.Microsecond, 0},
		{"negative", -ms(1), 30},
		{"negative_boundary", -ms(350), 30},
		{"huge", time.Duration(math.MaxInt64), 10},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := CurrentFrame(frames, c.elapsed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("CurrentFrame(%v) = %d, want %d", c.elapsed, got, c.want)
			}
		})
	}
}

func TestCurrentFrameUnevenCycle(t *testing.T) {
	frames := []Frame{
		{TileID: 0, Duration: ms(150)},
		{TileID: 1, Duration: ms(150)},
		{TileID: 2, Duration: ms(150)},
		{TileID: 3, Duration: ms(150)},
		{TileID: 4, Duration: ms(1500)},
	}
	if got := CycleLength(frames); got != ms(2100) {
		t.Fatalf("expected cycle of 2100ms, got %v", got)
	}

	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{ms(0), 0},
		{ms(150), 1},
		{ms(599), 3},
		{ms(600), 4},
		{ms(2099), 4},
		{ms(2100), 0},
		{ms(2250), 1},
	}
	for _, c := range cases {
		got, err := CurrentFrame(frames, c.elapsed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Fatalf("CurrentFrame(%v) = %d, want %d", c.elapsed, got, c.want)
		}
	}
}

func TestCurrentFrameStatic(t *testing.T) {
	frames := []Frame{{TileID: 42}}
	for _, elapsed := range []time.Duration{0, ms(1), ms(350), time.Hour, time.Duration(math.MaxInt64), -time.Hour} {
		got, err := CurrentFrame(frames, elapsed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 {
			t.Fatalf("static tile at %v resolved to %d, want 42", elapsed, got)
		}
	}
}

func TestCurrentFrameEmpty(t *testing.T) {
	for _, frames := range [][]Frame{nil, {}} {
		if _, err := CurrentFrame(frames, ms(10)); !errors.Is(err, ErrEmptyAnimation) {
			t.Fatalf("expected ErrEmptyAnimation, got %v", err)
		}
	}
}

func TestClock(t *testing.T) {
	t.Run("default_rate", func(t *testing.T) {
		var c Clock
		if got := c.TickDuration(); got != ms(16) {
			t.Fatalf("expected 16ms ticks, got %v", got)
		}
		if got := c.Elapsed(60); got != ms(960) {
			t.Fatalf("expected 960ms after 60 ticks, got %v", got)
		}
	})

	t.Run("custom_rate", func(t *testing.T) {
		c := Clock{TickRate: 30}
		if got := c.Elapsed(3); got != ms(99) {
			t.Fatalf("expected 99ms after 3 ticks at 30Hz, got %v", got)
		}
	})

	t.Run("frame_at_tick", func(t *testing.T) {
		ts := loadEmbedded(t, "maps/key_tilemap.tsx")
		c := Clock{TickRate: DefaultTickRate}
		// 22 ticks * 16ms = 352ms, inside the second frame.
		got, err := c.FrameAtTick(ts, 0, 22)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 10 {
			t.Fatalf("expected frame 10, got %d", got)
		}
	})
}

func TestCurrentFrameLongCycle(t *testing.T) {
	long := time.Duration(math.MaxInt64 - 10)
	frames := []Frame{
		{TileID: 5, Duration: long},
		{TileID: 6, Duration: ms(100)},
	}
	if got := CycleLength(frames); got != time.Duration(math.MaxInt64) {
		t.Fatalf("expected capped cycle, got %v", got)
	}
	if got, _ := CurrentFrame(frames, 0); got != 5 {
		t.Fatalf("expected frame 5 at 0, got %d", got)
	}
	if got, _ := CurrentFrame(frames, long); got != 6 {
		t.Fatalf("expected frame 6 once the long frame ends, got %d", got)
	}
}
