package domain

import (
	"testing"
	"time"
)

func TestRoundStartTime(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		interval time.Duration
		want     time.Time
	}{
		{
			name:     "already aligned unchanged",
			start:    day.Add(9 * time.Hour),
			interval: 15 * time.Minute,
			want:     day.Add(9 * time.Hour),
		},
		{
			name:     "aligned with seconds unchanged",
			start:    day.Add(9*time.Hour + 15*time.Minute + 30*time.Second),
			interval: 15 * time.Minute,
			want:     day.Add(9*time.Hour + 15*time.Minute + 30*time.Second),
		},
		{
			name:     "rounds up",
			start:    day.Add(9*time.Hour + 7*time.Minute),
			interval: 15 * time.Minute,
			want:     day.Add(9*time.Hour + 15*time.Minute),
		},
		{
			name:     "rounds across the hour",
			start:    day.Add(9*time.Hour + 50*time.Minute),
			interval: 15 * time.Minute,
			want:     day.Add(10 * time.Hour),
		},
		{
			name:     "zero interval falls back to default",
			start:    day.Add(9*time.Hour + 7*time.Minute),
			interval: 0,
			want:     day.Add(9*time.Hour + 15*time.Minute),
		},
		{
			name:     "coarser interval",
			start:    day.Add(9*time.Hour + 31*time.Minute),
			interval: 30 * time.Minute,
			want:     day.Add(10 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundStartTime(tt.start, tt.interval)
			if !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got.Before(tt.start) {
				t.Fatalf("rounding went backwards: %v before %v", got, tt.start)
			}
		})
	}
}

func TestSliceAvailability_SlidingWindows(t *testing.T) {
	block := Timeslot{
		From: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC),
	}

	got := SliceAvailability(Availability{block}, 15*time.Minute, time.Hour)

	// A two-hour block at a 15-minute stride with hour-long windows:
	// 9:00, 9:15, ..., 10:00 — five overlapping candidates.
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i, w := range got {
		wantFrom := block.From.Add(time.Duration(i) * 15 * time.Minute)
		if !w.From.Equal(wantFrom) {
			t.Fatalf("window %d from = %v, want %v", i, w.From, wantFrom)
		}
		if w.Duration() != time.Hour {
			t.Fatalf("window %d duration = %v, want 1h", i, w.Duration())
		}
		if w.To.After(block.To) {
			t.Fatalf("window %d overruns the block: %v", i, w.To)
		}
	}
}

func TestSliceAvailability_RoundsUnalignedStart(t *testing.T) {
	block := Timeslot{
		From: time.Date(2026, 1, 5, 9, 5, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}

	got := SliceAvailability(Availability{block}, 15*time.Minute, 30*time.Minute)

	want := Availability{
		{From: time.Date(2026, 1, 5, 9, 15, 0, 0, time.UTC), To: time.Date(2026, 1, 5, 9, 45, 0, 0, time.UTC)},
		{From: time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC), To: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)},
	}
	if !got.EqualTo(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSliceAvailability_TooShortBlockEmitsNothing(t *testing.T) {
	block := Timeslot{
		From: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 5, 9, 20, 0, 0, time.UTC),
	}

	if got := SliceAvailability(Availability{block}, 15*time.Minute, 30*time.Minute); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestSliceAvailability_SortsInput(t *testing.T) {
	a := Availability{
		{From: time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC), To: time.Date(2026, 1, 6, 9, 30, 0, 0, time.UTC)},
		{From: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), To: time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)},
	}

	got := SliceAvailability(a, 15*time.Minute, 30*time.Minute)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].From.Before(got[1].From) {
		t.Fatalf("windows not emitted in start order: %v then %v", got[0].From, got[1].From)
	}
}
