package viewer

import (
	"testing"
	"time"

	"github.com/groblegark/slidecast/internal/model"
	"github.com/jonboulle/clockwork"
)

func TestRateLimiter_SingleSendPerWindow(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := NewRateLimiterWithClock(DefaultMinInterval, clock)

	if !l.Allow() {
		t.Fatal("first send must be allowed")
	}
	if l.Allow() {
		t.Fatal("second send inside the window must be suppressed")
	}

	clock.Advance(100 * time.Millisecond)
	if l.Allow() {
		t.Fatal("send at +100ms must still be suppressed")
	}

	clock.Advance(150 * time.Millisecond)
	if !l.Allow() {
		t.Fatal("send after the window must be allowed")
	}
	if l.Allow() {
		t.Fatal("allowance must be consumed again")
	}
}

func reactionAt(id string, ts time.Time) *model.ReactionEvent {
	return &model.ReactionEvent{Type: model.TypeReaction, Emoji: "👏", ID: id, TS: ts.UnixMilli()}
}

func TestFilterRecent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		ages     []time.Duration // event age, newest last
		maxAge   time.Duration
		wantKept int
	}{
		{
			name:     "drops events older than the window",
			ages:     []time.Duration{15 * time.Second, 5 * time.Second, 1 * time.Second},
			maxAge:   10 * time.Second,
			wantKept: 2,
		},
		{
			name:     "tighter window drops more",
			ages:     []time.Duration{3 * time.Second, 1 * time.Second},
			maxAge:   2 * time.Second,
			wantKept: 1,
		},
		{
			name:     "empty input",
			ages:     nil,
			maxAge:   10 * time.Second,
			wantKept: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []*model.ReactionEvent
			for i, age := range tt.ages {
				events = append(events, reactionAt(string(rune('a'+i)), now.Add(-age)))
			}

			kept := FilterRecent(events, now, tt.maxAge)
			if len(kept) != tt.wantKept {
				t.Fatalf("kept %d events, want %d", len(kept), tt.wantKept)
			}
			// Order is preserved: the survivors are the newest suffix.
			for i, ev := range kept {
				want := events[len(events)-tt.wantKept+i]
				if ev != want {
					t.Errorf("kept[%d] = %v, want %v", i, ev.ID, want.ID)
				}
			}
		})
	}
}

func TestSeenSet_CleanupKeepsOnlyValid(t *testing.T) {
	s := NewSeenSet()
	for _, id := range []string{"rx-1", "rx-2", "rx-3"} {
		s.MarkSeen(id)
	}

	s.Cleanup(map[string]struct{}{"rx-2": {}, "rx-3": {}})

	if s.HasSeen("rx-1") {
		t.Error("rx-1 must be dropped after cleanup")
	}
	if !s.HasSeen("rx-2") || !s.HasSeen("rx-3") {
		t.Error("valid ids must survive cleanup")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

// captureRenderer records every render call.
type captureRenderer struct {
	slides    []int
	reactions []string
}

func (r *captureRenderer) ShowSlide(slide int) { r.slides = append(r.slides, slide) }
func (r *captureRenderer) PlayReaction(ev *model.ReactionEvent) {
	r.reactions = append(r.reactions, ev.ID)
}

func TestReconciler_DedupsAcrossStreamAndFetch(t *testing.T) {
	clock := clockwork.NewFakeClock()
	render := &captureRenderer{}
	rec := NewReconcilerWithClock(render, DefaultMaxAge, clock)

	live := reactionAt("rx-1", clock.Now())
	rec.ApplyEvent(live)
	// The same reaction comes back in a queue fetch alongside a new one.
	rec.ApplyFetched([]*model.ReactionEvent{live, reactionAt("rx-2", clock.Now())})

	if len(render.reactions) != 2 {
		t.Fatalf("played %d reactions, want 2: %v", len(render.reactions), render.reactions)
	}
	if render.reactions[0] != "rx-1" || render.reactions[1] != "rx-2" {
		t.Errorf("play order = %v", render.reactions)
	}
}

func TestReconciler_FetchDropsStaleAndTrimsSeen(t *testing.T) {
	clock := clockwork.NewFakeClock()
	render := &captureRenderer{}
	rec := NewReconcilerWithClock(render, DefaultMaxAge, clock)

	stale := reactionAt("rx-old", clock.Now().Add(-15*time.Second))
	fresh := reactionAt("rx-new", clock.Now().Add(-time.Second))
	rec.ApplyFetched([]*model.ReactionEvent{stale, fresh})

	if len(render.reactions) != 1 || render.reactions[0] != "rx-new" {
		t.Fatalf("played = %v, want only rx-new", render.reactions)
	}

	// A later fetch without rx-new trims it from the seen set, so memory
	// stays bounded by the live population.
	rec.ApplyFetched(nil)
	if rec.seen.Len() != 0 {
		t.Errorf("seen set len = %d after empty fetch, want 0", rec.seen.Len())
	}
}

func TestReconciler_AppliesSlidePositions(t *testing.T) {
	render := &captureRenderer{}
	rec := NewReconciler(render)

	rec.ApplySnapshot(4)
	rec.ApplyEvent(model.NewSlideEvent(5, time.Now()))
	// Reconnect snapshot re-applies even when unchanged.
	rec.ApplySnapshot(5)

	want := []int{4, 5, 5}
	if len(render.slides) != len(want) {
		t.Fatalf("slides = %v, want %v", render.slides, want)
	}
	for i := range want {
		if render.slides[i] != want[i] {
			t.Fatalf("slides = %v, want %v", render.slides, want)
		}
	}
}
