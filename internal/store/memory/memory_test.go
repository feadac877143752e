package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/groblegark/slidecast/internal/model"
)

func TestDeckState_AbsentIsNil(t *testing.T) {
	s := New()
	state, err := s.GetDeckState(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetDeckState: %v", err)
	}
	if state != nil {
		t.Fatalf("expected nil state, got %+v", state)
	}
}

func TestDeckState_LastWriterWins(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, slide := range []int{1, 5, 3} {
		if err := s.SetDeckState(ctx, "d1", slide); err != nil {
			t.Fatalf("SetDeckState(%d): %v", slide, err)
		}
	}

	state, err := s.GetDeckState(ctx, "d1")
	if err != nil {
		t.Fatalf("GetDeckState: %v", err)
	}
	if state.Slide != 3 {
		t.Errorf("slide = %d, want 3 (last write)", state.Slide)
	}
}

func TestReactions_TTLExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewWithClock(clock)
	ctx := context.Background()

	now := clock.Now()
	add := func(id string, ttl time.Duration) {
		t.Helper()
		err := s.AppendReaction(ctx, &model.Reaction{
			ID: id, DeckID: "d1", Emoji: "🎉",
			CreatedAt: now, ExpiresAt: now.Add(ttl),
		})
		if err != nil {
			t.Fatalf("AppendReaction(%s): %v", id, err)
		}
	}
	add("rx-1", 5*time.Second)
	add("rx-2", 10*time.Second)

	clock.Advance(6 * time.Second)

	live, err := s.ListReactions(ctx, "d1")
	if err != nil {
		t.Fatalf("ListReactions: %v", err)
	}
	if len(live) != 1 || live[0].ID != "rx-2" {
		t.Fatalf("live = %+v, want only rx-2", live)
	}

	clock.Advance(5 * time.Second)
	live, err = s.ListReactions(ctx, "d1")
	if err != nil {
		t.Fatalf("ListReactions: %v", err)
	}
	if len(live) != 0 {
		t.Fatalf("expected empty queue after full expiry, got %+v", live)
	}
}

func TestReactions_OrderPreserved(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewWithClock(clock)
	ctx := context.Background()

	now := clock.Now()
	for _, id := range []string{"rx-a", "rx-b", "rx-c"} {
		if err := s.AppendReaction(ctx, &model.Reaction{
			ID: id, DeckID: "d1", Emoji: "👏",
			CreatedAt: now, ExpiresAt: now.Add(time.Minute),
		}); err != nil {
			t.Fatalf("AppendReaction: %v", err)
		}
	}

	live, err := s.ListReactions(ctx, "d1")
	if err != nil {
		t.Fatalf("ListReactions: %v", err)
	}
	for i, want := range []string{"rx-a", "rx-b", "rx-c"} {
		if live[i].ID != want {
			t.Errorf("live[%d] = %s, want %s", i, live[i].ID, want)
		}
	}
}

func TestListDeckStates(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.SetDeckState(ctx, "b", 2)
	_ = s.SetDeckState(ctx, "a", 1)

	states, err := s.ListDeckStates(ctx)
	if err != nil {
		t.Fatalf("ListDeckStates: %v", err)
	}
	if len(states) != 2 || states[0].DeckID != "a" || states[1].DeckID != "b" {
		t.Fatalf("states = %+v", states)
	}
}

func TestReturnedStateIsACopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.SetDeckState(ctx, "d1", 1)

	state, _ := s.GetDeckState(ctx, "d1")
	state.Slide = 99

	again, _ := s.GetDeckState(ctx, "d1")
	if again.Slide != 1 {
		t.Errorf("mutating a returned state leaked into the store")
	}
}
