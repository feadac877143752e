package viewer

import (
	"time"

	"github.com/groblegark/slidecast/internal/model"
	"github.com/jonboulle/clockwork"
)

// Renderer receives the reconciled output: slide positions to show and
// reactions to animate.
type Renderer interface {
	ShowSlide(slide int)
	PlayReaction(ev *model.ReactionEvent)
}

// Reconciler turns raw stream messages and fallback fetches into render
// calls. It deduplicates reactions across the two read paths and drops
// stale ones, so a viewer that reconnects or polls never replays old
// noise.
type Reconciler struct {
	renderer Renderer
	seen     *SeenSet
	clock    clockwork.Clock
	maxAge   time.Duration
}

func NewReconciler(r Renderer) *Reconciler {
	return NewReconcilerWithClock(r, DefaultMaxAge, clockwork.NewRealClock())
}

func NewReconcilerWithClock(r Renderer, maxAge time.Duration, clock clockwork.Clock) *Reconciler {
	return &Reconciler{
		renderer: r,
		seen:     NewSeenSet(),
		clock:    clock,
		maxAge:   maxAge,
	}
}

// ApplySnapshot applies a stream snapshot. Called on every connect,
// including reconnects; the renderer must treat it as authoritative.
func (c *Reconciler) ApplySnapshot(slide int) {
	c.renderer.ShowSlide(slide)
}

// ApplyEvent applies one decoded stream event. Unknown shapes are
// ignored.
func (c *Reconciler) ApplyEvent(ev any) {
	switch ev := ev.(type) {
	case *model.SlideEvent:
		c.renderer.ShowSlide(ev.Slide)
	case *model.ReactionEvent:
		c.playOnce(ev)
	}
}

// ApplyFetched applies a fallback fetch of the reaction queue: stale
// entries are dropped, already-rendered ones are skipped, and the seen
// set is trimmed to the ids the server still considers live.
func (c *Reconciler) ApplyFetched(events []*model.ReactionEvent) {
	valid := make(map[string]struct{}, len(events))
	for _, ev := range events {
		valid[ev.ID] = struct{}{}
	}

	for _, ev := range FilterRecent(events, c.clock.Now(), c.maxAge) {
		c.playOnce(ev)
	}
	c.seen.Cleanup(valid)
}

func (c *Reconciler) playOnce(ev *model.ReactionEvent) {
	if c.seen.HasSeen(ev.ID) {
		return
	}
	c.seen.MarkSeen(ev.ID)
	c.renderer.PlayReaction(ev)
}
