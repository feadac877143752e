package viewer

import (
	"time"

	"github.com/groblegark/slidecast/internal/model"
)

// DefaultMaxAge is how far back a fetched reaction may be stamped and
// still be worth rendering. Anything older predates the viewer's
// attention and is noise.
const DefaultMaxAge = 10 * time.Second

// FilterRecent returns the reactions whose timestamp falls within maxAge
// of now, preserving input order. It never mutates the input.
func FilterRecent(events []*model.ReactionEvent, now time.Time, maxAge time.Duration) []*model.ReactionEvent {
	cutoff := now.Add(-maxAge).UnixMilli()
	var out []*model.ReactionEvent
	for _, ev := range events {
		if ev.TS >= cutoff {
			out = append(out, ev)
		}
	}
	return out
}
