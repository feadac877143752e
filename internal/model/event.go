package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event type discriminators carried in the "type" field of every
// published payload.
const (
	TypeSlide    = "slide"
	TypeReaction = "reaction"
)

// SlideEvent announces a slide change. Published once per advance
// command; never retried or replayed. Timestamps are unix milliseconds
// so client-side age arithmetic works directly on the wire values.
type SlideEvent struct {
	Type  string `json:"type"`
	Slide int    `json:"slide"`
	TS    int64  `json:"ts"`
}

// NewSlideEvent returns a slide event stamped with the given time.
func NewSlideEvent(slide int, now time.Time) *SlideEvent {
	return &SlideEvent{Type: TypeSlide, Slide: slide, TS: now.UnixMilli()}
}

// ReactionEvent is an ephemeral audience reaction.
type ReactionEvent struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
	ID    string `json:"id"`
	TS    int64  `json:"ts"`
}

// Time returns the event timestamp as a time.Time.
func (e *ReactionEvent) Time() time.Time { return time.UnixMilli(e.TS) }

// ParseEvent decodes a published payload into either a *SlideEvent or a
// *ReactionEvent based on the type discriminator.
func ParseEvent(data []byte) (any, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	switch head.Type {
	case TypeSlide:
		var ev SlideEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding slide event: %w", err)
		}
		return &ev, nil
	case TypeReaction:
		var ev ReactionEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("decoding reaction event: %w", err)
		}
		return &ev, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", head.Type)
	}
}
