package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/groblegark/slidecast/internal/client"
	"github.com/groblegark/slidecast/internal/model"
	"github.com/groblegark/slidecast/internal/ui"
	"github.com/groblegark/slidecast/internal/viewer"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch <deck-id>",
	Short:   "Follow a deck's live stream",
	GroupID: "live",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID := args[0]

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		ch, err := httpc.Stream(ctx, deckID, client.StreamOptions{})
		if err != nil {
			return fmt.Errorf("watching deck %s: %w", deckID, err)
		}

		rec := viewer.NewReconciler(&terminalRenderer{})
		for msg := range ch {
			if msg.Init {
				rec.ApplySnapshot(msg.Slide)
				continue
			}
			rec.ApplyEvent(msg.Event)
		}
		return nil
	},
}

// terminalRenderer prints reconciled output one line per change.
type terminalRenderer struct{}

func (r *terminalRenderer) ShowSlide(slide int) {
	fmt.Printf("%s slide %s\n",
		ui.RenderMuted(time.Now().Format("15:04:05")),
		ui.RenderAccent(fmt.Sprintf("%d", slide)),
	)
}

func (r *terminalRenderer) PlayReaction(ev *model.ReactionEvent) {
	fmt.Printf("%s %s\n",
		ui.RenderMuted(ev.Time().Format("15:04:05")),
		ui.RenderEvent(ev.Emoji),
	)
}
