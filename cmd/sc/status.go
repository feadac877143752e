package main

import (
	"context"
	"fmt"

	"github.com/groblegark/slidecast/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status <deck-id>",
	Short:   "Show the durable state of a deck",
	GroupID: "deck",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := httpc.GetDeck(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(state)
			return nil
		}
		fmt.Printf("Deck:  %s\n", state.DeckID)
		fmt.Printf("Slide: %s\n", ui.RenderAccent(fmt.Sprintf("%d", state.Slide)))
		if !state.UpdatedAt.IsZero() {
			fmt.Printf("Updated: %s\n", ui.RenderMuted(state.UpdatedAt.Format("2006-01-02 15:04:05")))
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check server health",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := httpc.Health(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(status)
		return nil
	},
}
