package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var advanceCmd = &cobra.Command{
	Use:     "advance <deck-id> <slide>",
	Short:   "Move a deck to a slide (0-based index)",
	GroupID: "deck",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID := args[0]
		slide, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("slide must be a number: %w", err)
		}

		if err := httpc.Advance(context.Background(), deckID, slide); err != nil {
			return err
		}
		fmt.Printf("deck %s advanced to slide %d\n", deckID, slide)
		return nil
	},
}
