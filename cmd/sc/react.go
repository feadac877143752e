package main

import (
	"context"
	"fmt"

	"github.com/groblegark/slidecast/internal/client"
	"github.com/groblegark/slidecast/internal/viewer"
	"github.com/spf13/cobra"
)

var reactCmd = &cobra.Command{
	Use:     "react <deck-id> <emoji>",
	Short:   "Send an emoji reaction to a deck",
	GroupID: "deck",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID, emoji := args[0], args[1]

		httpc.SetLimiter(viewer.NewRateLimiter())
		result, err := httpc.React(context.Background(), deckID, emoji)
		if err != nil {
			return err
		}
		if result == client.SendRateLimited {
			fmt.Println("rate-limited, reaction dropped")
			return nil
		}
		fmt.Printf("%s sent to deck %s\n", emoji, deckID)
		return nil
	},
}
