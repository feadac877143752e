package main

import (
	"context"
	"fmt"

	"github.com/groblegark/slidecast/internal/ui"
	"github.com/spf13/cobra"
)

var reactionsCmd = &cobra.Command{
	Use:     "reactions <deck-id>",
	Short:   "List the live (non-expired) reactions for a deck",
	GroupID: "deck",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		live, err := httpc.ListReactions(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(live)
			return nil
		}
		if len(live) == 0 {
			fmt.Println("no live reactions")
			return nil
		}
		for _, r := range live {
			fmt.Printf("%s  %s %s\n",
				ui.RenderEvent(r.Emoji),
				r.ID,
				ui.RenderMuted(r.Time().Format("15:04:05.000")),
			)
		}
		return nil
	},
}
