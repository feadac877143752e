package main

import (
	"context"
	"fmt"
	"os"

	"github.com/groblegark/slidecast/internal/gesture"
	"github.com/groblegark/slidecast/internal/presenter"
	"github.com/groblegark/slidecast/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var presentCmd = &cobra.Command{
	Use:   "present <deck-id>",
	Short: "Drive a deck from the keyboard",
	Long: `Drive a deck from the keyboard. Arrow keys, space, n and p move
between slides; g and G jump to the first and last slide; a typed number
followed by enter jumps to that slide. Press q twice quickly to quit.`,
	GroupID: "live",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckID := args[0]
		total, _ := cmd.Flags().GetInt("slides")

		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return fmt.Errorf("present requires an interactive terminal")
		}

		ctx := context.Background()
		state, err := httpc.GetDeck(ctx, deckID)
		if err != nil {
			return err
		}

		// The status line is a local sync subscriber rather than an
		// inline print, the same surface a detached notes window reads.
		localSync := presenter.NewLocalSync()
		msgs, release := localSync.Subscribe()
		rendered := make(chan struct{})
		go func() {
			defer close(rendered)
			for msg := range msgs {
				switch msg.Kind {
				case presenter.KindPresenterOpened:
					fmt.Printf("presenting deck %s, slide %s (q q to quit)\r\n",
						deckID, ui.RenderAccent(ui.FormatSlide(msg.Slide, total)))
				case presenter.KindSlideChange:
					fmt.Printf("\rslide %s   ", ui.RenderAccent(ui.FormatSlide(msg.Slide, total)))
				case presenter.KindPresenterClosed:
					fmt.Printf("\r\n")
				}
			}
		}()
		defer func() {
			localSync.Publish(presenter.Message{Kind: presenter.KindPresenterClosed})
			release()
			<-rendered
		}()

		nav := gesture.NewNavigator(total, nil, func(slide int) {
			if err := httpc.Advance(ctx, deckID, slide); err != nil {
				fmt.Fprintf(os.Stderr, "\r\nadvance failed: %v\r\n", err)
				return
			}
			localSync.Publish(presenter.Message{Kind: presenter.KindSlideChange, Slide: slide})
		})
		// Resume where the deck last was.
		nav.Jump(state.Slide + 1)

		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)

		localSync.Publish(presenter.Message{
			Kind:  presenter.KindPresenterOpened,
			Slide: nav.Current(),
		})

		quit := gesture.NewDoublePressDetector()
		var pendingNumber int
		var typing bool

		buf := make([]byte, 3)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return err
			}

			switch key := decodeKey(buf[:n]); key {
			case keyNext:
				nav.Next()
				quit.Reset()
			case keyPrev:
				nav.Prev()
				quit.Reset()
			case keyFirst:
				nav.First()
				quit.Reset()
			case keyLast:
				nav.Last()
				quit.Reset()
			case keyQuit:
				if quit.Press() {
					return nil
				}
			case keyEnter:
				if typing {
					nav.Jump(pendingNumber)
					pendingNumber, typing = 0, false
				}
				quit.Reset()
			default:
				if key >= '0' && key <= '9' {
					pendingNumber = pendingNumber*10 + int(key-'0')
					typing = true
				} else {
					pendingNumber, typing = 0, false
				}
				quit.Reset()
			}
		}
	},
}

// Decoded key intents. Values below 0x100 are the literal byte.
const (
	keyNext  = 0x101
	keyPrev  = 0x102
	keyFirst = 0x103
	keyLast  = 0x104
	keyQuit  = 0x105
	keyEnter = 0x106
)

// decodeKey maps a raw terminal read to an intent.
func decodeKey(b []byte) int {
	if len(b) == 3 && b[0] == 0x1b && b[1] == '[' {
		switch b[2] {
		case 'C': // right arrow
			return keyNext
		case 'D': // left arrow
			return keyPrev
		case 'H': // home
			return keyFirst
		case 'F': // end
			return keyLast
		}
		return 0
	}
	if len(b) != 1 {
		return 0
	}
	switch b[0] {
	case ' ', 'n':
		return keyNext
	case 'p':
		return keyPrev
	case 'g':
		return keyFirst
	case 'G':
		return keyLast
	case 'q', 0x03: // ctrl-c
		return keyQuit
	case '\r', '\n':
		return keyEnter
	}
	return int(b[0])
}

func init() {
	presentCmd.Flags().Int("slides", 1, "number of slides in the deck")
}
