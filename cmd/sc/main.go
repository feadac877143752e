package main

import (
	"os"

	"github.com/groblegark/slidecast/internal/client"
	"github.com/groblegark/slidecast/internal/ui"
	"github.com/spf13/cobra"
)

var (
	serverURL    string
	token        string
	sessionToken string
	jsonOutput   bool

	httpc *client.HTTPClient
)

func defaultServer() string {
	if s := os.Getenv("SLIDECAST_SERVER"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if t := os.Getenv("SLIDECAST_TOKEN"); t != "" {
		return t
	}
	return activeRemoteToken()
}

var rootCmd = &cobra.Command{
	Use:   "sc <command>",
	Short: "CLI for the slidecast live deck service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		httpc = client.NewHTTPClient(serverURL, token)
		if sessionToken != "" {
			httpc.SetSessionToken(sessionToken)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if httpc != nil {
			httpc.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "server base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", defaultToken(), "bearer auth secret")
	rootCmd.PersistentFlags().StringVar(&sessionToken, "session", "", "session identity token")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "deck", Title: "Decks:"},
		&cobra.Group{ID: "live", Title: "Live:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)
	cobra.EnableCommandSorting = false

	// Decks
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(advanceCmd)
	rootCmd.AddCommand(reactCmd)
	rootCmd.AddCommand(reactionsCmd)

	// Live
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(presentCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
