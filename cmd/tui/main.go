package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"supplygenie/backend/client"
	"supplygenie/backend/pkg/config"
	"supplygenie/backend/supplier"
	"supplygenie/backend/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.New()

	serverURL := flag.String("server", cfg.Server.BaseURL, "chat server base URL")
	flag.Parse()

	api := client.NewHTTPChatAPI(*serverURL, 15*time.Second)

	// The real matching engine is an external service; fall back to the
	// canned recommender when no endpoint is configured.
	var recommender supplier.Recommender = supplier.CannedRecommender{}
	if cfg.Supplier.APIURL != "" {
		recommender = supplier.NewHTTPRecommender(cfg.Supplier.APIURL, cfg.Supplier.Timeout)
	}

	model := tui.New(api, tui.DevAuthenticator{}, recommender, cfg.Supplier.ReplyDelay)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
