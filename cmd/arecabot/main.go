package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samartha-hm/ARECAbot/internal/app"
	"github.com/samartha-hm/ARECAbot/internal/client"
)

func main() {
	host := flag.String("host", "", "robot host (default from config, else "+client.DefaultHost+")")
	port := flag.Int("port", 0, "robot port (default from config)")
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := client.DefaultConfig()
	if *configPath != "" {
		loaded, err := client.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}

	c := client.New(cfg)
	endpoint := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	m := app.New(c, endpoint)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
