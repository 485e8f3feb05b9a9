package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/samartha-hm/ARECAbot/internal/config"
	"github.com/samartha-hm/ARECAbot/internal/sim"
	"github.com/samartha-hm/ARECAbot/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	host := flag.String("host", "", "listen host override")
	port := flag.Int("port", 0, "listen port override")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	hub := ws.NewHub()
	robot := sim.New(hub, cfg.Sim)

	go robot.Start(context.Background())

	srv := ws.NewServer(hub, robot.Apply)
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	if err := ws.ListenAndServe(cfg.Server.Host, cfg.Server.Port, mux); err != nil {
		log.Fatal(err)
	}
}
