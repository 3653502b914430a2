// Command navserver is the process entrypoint for the indoor positioning
// and navigation core: it loads beacon/destination reference data, wires
// the positioning, routing, and session packages together, and serves
// the websocket session transport until interrupted.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wayfinder-engine/internal/locationlog"
	"wayfinder-engine/internal/mapdata"
	"wayfinder-engine/internal/positioning"
	"wayfinder-engine/internal/routing"
	"wayfinder-engine/internal/session"
	"wayfinder-engine/internal/transport"
)

func main() {
	httpPort := flag.Int("http", 8080, "HTTP/WebSocket port")
	referenceXML := flag.String("reference", "reference.xml", "Path to beacon/destination reference XML")
	defaultModeFlag := flag.String("mode", "hybrid", "Default positioning mode (proximity|weighted|trilateration|hybrid)")
	locationLogPath := flag.String("location-log", "location-log.csv", "Path to the location-history CSV sink")
	locationLogCapacity := flag.Int("location-log-capacity", 1024, "Queue capacity for the location-history sink before rows are dropped")
	flag.Parse()

	if _, err := os.Stat(*referenceXML); os.IsNotExist(err) {
		log.Fatalf("reference file not found at %s", *referenceXML)
	}

	defaultMode, err := positioning.ParseMode(*defaultModeFlag)
	if err != nil {
		log.Fatalf("unknown default mode %q", *defaultModeFlag)
	}

	log.Println("loading reference data...")
	loader := mapdata.NewXMLLoader(*referenceXML)
	registry, err := positioning.NewMapRegistry(loader)
	if err != nil {
		log.Fatalf("failed to load reference data: %v", err)
	}

	ranging := positioning.NewRangingModel()
	orchestrator := positioning.NewOrchestrator(registry, ranging)

	graph := routing.NewRouteGraph()
	aliases, err := loader.LoadDestinationAliases()
	if err != nil {
		log.Fatalf("failed to load destination aliases: %v", err)
	}
	if err := graph.AddDestinationAliases(aliases); err != nil {
		log.Fatalf("bad destination alias table: %v", err)
	}
	planner := routing.NewPathPlanner(graph)

	sink, err := locationlog.NewCSVSink(*locationLogPath, *locationLogCapacity)
	if err != nil {
		log.Fatalf("failed to open location log: %v", err)
	}
	defer sink.Close()

	coordinator := session.NewSessionCoordinator(orchestrator, planner, sink, defaultMode)
	hub := transport.NewHub(coordinator)
	srv := transport.NewServer(hub)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(*httpPort) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	}
}
