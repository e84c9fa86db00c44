// Command ft8spots runs the FT8 spot tracker: a UDP listener for decode
// telemetry, a time-windowed live view with periodic eviction, worked-set
// and classification-cache bookkeeping, an ADIF batch import path, and an
// HTTP/JSON query boundary.
//
// Usage:
//
//	ft8spots [options]
//
// Options:
//
//	-udp-port N          UDP decode port (default: 5140, env: UDP_PORT)
//	-http-port N         HTTP API port (default: 5019, env: HTTP_PORT)
//	-limit-time N        spot retention window in seconds (default: 1800, env: LimitTime)
//	-sweep-interval D    eviction sweep cadence (default: 30s)
//	-station-callsign S  operator callsign (default: SQ2WB, env: STATION_CALLSIGN)
//	-my-gridsquare S     operator grid locator (default: JO92ES, env: MY_GRIDSQUARE)
//	-adif-logs           append live spots to a WSJT-X compatible log (env: ADIF_LOGS != "No")
//	-data-dir DIR        directory for persisted state and logs (default: ./logs)
//	-nats-url URL        publish enriched spots to NATS when set (env: NATS_URL)
//	-nats-subject S      NATS subject for the spot feed (default: ft8spots.spots)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"ft8spots/internal/adif"
	"ft8spots/internal/api"
	"ft8spots/internal/cache"
	"ft8spots/internal/feed"
	"ft8spots/internal/importer"
	"ft8spots/internal/listener"
	"ft8spots/internal/lookup"
	"ft8spots/internal/store"
	"ft8spots/internal/worked"
)

func main() {
	udpPort := flag.Int("udp-port", envOrDefaultInt("UDP_PORT", 5140), "UDP port for FT8 decode lines")
	httpPort := flag.Int("http-port", envOrDefaultInt("HTTP_PORT", 5019), "HTTP port for the query API")
	limitTime := flag.Int("limit-time", envOrDefaultInt("LimitTime", 1800), "Spot retention window in seconds")
	sweepInterval := flag.Duration("sweep-interval", 30*time.Second, "Eviction sweep cadence")
	stationCall := flag.String("station-callsign", envOrDefault("STATION_CALLSIGN", "SQ2WB"), "Operator callsign")
	stationGrid := flag.String("my-gridsquare", envOrDefault("MY_GRIDSQUARE", "JO92ES"), "Operator grid locator")
	adifLogs := flag.Bool("adif-logs", envOrDefault("ADIF_LOGS", "No") != "No", "Append live spots to an ADIF log")
	dataDir := flag.String("data-dir", "./logs", "Directory for persisted state and logs")
	natsURL := flag.String("nats-url", envOrDefault("NATS_URL", ""), "NATS server URL for the spot feed (empty disables)")
	natsSubject := flag.String("nats-subject", "ft8spots.spots", "NATS subject for the spot feed")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared services. Each bootstraps from its persisted snapshot; a
	// missing file is an empty initial state.
	lookupCache := cache.New(lookup.CountryFile, filepath.Join(*dataDir, "callsign_cache.json"))
	if n, err := lookupCache.Load(); err != nil {
		log.Printf("cache load: %v", err)
	} else {
		stats := lookupCache.GetStats()
		log.Printf("loaded callsign cache: %d entries (%d successful, %d failed)", n, stats.Positive, stats.Negative)
	}

	workedSet := worked.NewTracker(filepath.Join(*dataDir, "worked_data.json"))
	if n, err := workedSet.Load(); err != nil {
		log.Printf("worked-set load: %v", err)
	} else {
		stats := workedSet.GetStats()
		log.Printf("loaded worked data: %d callsigns, %d countries, %d locators (document held %d callsigns)",
			stats.CallsignCount, stats.CountryCount, stats.LocatorCount, n)
	}

	liveStore := store.New()

	var exporter *adif.Exporter
	if *adifLogs {
		exporter = &adif.Exporter{
			Path:        filepath.Join(*dataDir, "wsjtx_log.adi"),
			StationCall: *stationCall,
			StationGrid: *stationGrid,
		}
	}

	var pub *feed.Publisher
	if *natsURL != "" {
		var err error
		pub, err = feed.Connect(*natsURL, *natsSubject)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to NATS: %v\n", err)
			os.Exit(1)
		}
		defer pub.Close()
	}

	batch := &importer.Importer{Cache: lookupCache, Worked: workedSet, Store: liveStore}

	log.Printf("--------------------------------------------------------------------")
	log.Printf("Syslog should send data to UDP port: %d", *udpPort)
	log.Printf("  *** LimitTime: showing spots from last %d sec", *limitTime)
	log.Printf("--------------------------------------------------------------------")

	ttl := time.Duration(*limitTime) * time.Second
	go liveStore.RunSweeper(ctx, *sweepInterval, ttl)

	udp := listener.New(listener.Config{Port: *udpPort}, lookupCache, workedSet, liveStore, exporter, pub)
	errCh := make(chan error, 2)
	go func() { errCh <- udp.Run(ctx) }()

	server := api.NewServer(api.Config{Port: *httpPort}, liveStore, workedSet, lookupCache, batch)
	go func() { errCh <- server.Run(ctx) }()

	select {
	case <-ctx.Done():
		log.Printf("shutting down, saving state...")
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		}
		stop()
	}

	if err := lookupCache.Save(); err != nil {
		log.Printf("cache save: %v", err)
	}
	if err := workedSet.Save(); err != nil {
		log.Printf("worked-set save: %v", err)
	}
	log.Printf("state saved, exiting")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
