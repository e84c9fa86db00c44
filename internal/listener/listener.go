// Package listener receives FT8 decode lines over UDP and drives the
// live ingest pipeline.
//
// The receive loop only parses and enqueues; enrichment, worked-set
// bookkeeping and store insertion happen on worker goroutines behind a
// bounded queue, so a slow classification lookup never stalls datagram
// consumption. When the queue is full the decode is dropped and counted.
package listener

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"unicode/utf8"

	"ft8spots/internal/adif"
	"ft8spots/internal/cache"
	"ft8spots/internal/feed"
	"ft8spots/internal/metrics"
	"ft8spots/internal/parser"
	"ft8spots/internal/store"
	"ft8spots/internal/worked"
)

// maxDatagram bounds one datagram read. Oversized payloads are truncated
// by the transport and generally surface as parse failures.
const maxDatagram = 1024

// Config holds listener settings.
type Config struct {
	Port      int
	QueueSize int // bounded enrichment queue, default 256
	Workers   int // enrichment workers, default 1
}

// Listener binds the inbound UDP endpoint and owns the ingest pipeline.
type Listener struct {
	cfg    Config
	cache  *cache.Cache
	worked *worked.Tracker
	store  *store.Store

	// Optional sinks; nil disables them.
	exporter *adif.Exporter
	feed     *feed.Publisher

	queue chan *parser.Decode
}

// New creates a listener over the shared services.
func New(cfg Config, c *cache.Cache, w *worked.Tracker, s *store.Store, exporter *adif.Exporter, pub *feed.Publisher) *Listener {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Listener{
		cfg:      cfg,
		cache:    c,
		worked:   w,
		store:    s,
		exporter: exporter,
		feed:     pub,
		queue:    make(chan *parser.Decode, cfg.QueueSize),
	}
}

// Run binds the UDP socket and consumes datagrams until ctx is
// cancelled.
func (l *Listener) Run(ctx context.Context) error {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: l.cfg.Port})
	if err != nil {
		return fmt.Errorf("bind udp port %d: %w", l.cfg.Port, err)
	}
	log.Printf("listener: receiving FT8 decodes on udp port %d", l.cfg.Port)

	// Unblock the read loop on shutdown.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	var wg sync.WaitGroup
	for i := 0; i < l.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.worker(ctx)
		}()
	}

	buf := make([]byte, maxDatagram)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			close(l.queue)
			wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("udp read: %w", err)
		}
		l.handleDatagram(buf[:n])
	}
}

// handleDatagram validates, parses and enqueues one payload. Anything
// that fails is dropped silently; the sender will not retransmit.
func (l *Listener) handleDatagram(payload []byte) {
	metrics.DatagramsReceived.Inc()

	if !utf8.Valid(payload) {
		metrics.ParseFailures.Inc()
		return
	}

	decode, ok := parser.ParseLine(string(payload))
	if !ok {
		metrics.ParseFailures.Inc()
		return
	}

	select {
	case l.queue <- decode:
	default:
		metrics.QueueDrops.Inc()
	}
}

// worker enriches queued decodes and inserts the completed spots.
func (l *Listener) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case decode, ok := <-l.queue:
			if !ok {
				return
			}
			l.process(decode)
		}
	}
}

// process fills classification and worked-membership fields, records the
// spot as seen and inserts it into the live store.
func (l *Listener) process(decode *parser.Decode) {
	sp := decode.Spot()

	if info := l.cache.Classify(decode.Callsign); info != nil {
		sp.Country = info.Country
		sp.ADIFID = info.ADIF
	}

	// Membership reflects the state before this spot is recorded.
	sp.WorkedBefore = l.worked.IsCallsignWorked(sp.Callsign)
	sp.LocatorWorkedBefore = l.worked.IsLocatorWorked(sp.Locator)
	sp.CountryWorkedBefore = l.worked.IsCountryWorked(sp.ADIFID)
	l.worked.Record(sp.Callsign, sp.ADIFID, sp.Locator)

	l.store.Insert(sp)
	log.Printf("listener: new spot %s %s %.3f kHz %ddB", sp.Callsign, sp.Locator, sp.Frequency, sp.Signal)

	if l.exporter != nil {
		if err := l.exporter.Append(&sp); err != nil {
			log.Printf("listener: adif export failed: %v", err)
		}
	}
	if l.feed != nil {
		l.feed.Publish(&sp)
	}
}
