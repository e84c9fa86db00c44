// Package feed publishes enriched live spots to a NATS subject.
package feed

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"ft8spots/internal/spot"
)

// Publisher is a fire-and-forget spot feed. Publish errors are logged
// and never fatal; the feed is an outbound convenience, not a pipeline
// stage.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// Connect dials the NATS server and returns a publisher for subject.
func Connect(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("ft8spots"))
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &Publisher{nc: nc, subject: subject}, nil
}

// Publish sends one spot as JSON.
func (p *Publisher) Publish(sp *spot.Spot) {
	data, err := json.Marshal(sp)
	if err != nil {
		log.Printf("feed: marshal spot: %v", err)
		return
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		log.Printf("feed: publish %s: %v", p.subject, err)
	}
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}
