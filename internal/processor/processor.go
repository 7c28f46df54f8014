package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/swiss-tournament/internal/pubsub"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
	}
}

// PublishPairings computes the next round and publishes it for announcement.
// The pairings are returned so the caller can show them right away.
func (p *Processor) PublishPairings(ctx context.Context) ([]tournament.Pairing, error) {
	pairings, err := p.store.SwissPairings(ctx)
	if err != nil {
		return nil, err
	}
	event := PairingsEvent{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().Unix(),
		Pairings:  pairings,
	}
	if err := p.pubsub.SendMessage(ctx, pubsub.EventPairingsGenerated, event); err != nil {
		return nil, fmt.Errorf("failed to publish pairings: %w", err)
	}
	log.Info("Published pairings", "event", event.ID, "pairings", len(pairings))
	return pairings, nil
}

// PublishStandings snapshots the current standings and publishes them for announcement.
func (p *Processor) PublishStandings(ctx context.Context) (string, error) {
	standings, err := p.store.PlayerStandings(ctx)
	if err != nil {
		return "", err
	}
	event := StandingsEvent{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().Unix(),
		Standings: standings,
	}
	if err := p.pubsub.SendMessage(ctx, pubsub.EventStandingsPublished, event); err != nil {
		return "", fmt.Errorf("failed to publish standings: %w", err)
	}
	log.Info("Published standings", "event", event.ID, "players", len(standings))
	return event.ID, nil
}

// HandlePairingsMessage decodes a pushed pairings event and announces it.
func (p *Processor) HandlePairingsMessage(data []byte, dryRun bool) error {
	var event PairingsEvent
	if err := p.pubsub.ProcessMessage(data, &event); err != nil {
		return fmt.Errorf("failed to decode pairings event: %w", err)
	}
	log.Info("Announcing pairings", "event", event.ID, "pairings", len(event.Pairings), "dry_run", dryRun)
	return p.notifier.SendPairings(event.Pairings, dryRun)
}

// HandleStandingsMessage decodes a pushed standings event and announces it.
func (p *Processor) HandleStandingsMessage(data []byte, dryRun bool) error {
	var event StandingsEvent
	if err := p.pubsub.ProcessMessage(data, &event); err != nil {
		return fmt.Errorf("failed to decode standings event: %w", err)
	}
	log.Info("Announcing standings", "event", event.ID, "players", len(event.Standings), "dry_run", dryRun)
	return p.notifier.SendStandings(event.Standings, dryRun)
}
