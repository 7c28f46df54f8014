package processor

import (
	"github.com/mauv0809/swiss-tournament/internal/pubsub"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

// Processor publishes tournament announcements and delivers them when they come back from Pub/Sub.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
}

// PairingsEvent is the payload of pubsub.EventPairingsGenerated.
type PairingsEvent struct {
	ID        string               `msgpack:"id"`
	CreatedAt int64                `msgpack:"created_at"`
	Pairings  []tournament.Pairing `msgpack:"pairings"`
}

// StandingsEvent is the payload of pubsub.EventStandingsPublished.
type StandingsEvent struct {
	ID        string                `msgpack:"id"`
	CreatedAt int64                 `msgpack:"created_at"`
	Standings []tournament.Standing `msgpack:"standings"`
}
