package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// noop encodes messages but only logs them. It is used when no GCP project is configured.
type noop struct{}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventPairingsGenerated  EventType = "pairings-generated"
	EventStandingsPublished EventType = "standings-published"
)

// PushRequest is the body Pub/Sub posts to a push subscription endpoint.
type PushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
