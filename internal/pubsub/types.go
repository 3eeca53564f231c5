package pubsub

import (
	"errors"

	"cloud.google.com/go/pubsub"
)

var ErrInvalidPushMessage = errors.New("invalid push message")

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// The value doubles as the topic name.
type EventType string

const (
	EventMatchRecorded EventType = "match-recorded"
)

// PushMessage is the JSON envelope Pub/Sub posts to push subscriptions.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID         string            `json:"messageId"`
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}
