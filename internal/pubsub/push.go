package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// DecodePushBody unwraps a push subscription request body and returns the
// raw message data.
func DecodePushBody(body []byte) ([]byte, error) {
	var msg PushMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPushMessage, err)
	}
	if msg.Message.Data == "" {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidPushMessage)
	}
	raw, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPushMessage, err)
	}
	return raw, nil
}

// EncodePushBody builds the envelope Pub/Sub would post for the given data.
// Used by tests and local tooling to drive push endpoints.
func EncodePushBody(subscription string, data []byte) ([]byte, error) {
	var msg PushMessage
	msg.Subscription = subscription
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	return json.Marshal(msg)
}
