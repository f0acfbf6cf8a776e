package services

import (
	"encoding/json"
	"log"
	"time"
)

// Activity event routing keys.
const (
	EventFollowRequested = "follow.requested"
	EventFollowAccepted  = "follow.accepted"
	EventPostCreated     = "post.created"
)

// EventPublisher publishes activity events to the message broker.
// *rabbitmq.Client satisfies it; services tolerate a nil publisher.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publishEvent marshals and sends an activity event. Broker failures are
// logged, never propagated; eventing is best-effort.
func publishEvent(pub EventPublisher, routingKey string, payload map[string]interface{}) {
	if pub == nil {
		return
	}
	payload["at"] = time.Now().Format(time.RFC3339)
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := pub.Publish("", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
