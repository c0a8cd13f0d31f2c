package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

const (
	Channel               = "lawjobs:events"
	EventJobsUpdated      = "jobs_updated"
	EventFavoritesUpdated = "favorites_updated"
)

type Event struct {
	Type      string `json:"type"`
	Source    string `json:"source,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	JobID     string `json:"job_id,omitempty"`
	Changed   int    `json:"changed,omitempty"`
	Timestamp string `json:"timestamp"`
}

func JobsUpdated(source string, changed int) Event {
	return Event{Type: EventJobsUpdated, Source: source, Changed: changed}
}

func FavoritesUpdated(userID, jobID string) Event {
	return Event{Type: EventFavoritesUpdated, UserID: userID, JobID: jobID}
}

type PubSub interface {
	Available() bool
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error
}

// Notifier publishes events on the shared redis channel so every server
// instance can relay them. Without redis it delivers to the local hub.
type Notifier struct {
	pubsub PubSub
	hub    *Hub
	logger *log.Logger
	now    func() time.Time
}

func NewNotifier(pubsub PubSub, hub *Hub, logger *log.Logger) *Notifier {
	return &Notifier{pubsub: pubsub, hub: hub, logger: logger, now: time.Now}
}

func (n *Notifier) Notify(ctx context.Context, evt Event) error {
	if n == nil {
		return nil
	}
	if evt.Timestamp == "" {
		evt.Timestamp = n.now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if n.pubsub != nil && n.pubsub.Available() {
		if err := n.pubsub.Publish(ctx, Channel, b); err == nil {
			return nil
		} else if n.logger != nil {
			n.logger.Printf("WS publish failed, delivering locally | type=%s error=%v", evt.Type, err)
		}
	}

	if n.hub == nil {
		return errors.New("no event transport available")
	}
	n.deliver(evt.UserID, b)
	return nil
}

// Relay forwards events from the redis channel to the local hub until ctx is done.
func (n *Notifier) Relay(ctx context.Context) error {
	if n == nil || n.pubsub == nil || !n.pubsub.Available() {
		return nil
	}
	return n.pubsub.Subscribe(ctx, Channel, func(payload []byte) {
		var evt Event
		if err := json.Unmarshal(payload, &evt); err != nil {
			if n.logger != nil {
				n.logger.Printf("WS relay dropped malformed event | error=%v", err)
			}
			return
		}
		n.deliver(evt.UserID, payload)
	})
}

func (n *Notifier) deliver(userID string, payload []byte) {
	if userID != "" {
		n.hub.SendToUser(userID, payload)
		return
	}
	n.hub.Broadcast(payload)
}
