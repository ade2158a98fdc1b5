package analytics

import (
	"context"
	"sync"

	"DONATION_CHECKOUT_GO/internal/utils"
)

const (
	CategoryDonation   = "donation"
	CategoryEngagement = "engagement"
)

type Event struct {
	Action   string   `json:"action"`
	Category string   `json:"category"`
	Label    string   `json:"label,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

func Value(v float64) *float64 {
	return &v
}

// Sink receives analytics events. Delivery problems stay inside the sink.
type Sink interface {
	Track(ctx context.Context, event Event)
}

type LogSink struct {
	Log *utils.Logger
}

func (s LogSink) Track(_ context.Context, event Event) {
	fields := map[string]interface{}{
		"action":   event.Action,
		"category": event.Category,
	}
	if event.Label != "" {
		fields["label"] = event.Label
	}
	if event.Value != nil {
		fields["value"] = *event.Value
	}
	s.Log.Info("analytics_evento", fields)
}

type Multi []Sink

func (m Multi) Track(ctx context.Context, event Event) {
	for _, s := range m {
		s.Track(ctx, event)
	}
}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Track(_ context.Context, event Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}
