package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
)

// Publisher publishes day summaries.
type Publisher interface {
	// Publish sends the summary of one resource.
	Publish(ctx context.Context, summary machine.Summary) error
	// Close disconnects from the broker.
	Close() error
}

// Payload is the JSON message published for one resource.
type Payload struct {
	Resource    string                  `json:"resource"`
	Samples     int                     `json:"samples"`
	Utilization float64                 `json:"utilization"`
	States      map[string]StatePayload `json:"states"`
}

// StatePayload is the time spent in one state.
type StatePayload struct {
	Label   string  `json:"label"`
	Seconds float64 `json:"seconds"`
}

// FormatPayload creates the JSON payload of a summary.
func FormatPayload(summary machine.Summary) ([]byte, error) {
	payload := Payload{
		Resource:    summary.Resource,
		Samples:     summary.Samples,
		Utilization: math.Round(summary.Utilization()*10000) / 10000,
		States:      make(map[string]StatePayload, len(summary.Durations)),
	}

	for _, state := range machine.States() {
		payload.States[state.String()] = StatePayload{
			Label:   state.Label(),
			Seconds: summary.Durations[state].Seconds(),
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return data, nil
}

// Topic returns the topic of resource under prefix.
func Topic(prefix, resource string) string {
	return strings.TrimRight(prefix, "/") + "/" + resource
}
