// Package history persists negotiation decisions so that past runs can be
// audited and queried.
package history

import (
	"context"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

// Record captures one negotiation run and its decision.
type Record struct {
	Timestamp       time.Time      `json:"timestamp"`
	Participants    []string       `json:"participants"`
	RequestedLength int            `json:"requested_length_minutes"`
	Decision        model.Decision `json:"decision"`
}

// Query defines filters for retrieving records. Zero values match anything.
type Query struct {
	Start       time.Time
	End         time.Time
	Participant string
	Status      string
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}
