// Package store provides the pending-sanction coordination store: a keyed,
// TTL-bound record that bridges a sanction command and the reason modal
// submitted later, possibly by another instance. Records are consumed exactly
// once; expiry is enforced by the store itself.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"sentinel-bot/model"
)

const (
	// Namespace prefixes every pending-sanction key. The modal custom id is
	// the key itself, so the modal submission carries its own correlation.
	Namespace = "sanction"

	// DefaultTTL bounds how long a pending sanction may wait for its modal.
	// It must not outlive the platform's interaction validity window of
	// fifteen minutes.
	DefaultTTL = 15 * time.Minute
)

var (
	// ErrAlreadyExists is returned by Create when the key is already
	// present. Interaction ids are unique, so this indicates a duplicate
	// event delivery.
	ErrAlreadyExists = errors.New("pending sanction already exists")

	// ErrNotFound is returned by Consume when the record is absent, already
	// consumed or expired.
	ErrNotFound = errors.New("pending sanction not found")
)

// Pending is the consume-once coordination store. Create and Consume must be
// linearizable per key: under concurrent delivery of the same modal-submit
// event, exactly one Consume succeeds.
type Pending interface {
	Create(ctx context.Context, key string, pending model.PendingSanction) error
	Consume(ctx context.Context, key string) (model.PendingSanction, error)
}

// Key derives the pending-sanction key for an interaction id.
func Key(interactionID string) string {
	return Namespace + ":" + interactionID
}

// ParseKey reports whether customID is a pending-sanction key and returns
// the interaction id it was derived from.
func ParseKey(customID string) (string, bool) {
	id, ok := strings.CutPrefix(customID, Namespace+":")
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
