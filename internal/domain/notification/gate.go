// Package notification contains the earned-notification gate: the once-per-
// scope trigger that controls the one-time "Seal Earned" signal.
package notification

import (
	"context"
	"fmt"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// FlagStore is the persistence port for notification de-duplication flags.
// Keys are scoped per user; swapping backends (in-memory, Redis) requires no
// change to the gate.
//
// De-duplication is best-effort within a storage scope: if the scope is lost
// (flushed store), the signal re-triggers once. That is a documented
// limitation, not a defect.
type FlagStore interface {
	// Has reports whether the flag is set for the user.
	Has(ctx context.Context, userID shared.UserID, key string) (bool, error)

	// SetIfAbsent atomically sets the flag and reports whether this call
	// set it. A false return means another call got there first.
	SetIfAbsent(ctx context.Context, userID shared.UserID, key string) (bool, error)
}

// SealState is the per-seal, per-user notification state machine. Transitions
// are one-directional: Locked -> EarnedUnnotified -> EarnedNotified, with no
// path back to Locked.
type SealState int

const (
	// StateLocked - not all objectives are completed.
	StateLocked SealState = iota

	// StateEarnedUnnotified - the seal is earned and the signal has not
	// fired yet.
	StateEarnedUnnotified

	// StateEarnedNotified - the seal is earned and the signal already fired.
	StateEarnedNotified
)

// String returns the string representation of the state.
func (s SealState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateEarnedUnnotified:
		return "earned_unnotified"
	case StateEarnedNotified:
		return "earned_notified"
	default:
		return "unknown"
	}
}

// FlagKey returns the de-duplication key for a seal, "seal-earned:<slug>".
func FlagKey(slug shared.Slug) string {
	return fmt.Sprintf("seal-earned:%s", slug)
}

// Gate decides, once per (user, seal) per storage scope, whether to surface
// the "Seal Earned" signal.
type Gate struct {
	flags FlagStore

	// alwaysNotify forces ShouldNotify to return true without touching the
	// flag store. Development override, off by default.
	alwaysNotify bool
}

// NewGate creates a gate over the given flag store.
func NewGate(flags FlagStore, alwaysNotify bool) *Gate {
	return &Gate{flags: flags, alwaysNotify: alwaysNotify}
}

// ShouldNotify consumes the one-time signal for the seal. It must be called
// only once the seal is currently earned. The first call per (user, seal)
// returns true and sets the flag; every later call returns false.
func (g *Gate) ShouldNotify(ctx context.Context, userID shared.UserID, slug shared.Slug) (bool, error) {
	if g.alwaysNotify {
		return true, nil
	}
	set, err := g.flags.SetIfAbsent(ctx, userID, FlagKey(slug))
	if err != nil {
		return false, shared.WrapError("notification", "ShouldNotify", shared.ErrStorageUnavailable, "flag store write failed", err)
	}
	return set, nil
}

// State reports the seal's notification state without consuming the signal.
// earned is the caller's current aggregation result for the seal.
func (g *Gate) State(ctx context.Context, userID shared.UserID, slug shared.Slug, earned bool) (SealState, error) {
	if !earned {
		return StateLocked, nil
	}
	notified, err := g.flags.Has(ctx, userID, FlagKey(slug))
	if err != nil {
		return StateLocked, shared.WrapError("notification", "State", shared.ErrStorageUnavailable, "flag store read failed", err)
	}
	if notified {
		return StateEarnedNotified, nil
	}
	return StateEarnedUnnotified, nil
}
