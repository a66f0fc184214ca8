// Package session implements the session-boundary state machine. It is a
// pure transition function over an explicit open-session value: no clocks,
// no I/O, no shared state, so it is testable without any OS interaction.
package session

import (
	"time"

	"github.com/focuslog/focuslog/internal/models"
	"github.com/focuslog/focuslog/pkg/window"
)

// Identity is the (application, title) pair boundaries are compared on.
// A change in either member closes the open session, so switching tabs
// within one application counts as a new session.
type Identity struct {
	Application string
	Title       string
}

// IdleIdentity is the effective identity while the idle flag is set,
// regardless of what window sits underneath.
var IdleIdentity = Identity{Application: models.IdleApplication, Title: models.IdleApplication}

// Open is the session currently being tracked. At most one exists;
// its end time is implicitly "now" until a boundary closes it.
type Open struct {
	Identity
	Start time.Time
}

// Advance evaluates one tick. It returns the next open session (possibly
// the same one, possibly nil) and the UsageRecord emitted if this tick
// closed a session.
//
// An unknown effective identity (active but no resolvable window) skips
// the tick entirely: it neither closes nor opens a session, so the prior
// session is extended implicitly by not acting.
func Advance(open *Open, snap *window.Snapshot, isIdle bool, now time.Time) (*Open, *models.UsageRecord) {
	id, known := effectiveIdentity(snap, isIdle)
	if !known {
		return open, nil
	}

	if open == nil {
		return &Open{Identity: id, Start: now}, nil
	}

	if open.Identity == id {
		return open, nil
	}

	return &Open{Identity: id, Start: now}, open.close(now)
}

// Flush closes the open session at shutdown time. This is the only path
// by which the last session reaches the log; callers must guarantee it
// runs exactly once per stop.
func Flush(open *Open, now time.Time) *models.UsageRecord {
	if open == nil {
		return nil
	}
	return open.close(now)
}

func effectiveIdentity(snap *window.Snapshot, isIdle bool) (Identity, bool) {
	if isIdle {
		return IdleIdentity, true
	}
	if snap == nil || snap.Application == "" {
		return Identity{}, false
	}
	return Identity{Application: snap.Application, Title: snap.Title}, true
}

func (o *Open) close(now time.Time) *models.UsageRecord {
	return &models.UsageRecord{
		Application: o.Application,
		Title:       o.Title,
		StartTime:   o.Start,
		EndTime:     now,
		Duration:    int64(now.Sub(o.Start) / time.Second),
	}
}
