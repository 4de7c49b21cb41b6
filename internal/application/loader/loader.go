// Package loader refreshes the per-session collection caches from the
// backend. The re-fetch-after-write policy lives here: handlers call
// Invalidate after a successful mutation and RefreshAll before rendering a
// list, instead of scattering fetch calls through form handlers.
package loader

import (
	"context"
	"log/slog"
	"sync"

	"fitzone/internal/application/cache"
	"fitzone/internal/domain/member"
	"fitzone/internal/domain/session"
	"fitzone/internal/domain/trainer"
)

// Backend is the slice of the upstream API the loader needs.
type Backend interface {
	ListMembers(ctx context.Context, token string) ([]member.Record, error)
	ListTrainers(ctx context.Context, token string) ([]trainer.Record, error)
}

// Loader fetches collections and installs them in the session's cache.
type Loader struct {
	backend Backend
	caches  *cache.Registry
}

// New creates a Loader over the given backend and cache registry.
func New(backend Backend, caches *cache.Registry) *Loader {
	return &Loader{backend: backend, caches: caches}
}

// RefreshAll fetches the members and trainers collections concurrently and
// returns a snapshot taken after both fetches settled.
//
// A failed fetch keeps the previous (stale) copy so partial backend failure
// degrades gracefully instead of blanking the page. A fetch that raced with
// an invalidation is discarded: its generation no longer matches, so a late
// response cannot overwrite newer state.
func (l *Loader) RefreshAll(ctx context.Context, sess session.Session) cache.Snapshot {
	c := l.caches.For(sess.ID)
	membersGen, trainersGen := c.Generations()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		list, err := l.backend.ListMembers(ctx, sess.APIToken)
		if err != nil {
			slog.Warn("members_refresh_failed", "error", err)
			return
		}
		if !c.ReplaceMembers(list, membersGen) {
			slog.Debug("members_refresh_discarded", "generation", membersGen)
		}
	}()
	go func() {
		defer wg.Done()
		list, err := l.backend.ListTrainers(ctx, sess.APIToken)
		if err != nil {
			slog.Warn("trainers_refresh_failed", "error", err)
			return
		}
		if !c.ReplaceTrainers(list, trainersGen) {
			slog.Debug("trainers_refresh_discarded", "generation", trainersGen)
		}
	}()
	wg.Wait()

	return c.Snapshot()
}

// Snapshot reads the session's cache without refreshing.
func (l *Loader) Snapshot(sessionID string) cache.Snapshot {
	return l.caches.For(sessionID).Snapshot()
}

// Invalidate marks the session's collections stale after a successful write.
func (l *Loader) Invalidate(sessionID string) {
	l.caches.For(sessionID).Invalidate()
}

// Drop discards the session's cache entirely. Called at logout.
func (l *Loader) Drop(sessionID string) {
	l.caches.Drop(sessionID)
}
