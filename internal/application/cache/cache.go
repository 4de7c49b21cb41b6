// Package cache holds each session's client-side copy of the member and
// trainer collections. The copies are possibly stale by design: they are
// replaced wholesale on refresh, never patched in place, and a mutation
// invalidates them rather than editing them.
package cache

import (
	"sync"

	"fitzone/internal/domain/member"
	"fitzone/internal/domain/trainer"
)

// Snapshot is a point-in-time copy of both collections, safe to read after
// return regardless of concurrent refreshes.
type Snapshot struct {
	Members  []member.Record
	Trainers []trainer.Record
}

// FindMember returns the cached member with the given id.
func (s Snapshot) FindMember(id string) (member.Record, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return member.Record{}, false
}

// FindTrainer returns the cached trainer with the given id.
func (s Snapshot) FindTrainer(id string) (trainer.Record, bool) {
	for _, t := range s.Trainers {
		if t.ID == id {
			return t, true
		}
	}
	return trainer.Record{}, false
}

// Collections is one session's cache. Each collection carries a generation
// counter; a refresh that started before the last invalidation is stale and
// its result is discarded instead of overwriting newer state.
type Collections struct {
	mu          sync.RWMutex
	members     []member.Record
	trainers    []trainer.Record
	membersGen  uint64
	trainersGen uint64
}

// Snapshot copies both collections.
// POST: The returned slices are not aliased by the cache
func (c *Collections) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := Snapshot{
		Members:  make([]member.Record, len(c.members)),
		Trainers: make([]trainer.Record, len(c.trainers)),
	}
	copy(snap.Members, c.members)
	copy(snap.Trainers, c.trainers)
	return snap
}

// Generations returns the current generation of each collection. A refresh
// records these before fetching and presents them back on replace.
func (c *Collections) Generations() (members, trainers uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.membersGen, c.trainersGen
}

// ReplaceMembers installs a freshly fetched members list.
// PRE: gen is the members generation observed before the fetch started
// POST: Returns false and leaves the cache untouched if the generation moved
func (c *Collections) ReplaceMembers(list []member.Record, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.membersGen {
		return false
	}
	c.members = list
	return true
}

// ReplaceTrainers installs a freshly fetched trainers list.
// PRE: gen is the trainers generation observed before the fetch started
// POST: Returns false and leaves the cache untouched if the generation moved
func (c *Collections) ReplaceTrainers(list []trainer.Record, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.trainersGen {
		return false
	}
	c.trainers = list
	return true
}

// Invalidate marks both collections stale after a write. Cached copies stay
// readable (stale-but-present) until the next refresh completes; in-flight
// fetches from before the write can no longer land.
func (c *Collections) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.membersGen++
	c.trainersGen++
}

// Registry maps session IDs to their collection caches.
type Registry struct {
	mu        sync.Mutex
	bySession map[string]*Collections
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySession: make(map[string]*Collections)}
}

// For returns the cache for a session, creating it on first use.
func (r *Registry) For(sessionID string) *Collections {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.bySession[sessionID]
	if !ok {
		c = &Collections{}
		r.bySession[sessionID] = c
	}
	return c
}

// Drop discards a session's cache. Called at logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bySession, sessionID)
}
