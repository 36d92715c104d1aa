package core

import (
	"context"
	"sync"
	"time"

	"github.com/kintai-app/kintai/store"
)

// Registry hands out one Tracker per user, creating and starting it on
// first use. Store handles are injected once here; nothing in the engine
// reaches for globals.
type Registry struct {
	cache  store.Cache
	remote store.Remote
	now    func() time.Time

	mu       sync.Mutex
	trackers map[string]*Tracker
}

func NewRegistry(cache store.Cache, remote store.Remote) *Registry {
	return &Registry{
		cache:    cache,
		remote:   remote,
		now:      time.Now,
		trackers: make(map[string]*Tracker),
	}
}

// Tracker returns the user's tracker, starting one if needed.
func (g *Registry) Tracker(ctx context.Context, userID string) *Tracker {
	g.mu.Lock()
	defer g.mu.Unlock()

	if t, ok := g.trackers[userID]; ok {
		return t
	}
	t := NewTracker(userID, g.cache, g.remote)
	t.Now = g.now
	// The tracker lives past the request that created it.
	t.Start(context.WithoutCancel(ctx))
	g.trackers[userID] = t
	return t
}

// Wait blocks until every tracker's in-flight upserts are done. Used on
// shutdown so fire-and-forget writes get a chance to land.
func (g *Registry) Wait() {
	g.mu.Lock()
	trackers := make([]*Tracker, 0, len(g.trackers))
	for _, t := range g.trackers {
		trackers = append(trackers, t)
	}
	g.mu.Unlock()

	for _, t := range trackers {
		t.Wait()
	}
}
