package core

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/store"
	"github.com/kintai-app/kintai/utils"
)

// Tracker reconciles one user's record set across the local cache and the
// remote document collection.
//
// Startup reads the cache synchronously so there is always a displayable
// state, then loads the remote collection in the background. Once the
// remote answers with a non-empty set it replaces the in-memory one
// wholesale; document keys override any provisional local ids. Until that
// first load finishes no write-back runs, so an empty default state can
// never clobber real remote data during the load race. In-session edits
// made inside that window are still lost if the remote answers later;
// remote-wins is the documented policy, not an accident.
//
// In-memory state is authoritative: remote failures are logged and
// dropped, never surfaced.
type Tracker struct {
	userID string
	cache  store.Cache
	remote store.Remote

	// Now is the wall-clock source, swappable in tests.
	Now func() time.Time

	mu           sync.Mutex
	records      model.RecordSet
	remoteLoaded bool

	upserts sync.WaitGroup
}

func NewTracker(userID string, cache store.Cache, remote store.Remote) *Tracker {
	return &Tracker{
		userID: userID,
		cache:  cache,
		remote: remote,
		Now:    time.Now,
	}
}

// Start loads the cache synchronously and kicks off the remote load.
func (t *Tracker) Start(ctx context.Context) {
	t.loadCache(ctx)
	go t.LoadRemote(ctx)
}

// loadCache seeds in-memory state from the local cache, or from the
// default today-record when the cache is absent or not a recognizable
// record list. Malformed state is recovered silently.
func (t *Tracker) loadCache(ctx context.Context) {
	now := t.Now()

	set := DefaultSet(now)
	raw, ok, err := t.cache.Get(ctx, t.userID, store.RecordsKey)
	if err != nil {
		slog.Error("cache read failed", "user", t.userID, "err", err)
	} else if ok {
		var cached model.RecordSet
		if err := json.Unmarshal(raw, &cached); err == nil && len(cached) > 0 {
			set = cached
		}
	}

	t.mu.Lock()
	t.records = set
	t.mu.Unlock()
}

// LoadRemote performs the first (or a repeated) remote read and applies
// the reconciliation rules. Start runs it in the background; tests call
// it directly.
func (t *Tracker) LoadRemote(ctx context.Context) {
	set, err := t.remote.Load(ctx, t.userID)

	t.mu.Lock()
	defer t.mu.Unlock()
	// Loaded is flagged even on failure, like a finally block: from here
	// on the in-memory state is the source of truth and write-back may run.
	t.remoteLoaded = true

	if err != nil {
		slog.Error("remote load failed", "user", t.userID, "err", err)
		return
	}

	if len(set) > 0 {
		sortByDateDesc(set)
		t.records = set
	} else if len(t.records) == 0 {
		t.records = DefaultSet(t.Now())
	}

	t.records = EnsureDate(t.records, utils.DateKey(t.Now()))
	t.flushLocked(ctx)
}

// Apply runs one attendance action and returns the affected record with
// its refreshed status. Both come from the same locked pass over one
// clock sample, so a midnight rollover between calls cannot pair an
// action with the next day's record. Disallowed actions still return a
// valid snapshot; they just change nothing.
func (t *Tracker) Apply(ctx context.Context, action Action) (*model.AttendanceRecord, DerivedStatus) {
	now := t.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = Apply(t.records, action, now)
	t.flushLocked(ctx)
	rec := t.records.ByDate(utils.DateKey(now))
	return rec, Derive(rec, now)
}

// Today returns the current day's record and its derived status.
func (t *Tracker) Today(ctx context.Context) (*model.AttendanceRecord, DerivedStatus) {
	now := t.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureTodayLocked(ctx, now)
	rec := t.records.ByDate(utils.DateKey(now))
	return rec, Derive(rec, now)
}

// Records returns the full set, date descending. The read doubles as a
// set-completeness check: a date rollover materializes the new day here.
func (t *Tracker) Records(ctx context.Context) model.RecordSet {
	now := t.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.ensureTodayLocked(ctx, now)
	out := make(model.RecordSet, len(t.records))
	copy(out, t.records)
	sortByDateDesc(out)
	return out
}

// Summary aggregates one month from the current set.
func (t *Tracker) Summary(year, month int) MonthlySummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Summarize(t.records, year, month)
}

// MonthRecords returns the detail rows for one month, date ascending.
func (t *Tracker) MonthRecords(year, month int) []*model.AttendanceRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return MonthRecords(t.records, year, month)
}

// RemoteLoaded reports whether the first remote read has completed.
func (t *Tracker) RemoteLoaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remoteLoaded
}

// Wait blocks until all in-flight remote upserts have finished.
func (t *Tracker) Wait() {
	t.upserts.Wait()
}

// ensureTodayLocked converges to a set containing today's record. It only
// flushes when it actually appended, so the change-triggered pass cannot
// loop.
func (t *Tracker) ensureTodayLocked(ctx context.Context, now time.Time) {
	next := EnsureDate(t.records, utils.DateKey(now))
	if len(next) == len(t.records) {
		return
	}
	t.records = next
	t.flushLocked(ctx)
}

// flushLocked republishes the whole set: local cache synchronously and
// unconditionally, then one merge upsert per record, fire-and-forget in
// parallel. Gated on the first remote load having completed. Records are
// copy-on-write after an action, so the goroutines read stable snapshots.
func (t *Tracker) flushLocked(ctx context.Context) {
	if !t.remoteLoaded {
		return
	}

	raw, err := json.Marshal(t.records)
	if err != nil {
		slog.Error("records encode failed", "user", t.userID, "err", err)
		return
	}
	if err := t.cache.Set(ctx, t.userID, store.RecordsKey, raw); err != nil {
		slog.Error("cache write failed", "user", t.userID, "err", err)
	}

	// Upserts outlive the triggering request, so detach its cancellation.
	bg := context.WithoutCancel(ctx)
	for _, rec := range t.records {
		t.upserts.Add(1)
		go func(rec *model.AttendanceRecord) {
			defer t.upserts.Done()
			if err := t.remote.Upsert(bg, t.userID, rec); err != nil {
				slog.Error("remote upsert failed",
					"user", t.userID, "doc", rec.ID, "err", err)
			}
		}(rec)
	}
}

func sortByDateDesc(set model.RecordSet) {
	sort.Slice(set, func(i, j int) bool { return set[i].Date > set[j].Date })
}
