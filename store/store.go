// Package store holds the persistence capabilities the tracker consumes:
// a fast synchronous per-user cache and a slower authoritative remote
// document collection.
package store

import (
	"context"

	"github.com/kintai-app/kintai/model"
)

// Cache is a per-user key-value blob store. Keys are scoped by a composite
// (user id, logical key) pair, never by string concatenation.
type Cache interface {
	Get(ctx context.Context, userID, key string) ([]byte, bool, error)
	Set(ctx context.Context, userID, key string, value []byte) error
	Delete(ctx context.Context, userID, key string) error
	List(ctx context.Context, userID string) ([]string, error)
}

// Remote is the per-user document collection. Each document is keyed by
// the record identifier; writes merge fields rather than replacing the
// whole document.
type Remote interface {
	Load(ctx context.Context, userID string) (model.RecordSet, error)
	Upsert(ctx context.Context, userID string, rec *model.AttendanceRecord) error
}

// RecordsKey is the cache key holding a user's full serialized RecordSet.
const RecordsKey = "attendance_records_v1"
