// Package audit implements the append-only service-wide audit log.
// Entries are shared read-only state once appended; nothing ever rewrites
// or removes them.
package audit

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oversightlabs/approval-service/types"
)

const (
	entryKeyPrefix    = "audit:entry:"
	timelineKey       = "audit:timeline"
	categoryKeyPrefix = "audit:category:"
	userKeyPrefix     = "audit:user:"
)

// Recorder keeps the audit log in memory and, when a Redis client is
// provided, mirrors every entry into keyed timelines for other services.
type Recorder struct {
	mu      sync.RWMutex
	entries []types.AuditLogEntry
	rdb     *redis.Client
}

// NewRecorder creates a Recorder. rdb may be nil for memory-only operation.
func NewRecorder(rdb *redis.Client) *Recorder {
	return &Recorder{rdb: rdb}
}

// Record appends one entry and returns it. The Redis mirror is best-effort;
// a write failure never blocks or fails the domain mutation that caused it.
func (r *Recorder) Record(category types.AuditCategory, action, description, userID string, details map[string]any) types.AuditLogEntry {
	entry := types.AuditLogEntry{
		ID:          uuid.New().String(),
		Action:      action,
		Description: description,
		UserID:      userID,
		Timestamp:   time.Now(),
		Details:     details,
		Category:    category,
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()

	if r.rdb != nil {
		r.mirror(entry)
	}
	return entry
}

func (r *Recorder) mirror(entry types.AuditLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	score := float64(entry.Timestamp.UnixNano())
	pipe := r.rdb.Pipeline()
	pipe.Set(ctx, entryKeyPrefix+entry.ID, data, 0)
	pipe.ZAdd(ctx, timelineKey, redis.Z{Score: score, Member: entry.ID})
	pipe.ZAdd(ctx, categoryKeyPrefix+string(entry.Category), redis.Z{Score: score, Member: entry.ID})
	if entry.UserID != "" {
		pipe.ZAdd(ctx, userKeyPrefix+entry.UserID, redis.Z{Score: score, Member: entry.ID})
	}
	_, _ = pipe.Exec(ctx)
}

// ByCategory returns all entries in one category, oldest first.
func (r *Recorder) ByCategory(category types.AuditCategory) []types.AuditLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.AuditLogEntry
	for _, e := range r.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// ByUser returns all entries recorded for one actor, oldest first.
func (r *Recorder) ByUser(userID string) []types.AuditLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []types.AuditLogEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns up to limit entries, newest first.
func (r *Recorder) Recent(limit int) []types.AuditLogEntry {
	r.mu.RLock()
	out := make([]types.AuditLogEntry, len(r.entries))
	copy(out, r.entries)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// All returns a copy of the full log, oldest first.
func (r *Recorder) All() []types.AuditLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.AuditLogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
