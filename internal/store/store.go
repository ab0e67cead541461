package store

import (
	"context"
	"sync"
	"time"
)

// KV is best-effort string storage for the two persisted entries. Save
// failures are swallowed (logged at debug by implementations); Load failures
// return the caller's fallback. Nothing here may surface an error to the user.
type KV interface {
	Save(ctx context.Context, key, value string)
	Load(ctx context.Context, key, fallback string) string
}

// The only persisted schema: raw corpus text and raw verse text.
const (
	KeyCorpus = "roteiros"
	KeyVerses = "versos"
)

// JobStatus is the job progress record polled by the dashboard while an
// extraction runs.
type JobStatus struct {
	Status   string         `json:"status"`
	Progress int            `json:"progress"`
	Message  string         `json:"message"`
	Start    *time.Time     `json:"start_time,omitempty"`
	End      *time.Time     `json:"end_time,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// StatusStore records extraction job progress.
type StatusStore interface {
	Set(ctx context.Context, jobID string, st JobStatus)
	Get(ctx context.Context, jobID string) (JobStatus, bool)
}

// MemoryKV is the in-process fallback when Redis is unreachable; contents
// last for the process lifetime only.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{m: map[string]string{}} }

func (s *MemoryKV) Save(_ context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *MemoryKV) Load(_ context.Context, key, fallback string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.m[key]; ok {
		return v
	}
	return fallback
}

// MemoryStatus is the in-process job status fallback.
type MemoryStatus struct {
	mu sync.RWMutex
	m  map[string]JobStatus
}

func NewMemoryStatus() *MemoryStatus { return &MemoryStatus{m: map[string]JobStatus{}} }

func (s *MemoryStatus) Set(_ context.Context, jobID string, st JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[jobID] = st
}

func (s *MemoryStatus) Get(_ context.Context, jobID string) (JobStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[jobID]
	return st, ok
}
