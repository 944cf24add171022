package workflow

import (
	"context"
	"sort"
	"sync"

	"github.com/oversightlabs/approval-service/types"
)

// MemoryStore is the reference in-process store. It holds deep copies on
// both sides of the boundary so callers can never alias stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*types.Project
}

// NewMemoryStore creates an empty in-memory project store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string]*types.Project)}
}

func (s *MemoryStore) Create(ctx context.Context, p *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*types.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, p *types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return ErrNotFound
	}
	s.projects[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
