package signup

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Sink persists validated submissions. Implementations return
// ErrSubmissionExists when the CPF was already submitted.
type Sink interface {
	Save(ctx context.Context, v Volunteer) (uuid.UUID, error)
}

// MemorySink keeps submissions in memory. It is meant for development and
// tests.
type MemorySink struct {
	mu    sync.RWMutex
	items []Volunteer
	byCPF map[string]uuid.UUID
}

func NewMemorySink() *MemorySink {
	return &MemorySink{byCPF: make(map[string]uuid.UUID)}
}

func (s *MemorySink) Save(ctx context.Context, v Volunteer) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byCPF[v.CPF]; ok {
		return uuid.Nil, ErrSubmissionExists
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.Disponibilidade = slices.Clone(v.Disponibilidade)
	s.items = append(s.items, v)
	s.byCPF[v.CPF] = v.ID
	return v.ID, nil
}

// List returns the stored submissions in arrival order.
func (s *MemorySink) List() []Volunteer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
