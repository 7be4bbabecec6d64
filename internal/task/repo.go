package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

type Repository interface {
	Create(ctx context.Context, name string, date *Date, clock *Clock, venue string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	SetDone(ctx context.Context, id string, done bool) (*Task, error)
}

// InMemoryRepo keeps tasks in a map plus an insertion-order slice so List
// is stable. All methods hand out clones; callers never share pointers with
// the store.
type InMemoryRepo struct {
	mu    sync.Mutex
	store map[string]*Task
	order []string
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		store: make(map[string]*Task),
	}
}

func (r *InMemoryRepo) Create(ctx context.Context, name string, date *Date, clock *Clock, venue string) (*Task, error) {
	t, err := New(name, date, clock, venue)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[t.ID] = t
	r.order = append(r.order, t.ID)
	return t.Clone(), nil
}

func (r *InMemoryRepo) List(ctx context.Context) ([]*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.store[id].Clone())
	}
	return out, nil
}

func (r *InMemoryRepo) Get(ctx context.Context, id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

func (r *InMemoryRepo) SetDone(ctx context.Context, id string, done bool) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Done = done
	return t.Clone(), nil
}
