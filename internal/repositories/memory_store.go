package repositories

import (
	"fmt"
	"sync"

	"delizzia_backoffice/internal/mutators"
)

// Repository is the CRUD surface every entity store offers.
type Repository[T any] interface {
	List() []T
	GetByID(id string) (T, error)
	Create(item T) (T, error)
	Update(item T) (T, error)
	Delete(id string) error
	// Modify applies fn to the stored record under the write lock.
	Modify(id string, fn func(T) (T, error)) (T, error)
}

// memoryStore keeps an entity list in memory. Readers get copies and every
// write replaces the list with the result of a mutator.
type memoryStore[T mutators.Record[T]] struct {
	mu     sync.RWMutex
	items  []T
	ids    mutators.IDGenerator
	entity string
	// uniqueKey, when set, must not repeat across records.
	uniqueKey func(T) string
}

func newMemoryStore[T mutators.Record[T]](entity string, seed []T, ids mutators.IDGenerator, uniqueKey func(T) string) *memoryStore[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	return &memoryStore[T]{items: items, ids: ids, entity: entity, uniqueKey: uniqueKey}
}

func (s *memoryStore[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *memoryStore[T]) GetByID(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := mutators.Find(s.items, id)
	if !ok {
		return item, fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, id)
	}
	return item, nil
}

// Create always assigns a fresh id.
func (s *memoryStore[T]) Create(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item = item.WithID("")
	if err := s.checkUnique(item); err != nil {
		return item, err
	}
	var stored T
	s.items, stored = mutators.Upsert(s.items, item, s.ids)
	return stored, nil
}

func (s *memoryStore[T]) Update(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := mutators.Find(s.items, item.GetID()); !ok {
		return item, fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, item.GetID())
	}
	if err := s.checkUnique(item); err != nil {
		return item, err
	}
	s.items, item = mutators.Upsert(s.items, item, s.ids)
	return item, nil
}

func (s *memoryStore[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := mutators.Find(s.items, id); !ok {
		return fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, id)
	}
	s.items = mutators.Remove(s.items, id)
	return nil
}

func (s *memoryStore[T]) Modify(id string, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := mutators.Find(s.items, id)
	if !ok {
		return current, fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, id)
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	next = next.WithID(id)
	if err := s.checkUnique(next); err != nil {
		return current, err
	}
	s.items, _ = mutators.Update(s.items, id, func(T) T { return next })
	return next, nil
}

// StatusGuard vetoes a status change by returning an error. It sees the
// record as stored before the change.
type StatusGuard[T any] func(current T) error

// setStatus runs mutators.SetStatus under the store's lock after guard, if any, allows it.
func setStatus[T mutators.Stateful[T, S], S ~string](s *memoryStore[T], id string, status S, guard StatusGuard[T]) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := mutators.Find(s.items, id)
	if !ok {
		return current, fmt.Errorf("%w: %s %s", ErrNotFound, s.entity, id)
	}
	if guard != nil {
		if err := guard(current); err != nil {
			return current, err
		}
	}
	s.items = mutators.SetStatus(s.items, id, status)
	item, _ := mutators.Find(s.items, id)
	return item, nil
}

func (s *memoryStore[T]) checkUnique(item T) error {
	if s.uniqueKey == nil {
		return nil
	}
	key := s.uniqueKey(item)
	if key == "" {
		return nil
	}
	for _, existing := range s.items {
		if existing.GetID() != item.GetID() && s.uniqueKey(existing) == key {
			return fmt.Errorf("%w: %s %q already exists", ErrDuplicateKey, s.entity, key)
		}
	}
	return nil
}
