// Package store provides the in-memory stores backing the ledger: a
// generic map-based entity store specialized for accounts, categories and
// operations. The operation store owns the canonical operation rows;
// account and category reads hydrate their operation views from it.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// entityStore is the generic save/find/delete repository the three
// specialized stores build on. One coarse lock per store; there is no
// finer-grained locking discipline in this design.
type entityStore[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
}

func newEntityStore[T any]() *entityStore[T] {
	return &entityStore[T]{items: make(map[uuid.UUID]T)}
}

// save upserts by id, overwriting the whole entity.
func (s *entityStore[T]) save(id uuid.UUID, v T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = v
	return v
}

func (s *entityStore[T]) find(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

// all returns every entity in no significant order.
func (s *entityStore[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// remove reports true iff an entity existed and was removed.
func (s *entityStore[T]) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Stores bundles the three stores, cross-wired: account and category
// reads query the operation store, operation saves resolve against the
// other two.
type Stores struct {
	Accounts   *AccountStore
	Categories *CategoryStore
	Operations *OperationStore
}

func New() *Stores {
	accounts := &AccountStore{raw: newEntityStore[accountRecord]()}
	categories := &CategoryStore{raw: newEntityStore[categoryRecord]()}
	operations := &OperationStore{raw: newEntityStore[operationRecord]()}

	accounts.ops = operations
	categories.ops = operations
	operations.accounts = accounts
	operations.categories = categories

	return &Stores{Accounts: accounts, Categories: categories, Operations: operations}
}
