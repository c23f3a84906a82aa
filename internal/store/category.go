package store

import (
	"fintrack/internal/core"

	"github.com/google/uuid"
)

type categoryRecord struct {
	ID   uuid.UUID
	Type core.OperationType
	Name string
}

// CategoryStore mirrors AccountStore for categories, with the same
// hydrate-on-read behavior and delete guard.
type CategoryStore struct {
	raw *entityStore[categoryRecord]
	ops *OperationStore
}

func (s *CategoryStore) Save(c core.Category) core.Category {
	s.raw.save(c.ID, categoryRecord{ID: c.ID, Type: c.Type, Name: c.Name})
	return c
}

func (s *CategoryStore) FindByID(id uuid.UUID) (core.Category, bool) {
	rec, ok := s.raw.find(id)
	if !ok {
		return core.Category{}, false
	}
	return s.hydrate(rec), true
}

func (s *CategoryStore) FindAll() []core.Category {
	recs := s.raw.all()
	out := make([]core.Category, 0, len(recs))
	for _, rec := range recs {
		out = append(out, s.hydrate(rec))
	}
	return out
}

func (s *CategoryStore) FindByType(t core.OperationType) []core.Category {
	var out []core.Category
	for _, c := range s.FindAll() {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func (s *CategoryStore) Delete(id uuid.UUID) bool {
	if len(s.ops.FindByCategory(id)) > 0 {
		return false
	}
	return s.raw.remove(id)
}

func (s *CategoryStore) hydrate(rec categoryRecord) core.Category {
	return core.Category{
		ID:         rec.ID,
		Type:       rec.Type,
		Name:       rec.Name,
		Operations: s.ops.FindByCategory(rec.ID),
	}
}
