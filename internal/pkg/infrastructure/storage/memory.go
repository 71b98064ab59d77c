package storage

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
)

type memoryStore struct {
	mu          sync.RWMutex
	individuals map[string]*individuals.Individual
	files       map[string][]byte
}

func NewMemoryStore() Store {
	return &memoryStore{
		individuals: map[string]*individuals.Individual{},
		files:       map[string][]byte{},
	}
}

func (s *memoryStore) Get(ctx context.Context, uri string) (*individuals.Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.individuals[uri]
	if !ok {
		return nil, errors.NewNotFoundError("no individual with uri " + uri)
	}

	return i.Clone(), nil
}

func (s *memoryStore) Put(ctx context.Context, list ...*individuals.Individual) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, i := range list {
		s.individuals[i.URI()] = i.Clone()
	}

	return nil
}

func (s *memoryStore) Remove(ctx context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.individuals[uri]; !ok {
		return errors.NewNotFoundError("no individual with uri " + uri)
	}

	delete(s.individuals, uri)

	return nil
}

func (s *memoryStore) Select(ctx context.Context, match func(*individuals.Individual) bool) ([]*individuals.Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.individuals))
	for uri := range s.individuals {
		uris = append(uris, uri)
	}
	sort.Strings(uris)

	result := []*individuals.Individual{}
	for _, uri := range uris {
		if i := s.individuals[uri]; match(i) {
			result = append(result, i.Clone())
		}
	}

	return result, nil
}

func (s *memoryStore) PutFile(ctx context.Context, uri string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[uri] = slices.Clone(content)

	return nil
}

func (s *memoryStore) File(ctx context.Context, uri string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[uri]
	if !ok {
		return nil, errors.NewNotFoundError("no file with uri " + uri)
	}

	return slices.Clone(content), nil
}

func (s *memoryStore) Close() {}
