// Package dbtest provides an in-memory database.Store for tests.
package dbtest

import (
	"context"
	"sort"
	"sync"

	"coffeecatalog/internal/database"
	"coffeecatalog/internal/models"
)

// Store keeps records in a map and counts calls. Setting Err makes every
// operation fail with it.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	coffees map[int64]models.Coffee

	Err   error
	Calls map[string]int
}

var _ database.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		nextID:  1,
		coffees: make(map[int64]models.Coffee),
		Calls:   make(map[string]int),
	}
}

// Writes returns the number of create and update calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls["create"] + s.Calls["update"]
}

func (s *Store) call(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls[op]++
	return s.Err
}

func (s *Store) ListCoffee(_ context.Context) ([]*models.Coffee, error) {
	if err := s.call("list"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*models.Coffee, 0, len(s.coffees))
	for _, c := range s.coffees {
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) GetCoffee(_ context.Context, id int64) (*models.Coffee, error) {
	if err := s.call("get"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.coffees[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCoffee(_ context.Context, req *models.CoffeeInput) (int64, error) {
	if err := s.call("create"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.coffees[id] = fromInput(id, req)
	return id, nil
}

func (s *Store) UpdateCoffee(_ context.Context, id int64, req *models.CoffeeInput) error {
	if err := s.call("update"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.coffees[id]; ok {
		s.coffees[id] = fromInput(id, req)
	}
	return nil
}

func fromInput(id int64, req *models.CoffeeInput) models.Coffee {
	return models.Coffee{
		ID:               id,
		SortName:         req.SortName,
		RoastLevel:       req.RoastLevel,
		IsGround:         req.IsGround,
		TasteDescription: req.TasteDescription,
		Price:            req.Price,
		PackageVolume:    req.PackageVolume,
	}
}
